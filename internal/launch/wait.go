//go:build unix

package launch

import (
	"os/exec"
	"syscall"

	"github.com/aledsdavies/posh/internal/posherr"
	"github.com/aledsdavies/posh/internal/shell"
)

// waitForeground hands the controlling terminal to gid, waits for every
// process in cmds to either exit or stop, reclaims the terminal, and
// returns the pipeline's exit status (the last command's, per spec §4.D.5)
// along with whether the pipeline was stopped (Ctrl-Z) rather than
// completed.
func (l *Launcher) waitForeground(sh *shell.Shell, gid int, cmds []*exec.Cmd) (status int, stopped bool, err error) {
	pids := make([]int, len(cmds))
	for i, c := range cmds {
		pids[i] = c.Process.Pid
	}
	return waitForegroundPids(sh, gid, pids)
}

// waitForegroundPids is the pid-level core of waitForeground, factored out
// so internal/launch's `fg` support (Resume) can wait on a job resumed from
// the Job Table, which only has pids on hand, not *exec.Cmd handles.
func waitForegroundPids(sh *shell.Shell, gid int, pids []int) (status int, stopped bool, err error) {
	pending := make(map[int]bool, len(pids))
	for _, p := range pids {
		pending[p] = true
	}
	last := pids[len(pids)-1]

	herr := handoffTerminal(sh.TTYFd, sh.ShellPGID, gid, func() {
		for len(pending) > 0 {
			var ws syscall.WaitStatus
			pid, werr := syscall.Wait4(-gid, &ws, syscall.WUNTRACED, nil)
			if werr != nil {
				if werr == syscall.EINTR {
					continue
				}
				break
			}
			if !pending[pid] {
				continue
			}

			switch {
			case ws.Stopped():
				sh.Jobs.MarkStopped(gid)
				stopped = true
				if pid == last {
					status = posherr.SignalStatus(int(ws.StopSignal()))
				}
				// A stopped foreground pipeline returns control to the
				// shell immediately; the remaining processes stay in
				// the job's pid set for `fg`/`bg` to resume later.
				return

			case ws.Exited():
				delete(pending, pid)
				sh.Jobs.RemovePID(gid, pid)
				if pid == last {
					status = ws.ExitStatus()
				}

			case ws.Signaled():
				delete(pending, pid)
				sh.Jobs.RemovePID(gid, pid)
				if pid == last {
					status = posherr.SignalStatus(int(ws.Signal()))
				}
			}
		}
	})
	if herr != nil {
		return status, stopped, herr
	}

	return status, stopped, nil
}
