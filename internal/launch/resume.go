//go:build unix

package launch

import (
	"syscall"

	"github.com/aledsdavies/posh/internal/jobtable"
	"github.com/aledsdavies/posh/internal/posherr"
	"github.com/aledsdavies/posh/internal/shell"
)

// Resume continues a stopped or backgrounded Job (spec.md supplement §4
// "bg/fg accepting %N job-spec syntax"): it sends SIGCONT to the whole
// process group, updates the Job Table, and either returns immediately
// (background) or hands over the terminal and waits like a freshly
// launched foreground pipeline (foreground). This satisfies
// internal/builtin.JobController, so fg/bg depend on the capability
// rather than this package's concrete types.
func (l *Launcher) Resume(sh *shell.Shell, job *jobtable.Job, background bool) (status int, stopped bool, err error) {
	if err := syscall.Kill(-job.GID, syscall.SIGCONT); err != nil {
		return 0, false, posherr.Fatal("fg: %v", err)
	}
	sh.Jobs.MarkRunning(job.GID, background)

	if background {
		return 0, false, nil
	}

	pids := append([]int(nil), job.Pids...)
	return waitForegroundPids(sh, job.GID, pids)
}
