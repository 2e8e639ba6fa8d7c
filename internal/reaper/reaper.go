//go:build unix

// Package reaper implements the Reaper/Waiter (spec §4.F): a non-blocking
// sweep over every child the shell owns, invoked at the top of each
// interactive iteration and after each foreground pipeline, that reconciles
// the Job Table with whatever process-state changes have happened since the
// last sweep.
package reaper

import (
	"fmt"
	"io"
	"syscall"

	"github.com/fatih/color"

	"github.com/aledsdavies/posh/internal/jobtable"
	"github.com/aledsdavies/posh/internal/posherr"
)

// Reaper owns the announcement stream background/stopped jobs are printed
// to — the real terminal in interactive use, anything else in tests.
type Reaper struct {
	Jobs *jobtable.Table
	Out  io.Writer
}

// New builds a Reaper over jobs, printing announcements to out.
func New(jobs *jobtable.Table, out io.Writer) *Reaper {
	return &Reaper{Jobs: jobs, Out: out}
}

// Sweep performs one non-blocking reap pass over every outstanding child
// (spec §4.F): `wait4(-1, WNOHANG|WUNTRACED|WCONTINUED)` repeatedly until
// no more state changes are pending. It never blocks, so it is safe to call
// both before reading the next interactive line and right after a
// foreground pipeline returns.
func (r *Reaper) Sweep() {
	for {
		var ws syscall.WaitStatus
		pid, err := syscall.Wait4(-1, &ws, syscall.WNOHANG|syscall.WUNTRACED|syscall.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			return
		}
		r.handle(pid, ws)
	}
}

func (r *Reaper) handle(pid int, ws syscall.WaitStatus) {
	switch {
	case ws.Exited():
		r.reapExit(pid, ws.ExitStatus(), "")
	case ws.Signaled():
		r.reapExit(pid, posherr.SignalStatus(int(ws.Signal())), ws.Signal().String())
	case ws.Stopped():
		r.reapStop(pid)
	case ws.Continued():
		r.reapContinue(pid)
	}
}

// reapExit handles a pid that exited or was killed by a signal. gidForPid finds
// which Job owns pid by scanning the table, since wait4(-1, ...) can return
// any child regardless of its process group.
func (r *Reaper) reapExit(pid, status int, sig string) {
	gid, ok := r.gidForPid(pid)
	if !ok {
		return
	}
	job, closed := r.Jobs.RemovePID(gid, pid)
	if !closed || !job.Report {
		return
	}
	if sig != "" {
		r.announce(job, fmt.Sprintf("Terminated by signal %s", sig))
	} else if status == 0 {
		r.announce(job, "Done")
	} else {
		r.announce(job, fmt.Sprintf("Exit %d", status))
	}
}

func (r *Reaper) reapStop(pid int) {
	gid, ok := r.gidForPid(pid)
	if !ok {
		return
	}
	r.Jobs.MarkStopped(gid)
	if job, ok := r.Jobs.GetByGID(gid); ok {
		r.announceStopped(job)
	}
}

func (r *Reaper) reapContinue(pid int) {
	gid, ok := r.gidForPid(pid)
	if !ok {
		return
	}
	r.Jobs.MarkRunning(gid, true)
}

func (r *Reaper) gidForPid(pid int) (int, bool) {
	for _, j := range r.Jobs.All() {
		for _, p := range j.Pids {
			if p == pid {
				return j.GID, true
			}
		}
	}
	return 0, false
}

func (r *Reaper) announce(job *jobtable.Job, what string) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, "%s %s\n", color.New(color.FgGreen).Sprintf("[%d]", job.ID), fmt.Sprintf("%s\t%s", what, job.Cmd))
}

func (r *Reaper) announceStopped(job *jobtable.Job) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, "%s %s\n", color.New(color.FgYellow).Sprintf("[%d]+", job.ID), fmt.Sprintf("Stopped\t%s", job.Cmd))
}
