package launch

import (
	"os"
	"os/signal"
	"syscall"
)

// handoffTerminal gives the controlling terminal at ttyFd to pgid,
// running fn while the terminal belongs to pgid, then reclaims it for
// shellPGID before returning (spec §5 "Controlling terminal handoff").
//
// SIGTTIN/SIGTTOU/SIGTSTP delivery to the shell's own process is drained
// and discarded around the tcsetpgrp calls: because this shell only ever
// installs signal.Notify handlers for these signals (never SIG_IGN), the
// window where the shell could itself be stopped mid-handoff is closed
// by registering an extra channel that receives and discards these
// signals for the duration of the handoff, rather than by a kernel-level
// sigprocmask.
func handoffTerminal(ttyFd, shellPGID, pipelinePGID int, fn func()) error {
	if ttyFd < 0 {
		fn()
		return nil
	}

	done := make(chan struct{})
	masked := make(chan os.Signal, 4)
	signal.Notify(masked, syscall.SIGTTIN, syscall.SIGTTOU, syscall.SIGTSTP)
	defer signal.Stop(masked)
	go func() {
		for {
			select {
			case <-masked:
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	if err := tcSetPgrp(ttyFd, pipelinePGID); err != nil {
		return err
	}

	fn()

	return tcSetPgrp(ttyFd, shellPGID)
}
