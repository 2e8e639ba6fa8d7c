//go:build unix

package launch

import "golang.org/x/sys/unix"

// tcGetPgrp and tcSetPgrp wrap the TIOCGPGRP/TIOCSPGRP ioctls, since the
// standard library exposes no tcgetpgrp/tcsetpgrp equivalent. This is the
// one place golang.org/x/sys/unix is load-bearing: process-group-aware
// terminal ownership has no portable stdlib API (spec §5 "Controlling
// terminal handoff").
func tcGetPgrp(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCGPGRP)
}

func tcSetPgrp(fd, pgid int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgid)
}
