package builtin

import (
	"io"
	"strconv"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinExit implements `exit`, including the supplemented numeric-
// argument form that sets the shell's final exit code (spec.md
// supplement §4). It does not itself terminate the process — it marks
// the Shell Context so the top-level read loop unwinds cleanly.
func (r *Registry) builtinExit(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := sh.PreviousStatus
	if len(argv) > 1 {
		n, err := strconv.Atoi(argv[1])
		if err != nil {
			return fail(stderr, "exit: %s: numeric argument required", argv[1])
		}
		code = n & 0xff
	}
	sh.RequestExit(code)
	return code
}
