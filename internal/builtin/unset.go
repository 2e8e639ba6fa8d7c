package builtin

import (
	"io"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinUnset implements `unset NAME...`.
func builtinUnset(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(argv) < 2 {
		return fail(stderr, "unset: usage: unset NAME...")
	}
	status := 0
	for _, name := range argv[1:] {
		if err := sh.Unsetenv(name); err != nil {
			status = fail(stderr, "unset: %v", err)
		}
	}
	return status
}
