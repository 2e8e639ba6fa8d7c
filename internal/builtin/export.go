package builtin

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinExport implements `export NAME=VALUE` and, with no arguments,
// lists shell-scoped exports (OS-env shadowing semantics are
// internal/shell.Setenv's concern, spec §4.G).
func builtinExport(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(argv) == 1 {
		envs := sh.ShellEnvs()
		names := make([]string, 0, len(envs))
		for k := range envs {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(stdout, "export %s=%s\n", k, envs[k])
		}
		return 0
	}

	status := 0
	for _, arg := range argv[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			status = fail(stderr, "export: %s: not a valid assignment", arg)
			continue
		}
		if err := sh.Setenv(name, value); err != nil {
			status = fail(stderr, "export: %v", err)
		}
	}
	return status
}
