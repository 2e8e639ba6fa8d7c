package builtin

import (
	"io"
	"os"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinCd implements `cd`, including the supplemented `cd -` form that
// swaps to the Shell Context's previous_dir (spec.md supplement §4).
func builtinCd(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	target := ""
	if len(argv) > 1 {
		target = argv[1]
	}

	cur, err := os.Getwd()
	if err != nil {
		return fail(stderr, "cd: %v", err)
	}

	switch {
	case target == "-":
		if sh.PreviousDir == "" {
			return fail(stderr, "cd: no previous directory")
		}
		target = sh.PreviousDir
	case target == "":
		home, ok := sh.Getenv("HOME")
		if !ok || home == "" {
			return fail(stderr, "cd: HOME not set")
		}
		target = home
	}

	if err := os.Chdir(target); err != nil {
		return fail(stderr, "cd: %s: %v", target, err)
	}

	sh.PreviousDir = cur
	return 0
}
