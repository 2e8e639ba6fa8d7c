package builtin

import (
	"io"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinFg implements `fg [%N]`, resuming a stopped or backgrounded job
// in the foreground (spec.md supplement §4: "bg/fg accepting %N job-spec
// syntax").
func (r *Registry) builtinFg(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return r.resume(sh, argv, stdout, stderr, false)
}

// builtinBg implements `bg [%N]`, resuming a stopped job in the
// background.
func (r *Registry) builtinBg(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return r.resume(sh, argv, stdout, stderr, true)
}

func (r *Registry) resume(sh *shell.Shell, argv []string, stdout, stderr io.Writer, background bool) int {
	spec := ""
	if len(argv) > 1 {
		spec = argv[1]
	}

	job, ok := sh.ParseJobSpec(spec)
	if !ok {
		return fail(stderr, "%s: %s: no such job", argv[0], spec)
	}

	status, _, err := r.Jobs.Resume(sh, job, background)
	if err != nil {
		return fail(stderr, "%s: %v", argv[0], err)
	}
	return status
}
