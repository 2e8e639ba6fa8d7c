// Package builtin implements the built-in command bodies spec §6 names
// (cd, exit, export, unset, alias, unalias, jobs, fg, bg, history,
// source), each matching the shell.BuiltinFunc calling convention and
// registered into a shell.Dispatcher at startup.
package builtin

import (
	"fmt"
	"io"

	"github.com/aledsdavies/posh/internal/history"
	"github.com/aledsdavies/posh/internal/jobtable"
	"github.com/aledsdavies/posh/internal/shell"
)

// JobController is the subset of internal/launch's Launcher that fg/bg
// need: resuming a stopped or backgrounded Job. Defined here rather than
// imported directly so this package stays agnostic of process-launching
// details (spec §9 "Polymorphism" — builtins depend on capabilities, not
// concrete launcher internals).
type JobController interface {
	Resume(sh *shell.Shell, job *jobtable.Job, background bool) (status int, stopped bool, err error)
}

// LineRunner lets `source` recursively invoke the same run_line entry
// point used for interactive input and RC loading (spec.md supplement §4
// "RC-file source re-entrancy").
type LineRunner interface {
	RunLine(sh *shell.Shell, line string) int
}

// Registry bundles the external collaborators builtins close over.
type Registry struct {
	Jobs    JobController
	History *history.Store
	Runner  LineRunner
}

// RegisterAll installs every built-in into d.
func (r *Registry) RegisterAll(d *shell.Dispatcher) {
	d.Register("cd", builtinCd)
	d.Register("exit", r.builtinExit)
	d.Register("export", builtinExport)
	d.Register("unset", builtinUnset)
	d.Register("alias", builtinAlias)
	d.Register("unalias", builtinUnalias)
	d.Register("jobs", builtinJobs)
	d.Register("fg", r.builtinFg)
	d.Register("bg", r.builtinBg)
	d.Register("history", r.builtinHistory)
	d.Register("source", r.builtinSource)
}

func fail(stderr io.Writer, format string, args ...any) int {
	fmt.Fprintf(stderr, "shell: "+format+"\n", args...)
	return 1
}
