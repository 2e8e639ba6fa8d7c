// Package posherr defines the structured error kinds the shell core
// distinguishes (spec §7) and a small set of defensive assertion helpers
// used at package boundaries.
package posherr

import "fmt"

// Kind identifies one of the error categories the core distinguishes.
type Kind int

const (
	// KindSyntax covers unbalanced quotes, empty pipelines, stray
	// redirections. previous_status is fixed at 2.
	KindSyntax Kind = iota
	// KindExpansion covers a bad glob or a failed command substitution;
	// the offending token is kept unexpanded and execution continues.
	KindExpansion
	// KindExec covers "file not found"/"not executable"; the command is
	// not started and the pipeline status is 127.
	KindExec
	// KindSignal covers termination by signal; status is 128+signum.
	KindSignal
	// KindRedirect covers a failed redirection target open. Targets are
	// opened by the shell before the command starts; on failure the
	// command is not started and the status is 1.
	KindRedirect
	// KindFatal covers fork failure; the pipeline is abandoned and the
	// shell loop continues.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindExpansion:
		return "expansion error"
	case KindExec:
		return "exec error"
	case KindSignal:
		return "signal"
	case KindRedirect:
		return "redirect error"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error is a structured shell error carrying the exit status it implies.
type Error struct {
	Kind   Kind
	Detail string
	Status int // previous_status this error implies, if execution stops
}

func (e *Error) Error() string {
	return fmt.Sprintf("shell: %s: %s", e.Kind, e.Detail)
}

// Syntax builds a KindSyntax error. previous_status is always 2 per spec §7.
func Syntax(format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Detail: fmt.Sprintf(format, args...), Status: 2}
}

// Expansion builds a KindExpansion warning. It never stops execution, so it
// carries no status of its own.
func Expansion(format string, args ...any) *Error {
	return &Error{Kind: KindExpansion, Detail: fmt.Sprintf(format, args...)}
}

// Redirect builds a KindRedirect error for a failed redirection target.
func Redirect(target, reason string) *Error {
	return &Error{Kind: KindRedirect, Detail: fmt.Sprintf("%s: %s", target, reason), Status: 1}
}

// Fatal builds a KindFatal error for an unrecoverable OS failure such as a
// failed fork.
func Fatal(format string, args ...any) *Error {
	return &Error{Kind: KindFatal, Detail: fmt.Sprintf(format, args...)}
}

// SignalStatus converts a terminating signal number into the 128+n exit
// status convention (spec §7/§6).
func SignalStatus(signum int) int {
	return 128 + signum
}

// Assert panics with a formatted message if cond is false. Used at package
// boundaries for conditions that indicate a bug in this repository rather
// than bad input — mirrors the teacher's invariant.Precondition/Postcondition
// call sites, reimplemented locally since core/invariant itself is not in
// the retrieved pack.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("posh: assertion failed: "+format, args...))
	}
}
