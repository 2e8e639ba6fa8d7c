// Package shell holds the Shell Context (spec §3, §4.G): process-wide
// mutable state — jobs, aliases, shell-scoped envs, and the previous
// command/status/dir triple — plus the builtin/external command dispatcher
// (spec §9 "Polymorphism").
package shell

import (
	"os"
	"sync"

	"github.com/aledsdavies/posh/internal/jobtable"
)

// Shell is the process-wide mutable context threaded by pointer through
// the tokenizer/expander/parser/launcher call graph. Its lifetime is the
// lifetime of the shell process (spec §3). Command substitution runs
// pipelines against a temporary *Shell view (see Fork) rather than a
// hidden global, per spec §9 "Cyclic & global state".
type Shell struct {
	mu sync.Mutex

	Jobs       *jobtable.Table
	Dispatcher *Dispatcher

	aliases map[string]string
	envs    map[string]string

	PreviousStatus int
	PreviousCmd    string
	PreviousDir    string

	// Cmd is the line currently being executed, used by builtins that
	// want to see their own invocation (e.g. for logging).
	Cmd string

	// TTYFd is the controlling terminal's fd (-1 if stdin isn't a tty);
	// ShellPGID is the shell process's own process group. Both are
	// needed by internal/launch for terminal handoff (spec §5) but
	// conceptually belong to the shell-wide
	// session, not to any single pipeline run.
	TTYFd     int
	ShellPGID int

	// exitRequested/exitCode let the `exit` builtin unwind the top-level
	// read loop without it needing to special-case one particular
	// command name: the loop just checks ExitRequested after every line.
	exitRequested bool
	exitCode      int
}

// RequestExit marks the shell for termination with the given status, for
// the `exit` builtin (spec §6; numeric-argument support is spec.md
// supplement §4).
func (s *Shell) RequestExit(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exitRequested = true
	s.exitCode = code
}

// ExitRequested reports whether `exit` has been invoked, and with what
// status, for the top-level loop to check after each line.
func (s *Shell) ExitRequested() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode, s.exitRequested
}

// New builds an empty Shell Context.
func New() *Shell {
	return &Shell{
		Jobs:       jobtable.New(),
		Dispatcher: NewDispatcher(),
		aliases:    make(map[string]string),
		envs:       make(map[string]string),
		TTYFd:      -1,
	}
}

// Fork returns a lightweight *Shell sharing this Shell's aliases/envs/job
// table but with its own previous-status/cmd/dir triple, for running a
// sub-pipeline under command substitution (spec §4.B.6, §9) without the
// sub-pipeline's exit status leaking into the parent line's $?.
func (s *Shell) Fork() *Shell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Shell{
		Jobs:           s.Jobs,
		Dispatcher:     s.Dispatcher,
		aliases:        s.aliases,
		envs:           s.envs,
		PreviousStatus: s.PreviousStatus,
		PreviousDir:    s.PreviousDir,
		TTYFd:          s.TTYFd,
		ShellPGID:      s.ShellPGID,
	}
}

// Alias returns the expansion for name, if any.
func (s *Shell) Alias(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.aliases[name]
	return v, ok
}

// SetAlias defines or redefines an alias.
func (s *Shell) SetAlias(name, expansion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[name] = expansion
}

// Unalias removes an alias, reporting whether it existed.
func (s *Shell) Unalias(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.aliases[name]
	delete(s.aliases, name)
	return ok
}

// Aliases returns a snapshot of all current aliases, sorted by the caller
// as needed (used by `alias` with no arguments, spec.md supplement §4).
func (s *Shell) Aliases() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	return out
}

// Getenv resolves name with the precedence the Expander's variable pass
// uses (spec §4.B.4): OS environment first, then the shell-scoped map,
// then empty.
func (s *Shell) Getenv(name string) (string, bool) {
	if v, ok := os.LookupEnv(name); ok {
		return v, true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.envs[name]
	return v, ok
}

// Setenv writes name=value with OS-env shadowing semantics (spec §4.G):
// if the OS environment already defines name, the write goes to the OS
// environment; otherwise it goes to the shell-scoped map.
func (s *Shell) Setenv(name, value string) error {
	if _, ok := os.LookupEnv(name); ok {
		return os.Setenv(name, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envs[name] = value
	return nil
}

// Unsetenv removes name from whichever scope holds it.
func (s *Shell) Unsetenv(name string) error {
	if _, ok := os.LookupEnv(name); ok {
		return os.Unsetenv(name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.envs, name)
	return nil
}

// ShellEnvs returns a snapshot of shell-scoped (non-OS) environment
// entries, used by `export` with no arguments.
func (s *Shell) ShellEnvs() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.envs))
	for k, v := range s.envs {
		out[k] = v
	}
	return out
}
