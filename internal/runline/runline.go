//go:build unix

// Package runline ties the Tokenizer, Expander, Pipeline Parser, Process
// Launcher, and Reaper together into the one operation every entry point
// (the interactive loop, `-c STRING`, non-tty stdin, rc loading, and the
// `source` builtin) drives: run one line of input against a Shell
// Context and return its exit status.
//
// It implements expand.Runner (for command substitution's reentrant
// re-invocation of this same machinery) and builtin.LineRunner (for
// `source`), closing the dependency cycle those two packages deliberately
// left open as narrow interfaces (spec §9 "Cyclic & global state").
package runline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aledsdavies/posh/internal/expand"
	"github.com/aledsdavies/posh/internal/history"
	"github.com/aledsdavies/posh/internal/launch"
	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/posherr"
	"github.com/aledsdavies/posh/internal/reaper"
	"github.com/aledsdavies/posh/internal/shell"
	"github.com/aledsdavies/posh/internal/token"
)

// Runner drives one line end to end.
type Runner struct {
	Launcher *launch.Launcher
	Reaper   *reaper.Reaper
	History  *history.Store
	Log      *slog.Logger
	Stdout   io.Writer
	Stderr   io.Writer
}

// New builds a Runner. Any field left zero-valued is tolerated: a nil
// History skips recording, a nil Log discards diagnostics.
func New(l *launch.Launcher, r *reaper.Reaper, h *history.Store, log *slog.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{Launcher: l, Reaper: r, History: h, Log: log, Stdout: stdout, Stderr: stderr}
}

// RunLine executes line against sh and returns its exit status, updating
// sh.PreviousStatus/PreviousCmd and recording history as a side effect.
// This is the builtin.LineRunner implementation `source` and RC loading
// use.
func (r *Runner) RunLine(sh *shell.Shell, line string) int {
	if r.Reaper != nil {
		r.Reaper.Sweep()
	}

	sh.Cmd = line
	start := time.Now()
	status, _, err := r.runLine(sh, line, false)
	if err != nil {
		r.report(err)
	}
	end := time.Now()

	sh.PreviousStatus = status
	sh.PreviousCmd = line

	if r.History != nil && strings.TrimSpace(line) != "" {
		_ = r.History.Record(history.Entry{Line: line, Status: status, Start: start, End: end})
	}

	if r.Reaper != nil {
		r.Reaper.Sweep()
	}
	return status
}

// RunCapture executes line and returns its last command's captured,
// trimmed stdout, for command substitution (expand.Runner). It does not
// touch history or PreviousStatus/PreviousCmd — those belong to the
// enclosing line, not the substituted one — matching Fork's isolation of
// the previous-status/cmd/dir triple (spec §4.B.6, §9).
func (r *Runner) RunCapture(sh *shell.Shell, line string) (string, error) {
	status, stdout, err := r.runLine(sh.Fork(), line, true)
	if err != nil {
		return "", err
	}
	_ = status // a non-zero exit from a substituted command is not itself an error (spec §4.B.6)
	return stdout, nil
}

// runLine is the shared core of RunLine and RunCapture. captureLast, true
// only when this call is itself running a command substitution's
// sub-pipeline, asks the launcher to capture the final Pipeline's stdout
// instead of writing it to the real terminal.
func (r *Runner) runLine(sh *shell.Shell, line string, captureLast bool) (int, string, error) {
	tokens, err := token.Tokenize(line)
	if err != nil {
		return r.syntaxFail(err)
	}

	tokens = expand.Expand(sh, tokens, r, r.Log)

	pipelines, err := pipeline.Parse(tokens)
	if err != nil {
		return r.syntaxFail(err)
	}
	if len(pipelines) == 0 {
		return 0, "", nil
	}

	var lastStatus int
	var lastStdout string
	run := true
	for i, pl := range pipelines {
		ran := run
		if ran {
			capture := captureLast && i == len(pipelines)-1
			res, rerr := r.Launcher.Run(context.Background(), sh, pl, capture)
			lastStatus = res.Status
			lastStdout = res.Stdout

			if rerr != nil {
				r.report(rerr)
			}
			if r.Reaper != nil {
				r.Reaper.Sweep()
			}
		}

		run = nextGate(pl.Next, ran, lastStatus)
	}

	return lastStatus, strings.TrimRight(lastStdout, "\n"), nil
}

// nextGate decides whether the Pipeline following one joined by next runs.
// `;` and end-of-line always reopen the gate, even after a skipped
// pipeline; `&&`/`||` only open it when the current pipeline actually ran
// and its status satisfies the gate, so a pipeline skipped by an earlier
// failed `&&`/`||` keeps every following `&&`/`||` pipeline skipped until
// the next `;` (spec §4.C, spec.md §8 scenario 3).
func nextGate(next pipeline.Link, ran bool, status int) bool {
	switch next {
	case pipeline.LinkAnd:
		return ran && status == 0
	case pipeline.LinkOr:
		return ran && status != 0
	default: // LinkSeq, LinkEnd
		return true
	}
}

func (r *Runner) syntaxFail(err error) (int, string, error) {
	r.report(err)
	return 2, "", nil
}

// report prints err to stderr in spec §7's "shell: <kind>: <detail>" shape.
// *posherr.Error already renders that way; other error types (notably
// *pipeline.SyntaxErr from the tokenizer/parser) render just "<kind>:
// <detail>" and need the "shell: " prefix added here.
func (r *Runner) report(err error) {
	if r.Stderr == nil {
		return
	}
	if _, ok := err.(*posherr.Error); ok {
		fmt.Fprintln(r.Stderr, err)
		return
	}
	fmt.Fprintf(r.Stderr, "shell: %s\n", err)
}
