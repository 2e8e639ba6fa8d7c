// Package expand implements the Expander (spec §4.B): the six-pass
// rewrite pipeline applied, in this exact order, to a tokenized shell
// line — alias, tilde, brace, variable, glob, command substitution.
package expand

import (
	"log/slog"
	"strings"

	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/shell"
)

// Runner executes a sub-pipeline for command substitution and returns its
// captured, trimmed stdout. It is implemented by the top-level line
// runner so that this package never imports the launcher — command
// substitution is reentrant into the same run_line machinery used for
// interactive input (spec §9 "Cyclic & global state").
type Runner interface {
	RunCapture(sh *shell.Shell, line string) (string, error)
}

// Expand applies the six passes in order and returns the rewritten
// Tokens. log receives expansion warnings (bad globs, failed command
// substitutions); it may be nil to discard them.
func Expand(sh *shell.Shell, tokens pipeline.Tokens, run Runner, log *slog.Logger) pipeline.Tokens {
	if log == nil {
		log = slog.New(slog.NewTextHandler(nopWriter{}, nil))
	}

	if guarded(tokens) {
		return tokens
	}

	tokens = expandAliases(sh, tokens)
	tokens = expandTilde(tokens)
	tokens = expandBraces(tokens)
	tokens = expandVariables(sh, tokens)
	tokens = expandGlobs(tokens, log)
	tokens = expandCommandSubstitution(sh, tokens, run, log)
	return tokens
}

// guarded implements the Expander's guard clause (spec §4.B): a line
// setting PROMPT is passed through untouched, since the prompt string
// embeds live-evaluated directives interpreted elsewhere.
func guarded(tokens pipeline.Tokens) bool {
	if len(tokens) < 2 {
		return false
	}
	return tokens[0].Word == "export" && strings.HasPrefix(tokens[1].Word, "PROMPT=")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
