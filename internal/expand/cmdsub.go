package expand

import (
	"log/slog"
	"strings"

	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/shell"
)

// expandCommandSubstitution is pass 6 (spec §4.B.6). Backtick tokens
// (sep="`") are executed wholesale; $(...) groups embedded inside
// sep ∈ {"", "\""} tokens are extracted and run one at a time, repeating
// until no `$(...)` remains, so `$(echo $(echo hi))` resolves inside out.
func expandCommandSubstitution(sh *shell.Shell, tokens pipeline.Tokens, run Runner, log *slog.Logger) pipeline.Tokens {
	out := make(pipeline.Tokens, len(tokens))
	for i, tok := range tokens {
		switch tok.Sep {
		case pipeline.SepBacktick:
			captured, err := captureOrWarn(sh, run, tok.Word, log)
			if err != nil {
				out[i] = tok
				continue
			}
			out[i] = pipeline.Token{Sep: pipeline.SepNone, Word: captured}

		case pipeline.SepNone, pipeline.SepDouble:
			out[i] = pipeline.Token{Sep: tok.Sep, Word: expandDollarParen(sh, run, tok.Word, log)}

		default:
			out[i] = tok
		}
	}
	return out
}

// expandDollarParen repeatedly extracts the first $(...) group in word,
// runs it, and splices the trimmed stdout back in, until none remain.
func expandDollarParen(sh *shell.Shell, run Runner, word string, log *slog.Logger) string {
	for {
		start := strings.Index(word, "$(")
		if start < 0 {
			return word
		}
		end := matchingParen(word, start+2)
		if end < 0 {
			// Unbalanced: leave the rest of the word untouched.
			return word
		}
		inner := word[start+2 : end]
		captured, err := captureOrWarn(sh, run, inner, log)
		if err != nil {
			return word
		}
		word = word[:start] + captured + word[end+1:]
	}
}

// matchingParen returns the index of the `)` matching the `(` implicitly
// opened at from-1, accounting for nested parens, or -1 if unbalanced.
func matchingParen(s string, from int) int {
	depth := 1
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func captureOrWarn(sh *shell.Shell, run Runner, line string, log *slog.Logger) (string, error) {
	if run == nil {
		return "", errNoRunner
	}
	out, err := run.RunCapture(sh, line)
	if err != nil {
		log.Warn("command substitution failed", "command", line, "error", err)
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

var errNoRunner = noRunnerErr{}

type noRunnerErr struct{}

func (noRunnerErr) Error() string { return "expand: no command-substitution runner configured" }
