package expand

import (
	"os"
	"regexp"
	"strconv"

	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/shell"
)

// varRe matches $NAME, ${NAME}, $?, and $$ (spec §4.B.4).
var varRe = regexp.MustCompile(`\$(\{[A-Za-z_][A-Za-z0-9_]*\}|[A-Za-z_][A-Za-z0-9_]*|\?|\$)`)

// expandVariables is pass 4. Applies to every token whose sep is neither
// single-quote nor backtick. Every match in the token is replaced in one
// forward pass, so back-to-back variables (`$FOO$BAR`) both resolve.
func expandVariables(sh *shell.Shell, tokens pipeline.Tokens) pipeline.Tokens {
	out := make(pipeline.Tokens, len(tokens))
	for i, tok := range tokens {
		if tok.Sep == pipeline.SepSingle || tok.Sep == pipeline.SepBacktick {
			out[i] = tok
			continue
		}
		out[i] = pipeline.Token{Sep: tok.Sep, Word: substituteVars(sh, tok.Word)}
	}
	return out
}

// substituteVars makes a single forward pass over word, copying text up to
// each match and appending its resolved value, then resuming the search
// strictly after the match's end. It never rescans substituted text, so a
// value that itself contains a `$NAME`-shaped substring (e.g. a shell var
// set to the literal string "$FOO") is substituted once rather than
// looping forever.
func substituteVars(sh *shell.Shell, word string) string {
	var out []byte
	rest := word
	for {
		loc := varRe.FindStringIndex(rest)
		if loc == nil {
			out = append(out, rest...)
			break
		}
		out = append(out, rest[:loc[0]]...)
		out = append(out, resolveVar(sh, rest[loc[0]:loc[1]])...)
		rest = rest[loc[1]:]
	}
	return string(out)
}

// resolveVar resolves one $NAME/${NAME}/$?/$$ match, in precedence order:
// $?, $$, OS environment, shell-scoped environment, empty string.
func resolveVar(sh *shell.Shell, match string) string {
	name := match[1:]
	switch name {
	case "?":
		return strconv.Itoa(sh.PreviousStatus)
	case "$":
		return strconv.Itoa(os.Getpid())
	}
	if len(name) >= 2 && name[0] == '{' && name[len(name)-1] == '}' {
		name = name[1 : len(name)-1]
	}
	if v, ok := sh.Getenv(name); ok {
		return v
	}
	return ""
}
