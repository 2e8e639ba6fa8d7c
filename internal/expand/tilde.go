package expand

import (
	"os"
	"regexp"

	"github.com/aledsdavies/posh/internal/pipeline"
)

// tildeRe matches a `~` bounded by line-start-or-space on the left and
// space, `/`, or end-of-word on the right (spec §4.B.2). `~` adjacent to
// other non-whitespace, non-`/` characters is left literal.
var tildeRe = regexp.MustCompile(`(^| )~( |/|$)`)

// expandTilde is pass 2. Only sep="" tokens are considered; quoted `~` is
// left literal by construction since this pass never touches
// SepSingle/SepDouble/SepBacktick/SepEscaped tokens.
func expandTilde(tokens pipeline.Tokens) pipeline.Tokens {
	home := homeDir()
	out := make(pipeline.Tokens, len(tokens))
	for i, tok := range tokens {
		if tok.Sep != pipeline.SepNone || home == "" {
			out[i] = tok
			continue
		}
		word := tildeRe.ReplaceAllStringFunc(tok.Word, func(m string) string {
			sub := tildeRe.FindStringSubmatch(m)
			return sub[1] + home + sub[2]
		})
		out[i] = pipeline.Token{Sep: tok.Sep, Word: word}
	}
	return out
}

func homeDir() string {
	if h, ok := os.LookupEnv("HOME"); ok && h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}
