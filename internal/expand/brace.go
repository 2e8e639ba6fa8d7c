package expand

import (
	"strings"

	"github.com/aledsdavies/posh/internal/pipeline"
)

// expandBraces is pass 3 (spec §4.B.3, §9 Open Questions): single-level
// only, no nested-brace support — this mirrors the original shell's
// documented behavior rather than a stdlib/library brace-expansion
// routine that might attempt to handle nesting. A token with `{...}` but
// no comma inside is left literal.
func expandBraces(tokens pipeline.Tokens) pipeline.Tokens {
	out := make(pipeline.Tokens, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Sep != pipeline.SepNone {
			out = append(out, tok)
			continue
		}
		alts, prefix, suffix, ok := splitBrace(tok.Word)
		if !ok {
			out = append(out, tok)
			continue
		}
		for _, alt := range alts {
			out = append(out, pipeline.Token{Sep: pipeline.SepNone, Word: prefix + alt + suffix})
		}
	}
	return out
}

// splitBrace looks at the first `{...}` group (the first `{` up to the
// first `}` after it) and, if that group contains a comma, returns its
// comma-separated alternatives along with the prefix/suffix text
// surrounding the braces. Later groups are not examined. Nested braces
// inside the group are treated as plain characters (single-level
// semantics).
func splitBrace(word string) (alts []string, prefix, suffix string, ok bool) {
	open := strings.IndexByte(word, '{')
	if open < 0 {
		return nil, "", "", false
	}
	close := strings.IndexByte(word[open:], '}')
	if close < 0 {
		return nil, "", "", false
	}
	close += open

	body := word[open+1 : close]
	if !strings.Contains(body, ",") {
		return nil, "", "", false
	}

	return strings.Split(body, ","), word[:open], word[close+1:], true
}
