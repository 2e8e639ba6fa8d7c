package expand

import (
	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/shell"
	"github.com/aledsdavies/posh/internal/token"
)

// expandAliases is pass 1 (spec §4.B.1). It scans left to right tracking
// an is_head flag, reset to true after any `|`. A head token with
// sep="" matching an alias name has its alias body re-tokenized and
// spliced in its place. Aliases are expanded only at command head and
// only once per token — never recursively.
func expandAliases(sh *shell.Shell, tokens pipeline.Tokens) pipeline.Tokens {
	out := make(pipeline.Tokens, 0, len(tokens))
	isHead := true

	for _, tok := range tokens {
		if tok.Sep == pipeline.SepNone && tok.Word == "|" {
			out = append(out, tok)
			isHead = true
			continue
		}

		if isHead && tok.Sep == pipeline.SepNone {
			if body, ok := sh.Alias(tok.Word); ok {
				// A single pass: the re-tokenized body is spliced in
				// verbatim, never re-scanned for further aliases.
				expanded, err := token.Tokenize(body)
				if err == nil {
					out = append(out, expanded...)
					isHead = false
					continue
				}
			}
		}

		out = append(out, tok)
		isHead = false
	}

	return out
}
