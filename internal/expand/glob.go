package expand

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aledsdavies/posh/internal/pipeline"
)

// expandGlobs is pass 5 (spec §4.B.5). Only sep="" tokens containing `*`
// are candidates. Pattern matching itself is delegated to doublestar,
// which this shell layers its own policy on top of: entries whose
// basename begins with `.` are excluded unless the pattern's basename
// also starts with `.`; `.`/`..` are always excluded; results are sorted
// lexicographically; an empty match set keeps the token verbatim; a
// matched path containing whitespace is requoted (sep="\"") so the token
// stays atomic downstream.
func expandGlobs(tokens pipeline.Tokens, log *slog.Logger) pipeline.Tokens {
	out := make(pipeline.Tokens, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Sep != pipeline.SepNone || !strings.Contains(tok.Word, "*") {
			out = append(out, tok)
			continue
		}

		matches, err := globMatch(tok.Word)
		if err != nil {
			log.Warn("glob expansion failed", "pattern", tok.Word, "error", err)
			out = append(out, tok)
			continue
		}
		if len(matches) == 0 {
			out = append(out, tok)
			continue
		}

		for _, m := range matches {
			sep := pipeline.SepNone
			if strings.ContainsAny(m, " \t") {
				sep = pipeline.SepDouble
			}
			out = append(out, pipeline.Token{Sep: sep, Word: m})
		}
	}
	return out
}

// globMatch walks the directory implied by pattern and returns the sorted
// set of matching, policy-filtered entries.
func globMatch(pattern string) ([]string, error) {
	dir, base := filepath.Split(pattern)
	if dir == "" {
		dir = "."
	}
	patternWantsDot := strings.HasPrefix(base, ".")

	entries, err := os.ReadDir(strings.TrimSuffix(dir, "/"))
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if name == "." || name == ".." {
			continue
		}
		if strings.HasPrefix(name, ".") && !patternWantsDot {
			continue
		}

		ok, err := doublestar.Match(base, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		candidate := name
		if dir != "." && dir != "" {
			candidate = filepath.Join(dir, name)
		}
		matches = append(matches, candidate)
	}

	sort.Strings(matches)
	return matches, nil
}
