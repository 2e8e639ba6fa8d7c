package builtin

import (
	"io"
	"strconv"

	"github.com/aledsdavies/posh/internal/history"
	"github.com/aledsdavies/posh/internal/shell"
)

// builtinHistory implements `history`, `history N`, and `history -c`
// (spec.md supplement §4: "history builtin supporting a numeric 'show
// last N' argument and clearing").
func (r *Registry) builtinHistory(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if r.History == nil {
		return fail(stderr, "history: not available")
	}

	if len(argv) > 1 && argv[1] == "-c" {
		if err := r.History.Clear(); err != nil {
			return fail(stderr, "history: %v", err)
		}
		return 0
	}

	if len(argv) > 1 && argv[1] == "--export" {
		if len(argv) < 3 {
			return fail(stderr, "history: --export requires a file path")
		}
		if err := r.History.ExportYAML(argv[2]); err != nil {
			return fail(stderr, "history: %v", err)
		}
		return 0
	}

	n := 0
	if len(argv) > 1 {
		var err error
		n, err = strconv.Atoi(argv[1])
		if err != nil {
			return fail(stderr, "history: %s: numeric argument required", argv[1])
		}
	}

	entries := r.History.Last(n)
	for i, e := range entries {
		io.WriteString(stdout, history.FormatLine(i+1, e)+"\n")
	}
	return 0
}
