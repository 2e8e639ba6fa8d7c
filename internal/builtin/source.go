package builtin

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinSource implements `source FILE`, re-entering the same
// run_line entry point used for interactive input and RC loading for
// each line of FILE (spec.md supplement §4: "RC-file source
// re-entrancy").
func (r *Registry) builtinSource(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(argv) < 2 {
		return fail(stderr, "source: usage: source FILE")
	}
	if r.Runner == nil {
		return fail(stderr, "source: not available")
	}

	f, err := os.Open(argv[1])
	if err != nil {
		return fail(stderr, "source: %v", err)
	}
	defer f.Close()

	status := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		status = r.Runner.RunLine(sh, line)
	}
	if err := scanner.Err(); err != nil {
		return fail(stderr, "source: %v", err)
	}
	return status
}
