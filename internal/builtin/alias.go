package builtin

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinAlias implements `alias NAME=EXPANSION` and, with no arguments,
// lists all current aliases (spec.md supplement §4).
func builtinAlias(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(argv) == 1 {
		aliases := sh.Aliases()
		names := make([]string, 0, len(aliases))
		for k := range aliases {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(stdout, "alias %s='%s'\n", k, aliases[k])
		}
		return 0
	}

	status := 0
	for _, arg := range argv[1:] {
		name, expansion, ok := strings.Cut(arg, "=")
		if !ok {
			if v, found := sh.Alias(name); found {
				fmt.Fprintf(stdout, "alias %s='%s'\n", name, v)
			} else {
				status = fail(stderr, "alias: %s: not found", name)
			}
			continue
		}
		sh.SetAlias(name, expansion)
	}
	return status
}

// builtinUnalias implements `unalias NAME...`. With no arguments it prints
// a usage message and fails; it does not list aliases.
func builtinUnalias(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(argv) < 2 {
		return fail(stderr, "unalias: usage: unalias NAME...")
	}
	status := 0
	for _, name := range argv[1:] {
		if !sh.Unalias(name) {
			status = fail(stderr, "unalias: %s: not found", name)
		}
	}
	return status
}
