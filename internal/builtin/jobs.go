package builtin

import (
	"fmt"
	"io"
	"sort"

	"github.com/aledsdavies/posh/internal/shell"
)

// builtinJobs implements `jobs`, listing the Job Table in deterministic
// id order (spec §4.E invariant: "sequencing of reports is deterministic
// by id").
func builtinJobs(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	all := sh.Jobs.All()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for _, j := range all {
		fmt.Fprintf(stdout, "[%d] %s\t%s\n", j.ID, j.Status, j.Cmd)
	}
	return 0
}
