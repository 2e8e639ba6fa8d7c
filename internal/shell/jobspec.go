package shell

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/posh/internal/jobtable"
)

// ParseJobSpec resolves a `fg`/`bg` argument to a Job. It accepts both a
// bare job id ("2") and the original shell's "%N" job-spec syntax
// (spec.md supplement §4), and with no argument at all falls back to the
// job with the highest id.
func (s *Shell) ParseJobSpec(arg string) (*jobtable.Job, bool) {
	if arg == "" {
		return s.latestJob()
	}

	id, err := strconv.Atoi(strings.TrimPrefix(arg, "%"))
	if err != nil {
		return nil, false
	}
	return s.Jobs.GetByID(id)
}

func (s *Shell) latestJob() (*jobtable.Job, bool) {
	all := s.Jobs.All()
	if len(all) == 0 {
		return nil, false
	}
	latest := all[0]
	for _, j := range all[1:] {
		if j.ID > latest.ID {
			latest = j
		}
	}
	return latest, true
}
