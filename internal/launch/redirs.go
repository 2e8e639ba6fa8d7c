package launch

import (
	"io"
	"os"
	"strconv"

	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/posherr"
)

// openRedirs applies cmd's redirections on top of the pipe-wired
// defStdin/defStdout/defStderr, returning the effective stdio files and
// the set of files this call opened (the caller must close them once the
// child has inherited them). Redirections are applied left to right, so
// a later one overrides an earlier one targeting the same fd, matching
// shell semantics (spec §4.C).
func openRedirs(redirs []pipeline.Redir, defStdin, defStdout, defStderr *os.File) (stdin, stdout, stderr *os.File, opened []io.Closer, err error) {
	stdin, stdout, stderr = defStdin, defStdout, defStderr

	for _, r := range redirs {
		switch r.Op {
		case pipeline.RedirRead:
			f, oerr := os.Open(r.Target)
			if oerr != nil {
				closeAll(opened)
				return nil, nil, nil, nil, posherr.Redirect(r.Target, oerr.Error())
			}
			opened = append(opened, f)
			if r.FD == 0 {
				stdin = f
			}

		case pipeline.RedirWrite, pipeline.RedirAppend:
			flags := os.O_WRONLY | os.O_CREATE
			if r.Op == pipeline.RedirAppend {
				flags |= os.O_APPEND
			} else {
				flags |= os.O_TRUNC
			}
			f, oerr := os.OpenFile(r.Target, flags, 0o644)
			if oerr != nil {
				closeAll(opened)
				return nil, nil, nil, nil, posherr.Redirect(r.Target, oerr.Error())
			}
			opened = append(opened, f)
			switch r.FD {
			case 1:
				stdout = f
			case 2:
				stderr = f
			}

		case pipeline.RedirDup:
			src, perr := strconv.Atoi(r.Target)
			if perr != nil {
				closeAll(opened)
				return nil, nil, nil, nil, posherr.Redirect(r.Target, "not a valid file descriptor")
			}
			// Only 2>&1 is meaningful here; the reverse (1>&2) is accepted
			// too since both sides are plain *os.File aliasing.
			switch {
			case r.FD == 2 && src == 1:
				stderr = stdout
			case r.FD == 1 && src == 2:
				stdout = stderr
			}
		}
	}

	return stdin, stdout, stderr, opened, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

func closePipes(readers, writers []*os.File) {
	for _, r := range readers {
		if r != nil {
			_ = r.Close()
		}
	}
	for _, w := range writers {
		if w != nil {
			_ = w.Close()
		}
	}
}
