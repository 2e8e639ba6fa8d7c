//go:build unix

package launch

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/posh/internal/pipeline"
	"github.com/aledsdavies/posh/internal/shell"
)

func newTestLauncher() *Launcher {
	return New(nil)
}

func TestRunSingleCommand(t *testing.T) {
	sh := shell.New()
	l := newTestLauncher()

	pl := pipeline.Pipeline{
		Commands: []pipeline.Command{{Argv: []string{"/bin/echo", "hello"}}},
		Next:     pipeline.LinkEnd,
	}

	res, err := l.Run(context.Background(), sh, pl, true)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Status)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestRunPipelineTwoCommands(t *testing.T) {
	sh := shell.New()
	l := newTestLauncher()

	pl := pipeline.Pipeline{
		Commands: []pipeline.Command{
			{Argv: []string{"/bin/echo", "one\ntwo\nthree"}},
			{Argv: []string{"/usr/bin/wc", "-l"}},
		},
		Next: pipeline.LinkEnd,
	}

	res, err := l.Run(context.Background(), sh, pl, true)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Status)
	assert.Contains(t, res.Stdout, "3")
}

func TestRunExitStatusPropagates(t *testing.T) {
	sh := shell.New()
	l := newTestLauncher()

	pl := pipeline.Pipeline{
		Commands: []pipeline.Command{{Argv: []string{"/bin/sh", "-c", "exit 7"}}},
		Next:     pipeline.LinkEnd,
	}

	res, err := l.Run(context.Background(), sh, pl, false)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Status)
}

func TestRunBackgroundReturnsImmediately(t *testing.T) {
	sh := shell.New()
	l := newTestLauncher()

	pl := pipeline.Pipeline{
		Commands:   []pipeline.Command{{Argv: []string{"/bin/sleep", "0.05"}}},
		Background: true,
		Next:       pipeline.LinkEnd,
	}

	res, err := l.Run(context.Background(), sh, pl, false)
	require.NoError(t, err)
	assert.NotZero(t, res.GID)

	job, ok := sh.Jobs.GetByGID(res.GID)
	require.True(t, ok)
	assert.Equal(t, res.GID, job.GID)
}

func TestRunBuiltinDispatchedDirectly(t *testing.T) {
	sh := shell.New()
	l := newTestLauncher()

	called := false
	sh.Dispatcher.Register("mybuiltin", func(sh *shell.Shell, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
		called = true
		return 0
	})

	pl := pipeline.Pipeline{
		Commands: []pipeline.Command{{Argv: []string{"mybuiltin"}}},
		Next:     pipeline.LinkEnd,
	}

	res, err := l.Run(context.Background(), sh, pl, false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Status)
	assert.Zero(t, res.GID, "a direct builtin dispatch must not fork, so no process group is created")
	assert.True(t, called)
}
