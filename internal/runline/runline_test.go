//go:build unix

package runline

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/posh/internal/history"
	"github.com/aledsdavies/posh/internal/launch"
	"github.com/aledsdavies/posh/internal/reaper"
	"github.com/aledsdavies/posh/internal/shell"
)

func newTestRunner(t *testing.T) (*Runner, *shell.Shell, *bytes.Buffer) {
	t.Helper()
	sh := shell.New()
	hist, err := history.Open(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)

	var stderr bytes.Buffer
	r := New(launch.New(nil), reaper.New(sh.Jobs, nil), hist, nil, nil, &stderr)
	return r, sh, &stderr
}

func TestRunLineSimpleCommand(t *testing.T) {
	r, sh, stderr := newTestRunner(t)
	status := r.RunLine(sh, "true")
	assert.Equal(t, 0, status)
	assert.Empty(t, stderr.String())
	assert.Equal(t, 0, sh.PreviousStatus)
}

func TestRunLineSyntaxErrorSetsStatusTwo(t *testing.T) {
	r, sh, stderr := newTestRunner(t)
	status := r.RunLine(sh, "| wc")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr.String(), "syntax error")
}

func TestRunLineAndOrSequencing(t *testing.T) {
	r, sh, _ := newTestRunner(t)
	status := r.RunLine(sh, "true && false || true")
	assert.Equal(t, 0, status)
}

func TestRunLineSeqRunsAfterFailedGate(t *testing.T) {
	r, sh, _ := newTestRunner(t)
	out, err := r.RunCapture(sh, "false && echo x ; echo y")
	require.NoError(t, err)
	assert.Equal(t, "y", out)
}

func TestRunCaptureForCommandSubstitution(t *testing.T) {
	r, sh, _ := newTestRunner(t)
	out, err := r.RunCapture(sh, "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestRunLineRecordsHistory(t *testing.T) {
	r, sh, _ := newTestRunner(t)
	r.RunLine(sh, "true")
	last := r.History.Last(1)
	require.Len(t, last, 1)
	assert.Equal(t, "true", last[0].Line)
}
