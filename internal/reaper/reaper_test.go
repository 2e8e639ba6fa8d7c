//go:build unix

package reaper

import (
	"bytes"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/posh/internal/jobtable"
)

func TestSweepReapsBackgroundExit(t *testing.T) {
	jobs := jobtable.New()
	var out bytes.Buffer
	r := New(jobs, &out)

	cmd := exec.Command("/bin/sleep", "0.02")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	require.NoError(t, cmd.Start())

	gid := cmd.Process.Pid
	jobs.InsertJob(gid, cmd.Process.Pid, "sleep 0.02 &", jobtable.Running, true)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.Sweep()
		if _, ok := jobs.GetByGID(gid); !ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	_, ok := jobs.GetByGID(gid)
	assert.False(t, ok, "job should be erased once its only pid exits")
	assert.Contains(t, out.String(), "Done")
}

func TestSweepWithNoJobsPrintsNothing(t *testing.T) {
	jobs := jobtable.New()
	var out bytes.Buffer
	r := New(jobs, &out)

	r.Sweep()
	assert.Empty(t, out.String())
}
