package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/posh/internal/jobtable"
)

func TestParseJobSpecPercentAndBare(t *testing.T) {
	sh := New()
	sh.Jobs.InsertJob(100, 100, "sleep 10 &", jobtable.Running, true)

	job, ok := sh.ParseJobSpec("%1")
	require.True(t, ok)
	assert.Equal(t, 100, job.GID)

	job, ok = sh.ParseJobSpec("1")
	require.True(t, ok)
	assert.Equal(t, 100, job.GID)
}

func TestParseJobSpecEmptyUsesLatest(t *testing.T) {
	sh := New()
	sh.Jobs.InsertJob(100, 100, "sleep 10 &", jobtable.Running, true)
	sh.Jobs.InsertJob(200, 200, "sleep 20 &", jobtable.Running, true)

	job, ok := sh.ParseJobSpec("")
	require.True(t, ok)
	assert.Equal(t, 200, job.GID)
}

func TestParseJobSpecUnknownFails(t *testing.T) {
	sh := New()
	_, ok := sh.ParseJobSpec("%9")
	assert.False(t, ok)
}
