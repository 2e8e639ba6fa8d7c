package jobtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertJobAllocatesLowestFreeID(t *testing.T) {
	tbl := New()

	j1 := tbl.InsertJob(100, 100, "sleep 10 &", Running, true)
	j2 := tbl.InsertJob(200, 200, "sleep 20 &", Running, true)
	assert.Equal(t, 1, j1.ID)
	assert.Equal(t, 2, j2.ID)

	tbl.RemovePID(100, 100)

	j3 := tbl.InsertJob(300, 300, "sleep 30 &", Running, true)
	assert.Equal(t, 1, j3.ID, "id 1 should be reused once its job is fully reaped")
}

func TestInsertJobAppendsPidsSharingGID(t *testing.T) {
	tbl := New()
	j := tbl.InsertJob(100, 100, "a | b &", Running, true)
	tbl.InsertJob(100, 101, "a | b &", Running, true)

	got, ok := tbl.GetByGID(100)
	require.True(t, ok)
	assert.Equal(t, j.ID, got.ID)
	assert.ElementsMatch(t, []int{100, 101}, got.Pids)
}

func TestRemovePIDErasesJobOnlyWhenEmpty(t *testing.T) {
	tbl := New()
	tbl.InsertJob(100, 100, "a | b &", Running, true)
	tbl.InsertJob(100, 101, "a | b &", Running, true)

	done, erased := tbl.RemovePID(100, 100)
	assert.False(t, erased)
	assert.Nil(t, done)

	done, erased = tbl.RemovePID(100, 101)
	assert.True(t, erased)
	require.NotNil(t, done)
	assert.Empty(t, done.Pids)

	_, ok := tbl.GetByGID(100)
	assert.False(t, ok)
}

func TestMarkStoppedAndRunning(t *testing.T) {
	tbl := New()
	tbl.InsertJob(100, 100, "sleep 10", Running, false)

	tbl.MarkStopped(100)
	j, _ := tbl.GetByGID(100)
	assert.Equal(t, Stopped, j.Status)

	tbl.MarkRunning(100, true)
	j, _ = tbl.GetByGID(100)
	assert.Equal(t, Running, j.Status)
	assert.True(t, j.Report)
}
