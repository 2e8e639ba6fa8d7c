package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	s, err := Open(path)
	require.NoError(t, err)

	for _, line := range []string{"echo one", "echo two", "echo three"} {
		require.NoError(t, s.Record(Entry{Line: line, Start: time.Unix(0, 0), End: time.Unix(0, 0)}))
	}

	last2 := s.Last(2)
	require.Len(t, last2, 2)
	assert.Equal(t, "echo two", last2[0].Line)
	assert.Equal(t, "echo three", last2[1].Line)

	all := s.Last(0)
	assert.Len(t, all, 3)
}

func TestOpenExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Record(Entry{Line: "echo one"}))

	s2, err := Open(path)
	require.NoError(t, err)
	assert.Len(t, s2.Last(0), 1)
}

func TestClearTruncatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(Entry{Line: "echo one"}))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Last(0))

	s2, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s2.Last(0))
}
