package rc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRunsEachLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poshrc")
	content := "export FOO=bar\n# a comment\n\nalias ll='ls -l'\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var seen []string
	require.NoError(t, Load(path, func(line string) {
		seen = append(seen, line)
	}))

	assert.Equal(t, []string{"export FOO=bar", "alias ll='ls -l'"}, seen)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	var seen []string
	err := Load(filepath.Join(t.TempDir(), "nope"), func(line string) {
		seen = append(seen, line)
	})
	assert.NoError(t, err)
	assert.Empty(t, seen)
}
