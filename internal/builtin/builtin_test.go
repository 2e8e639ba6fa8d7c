package builtin

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/posh/internal/jobtable"
	"github.com/aledsdavies/posh/internal/shell"
)

func TestBuiltinCdAndDash(t *testing.T) {
	sh := shell.New()
	start, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()

	var out, errOut bytes.Buffer
	status := builtinCd(sh, []string{"cd", tmp}, nil, &out, &errOut)
	assert.Equal(t, 0, status)

	cur, err := os.Getwd()
	require.NoError(t, err)
	resolvedTmp, _ := filepath.EvalSymlinks(tmp)
	resolvedCur, _ := filepath.EvalSymlinks(cur)
	assert.Equal(t, resolvedTmp, resolvedCur)
	assert.Equal(t, start, sh.PreviousDir)

	status = builtinCd(sh, []string{"cd", "-"}, nil, &out, &errOut)
	assert.Equal(t, 0, status)
	cur, err = os.Getwd()
	require.NoError(t, err)
	resolvedStart, _ := filepath.EvalSymlinks(start)
	resolvedCur, _ = filepath.EvalSymlinks(cur)
	assert.Equal(t, resolvedStart, resolvedCur)

	require.NoError(t, os.Chdir(start))
}

func TestBuiltinExportSetsShellEnv(t *testing.T) {
	sh := shell.New()
	var out, errOut bytes.Buffer

	status := builtinExport(sh, []string{"export", "FOO=bar"}, nil, &out, &errOut)
	assert.Equal(t, 0, status)

	v, ok := sh.Getenv("FOO")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
}

func TestBuiltinUnsetRemoves(t *testing.T) {
	sh := shell.New()
	var out, errOut bytes.Buffer
	builtinExport(sh, []string{"export", "FOO=bar"}, nil, &out, &errOut)

	status := builtinUnset(sh, []string{"unset", "FOO"}, nil, &out, &errOut)
	assert.Equal(t, 0, status)

	_, ok := sh.Getenv("FOO")
	assert.False(t, ok)
}

func TestBuiltinAliasSetAndList(t *testing.T) {
	sh := shell.New()
	var out, errOut bytes.Buffer

	status := builtinAlias(sh, []string{"alias", "ll=ls -l"}, nil, &out, &errOut)
	assert.Equal(t, 0, status)

	out.Reset()
	status = builtinAlias(sh, []string{"alias"}, nil, &out, &errOut)
	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "ll='ls -l'")
}

func TestBuiltinUnaliasUnknownFails(t *testing.T) {
	sh := shell.New()
	var out, errOut bytes.Buffer

	status := builtinUnalias(sh, []string{"unalias", "nope"}, nil, &out, &errOut)
	assert.Equal(t, 1, status)
	assert.Contains(t, errOut.String(), "not found")
}

func TestBuiltinJobsListsInIDOrder(t *testing.T) {
	sh := shell.New()
	sh.Jobs.InsertJob(200, 200, "sleep 10 &", jobtable.Running, true)
	sh.Jobs.InsertJob(100, 100, "sleep 20 &", jobtable.Running, true)

	var out, errOut bytes.Buffer
	status := builtinJobs(sh, []string{"jobs"}, nil, &out, &errOut)
	assert.Equal(t, 0, status)

	firstIdx := indexOf(out.String(), "sleep 10")
	secondIdx := indexOf(out.String(), "sleep 20")
	assert.Less(t, firstIdx, secondIdx, "jobs must list by ascending job id, which tracks insertion order here")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
