package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", dir, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "generate", "gen-0", "--size", "4", "--min", "2", "--max", "3")
	require.NoError(t, err)
	assert.Equal(t, "gen-0: 4 trees\n", out)
	assert.FileExists(t, filepath.Join(dir, ".formica", "populations", "gen-0.xml"))

	out, err = run(t, dir, "breed", "gen-0", "--count", "2", "--rate", "0.1")
	require.NoError(t, err)
	assert.Equal(t, "gen-0: 6 trees (2 offspring)\n", out)

	out, err = run(t, dir, "breed", "gen-0", "--count", "3", "--into", "gen-1")
	require.NoError(t, err)
	assert.Equal(t, "gen-1: 3 trees (3 offspring)\n", out)

	out, err = run(t, dir, "simplify", "gen-1")
	require.NoError(t, err)
	assert.Contains(t, out, "gen-1: ")

	out, err = run(t, dir, "inspect", "gen-0")
	require.NoError(t, err)
	assert.Contains(t, out, "# gen-0")
	assert.Contains(t, out, "**6 trees**")

	out, err = run(t, dir, "graph", "gen-0", "0", "--trace", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "class n0")

	out, err = run(t, dir, "decide", "gen-0", "--steps", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "TREE"))

	out, err = run(t, dir, "population", "ls")
	require.NoError(t, err)
	assert.Equal(t, "Populations:\n- gen-0\n- gen-1\n", out)

	exported := filepath.Join(dir, "gen-1.json")
	_, err = run(t, dir, "population", "export", "gen-1", exported)
	require.NoError(t, err)
	out, err = run(t, dir, "population", "import", exported, "copy")
	require.NoError(t, err)
	assert.Equal(t, "copy: 3 trees\n", out)

	out, err = run(t, dir, "population", "rm", "gen-0", "gen-1", "copy")
	require.NoError(t, err)
	assert.Contains(t, out, "Population 'copy' removed.")

	out, err = run(t, dir, "population", "ls")
	require.NoError(t, err)
	assert.Equal(t, "No populations found.\n", out)
}

func TestCLI_GenerateToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")

	out, err := run(t, dir, "generate", "--size", "2", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "2 trees written to "+path+"\n", out)
	assert.FileExists(t, path)
}

func TestCLI_GenerateRandomName(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "generate", "--size", "1")
	require.NoError(t, err)
	name, _, ok := strings.Cut(out, ":")
	require.True(t, ok)
	assert.Len(t, name, 36)
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "inspect", "missing")
	assert.Error(t, err)

	_, err = run(t, dir, "generate", "x", "--min", "4", "--max", "2")
	assert.Error(t, err)

	_, err = run(t, dir, "generate", "g", "--size", "1")
	require.NoError(t, err)
	_, err = run(t, dir, "graph", "g", "5")
	assert.Error(t, err)
	_, err = run(t, dir, "breed", "g", "--rate", "3")
	assert.Error(t, err)
	_, err = run(t, dir, "breed", "g", "--rate", "NaN")
	assert.Error(t, err)
	_, err = run(t, dir, "breed", "g", "--count", "10001")
	assert.Error(t, err)
	_, err = run(t, dir, "generate", "deep", "--min", "30", "--max", "30")
	assert.Error(t, err)
	_, err = run(t, dir, "generate", "many", "--size", "10001")
	assert.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "formica version "))
}
