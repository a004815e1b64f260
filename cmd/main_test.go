package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cliconfig"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExpandCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("b: x\n__series__:\n  a: [0, 1, 2]\n  c: [[x, y], [z]]\n"), 0644))

	out, err := run(t, "expand", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.JSONEq(t, `{"a": 0, "b": "x", "c": ["x", "y"]}`, lines[0])
	assert.JSONEq(t, `{"a": 0, "b": "x", "c": ["z"]}`, lines[1])

	t.Run("Order", func(t *testing.T) {
		out, err := run(t, "expand", "--order", "c,a", path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 6)
		assert.JSONEq(t, `{"a": 1, "b": "x", "c": ["x", "y"]}`, lines[1])
	})

	t.Run("FileOrder", func(t *testing.T) {
		reversed := filepath.Join(dir, "reversed.json")
		require.NoError(t, os.WriteFile(reversed, []byte(`{"__series__": {"c": ["x", "y"], "a": [0, 1]}}`), 0644))

		out, err := run(t, "expand", reversed)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.JSONEq(t, `{"a": 1, "c": "x"}`, lines[1])
		assert.JSONEq(t, `{"a": 0, "c": "y"}`, lines[2])
	})

	t.Run("BadFile", func(t *testing.T) {
		_, err := run(t, "expand", filepath.Join(dir, "runs.ini"))
		assert.ErrorIs(t, err, cliconfig.ErrUnsupportedFormat)
	})
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"a": 1, "lr": 0.5, "__series__": {"b": ["p", "q"]}}`), 0644))

	t.Run("Plain", func(t *testing.T) {
		dst := filepath.Join(dir, "out.toml")
		_, err := run(t, "convert", src, dst)
		require.NoError(t, err)

		back, err := cliconfig.ReadConfigFile(dst)
		require.NoError(t, err)
		assert.Equal(t, int64(1), back["a"])
		assert.Equal(t, 0.5, back["lr"])
		assert.Contains(t, back, cliconfig.SeriesKey)
	})

	t.Run("Expand", func(t *testing.T) {
		dst := filepath.Join(dir, "runs.yaml")
		out, err := run(t, "convert", "--expand", src, dst)
		require.NoError(t, err)
		assert.Contains(t, out, "runs-0.yaml")

		back, err := cliconfig.ReadConfigFile(filepath.Join(dir, "runs-1.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "q", back["b"])
		assert.NotContains(t, back, cliconfig.SeriesKey)
	})
}

func TestNumberedPath(t *testing.T) {
	assert.Equal(t, "runs-0.toml", numberedPath("runs.toml", 0))
	assert.Equal(t, "dir.d/runs-2", numberedPath("dir.d/runs", 2))
}
