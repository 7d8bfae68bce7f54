package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/soul"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "soul version "+soul.Version+"\n", out)
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	patch := filepath.Join(dir, "patch.yaml")
	require.NoError(t, os.WriteFile(base, []byte("name: John\n"), 0o644))
	require.NoError(t, os.WriteFile(patch, []byte("name: Jack\n"), 0o644))

	out, err := run(t, "apply", "--format", "json", base, patch)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"event":"change","old":{"name":"John"},"new":{"name":"Jack"}}`, lines[0])
	assert.JSONEq(t, `{"name":"Jack"}`, lines[1])
}

func TestApplyCommand_BadLogLevel(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "warn"))
	})

	_, err := run(t, "apply", "--log-level", "loud", "base.yaml")
	assert.ErrorContains(t, err, "invalid log level")
}
