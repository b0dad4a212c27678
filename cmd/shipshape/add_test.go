package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func executeCommand(args ...string) (string, error) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeReadyConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "machine.yaml")
	content := `version: "1.0.0"
name: Dev Box
items:
  - id: terminal
    name: Terminal
    paths:
      - /nonexistent/terminal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAddCommandRegistersPreset(t *testing.T) {
	home := setupTestHome(t)
	cfgPath := writeReadyConfig(t, home)

	stdout, err := executeCommand("add", cfgPath, "--id", "dev-box", "--name", "Dev Box")
	require.NoError(t, err)
	require.Contains(t, stdout, "✓ Added preset 'dev-box' (Dev Box)")
	require.Contains(t, stdout, "Items: 1")

	stdout, err = executeCommand("list")
	require.NoError(t, err)
	require.Contains(t, stdout, "dev-box")
	require.Contains(t, stdout, "Dev Box")
}

func TestAddCommandDerivesNameAndID(t *testing.T) {
	home := setupTestHome(t)
	cfgPath := writeReadyConfig(t, home)

	stdout, err := executeCommand("add", cfgPath)
	require.NoError(t, err)
	require.Contains(t, stdout, "✓ Added preset")
	require.Contains(t, stdout, "(machine)")
}

func TestAddCommandRejectsMissingFile(t *testing.T) {
	home := setupTestHome(t)

	_, err := executeCommand("add", filepath.Join(home, "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to add")
}

func TestAddCommandRejectsInvalidConfig(t *testing.T) {
	home := setupTestHome(t)
	path := filepath.Join(home, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [not a string\n"), 0o644))

	_, err := executeCommand("add", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "validating configuration")
}

func TestAddCommandDuplicateID(t *testing.T) {
	home := setupTestHome(t)
	cfgPath := writeReadyConfig(t, home)

	_, err := executeCommand("add", cfgPath, "--id", "dev-box")
	require.NoError(t, err)

	_, err = executeCommand("add", cfgPath, "--id", "dev-box")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestRemoveCommandDeletesPreset(t *testing.T) {
	home := setupTestHome(t)
	cfgPath := writeReadyConfig(t, home)

	_, err := executeCommand("add", cfgPath, "--id", "dev-box")
	require.NoError(t, err)

	stdout, err := executeCommand("remove", "dev-box", "--force")
	require.NoError(t, err)
	require.Contains(t, stdout, "✓ Removed preset 'dev-box'")
	require.Contains(t, stdout, "was not deleted")

	stdout, err = executeCommand("list")
	require.NoError(t, err)
	require.Contains(t, stdout, "No presets registered yet.")
}

func TestRemoveCommandUnknownPreset(t *testing.T) {
	setupTestHome(t)

	_, err := executeCommand("remove", "ghost", "--force")
	require.Error(t, err)
	require.Contains(t, err.Error(), "looking up preset")
}

func TestValidateAndNormalizePath(t *testing.T) {
	home := setupTestHome(t)
	cfgPath := writeReadyConfig(t, home)

	abs, err := validateAndNormalizePath(cfgPath)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))

	_, err = validateAndNormalizePath("  ")
	require.Error(t, err)

	_, err = validateAndNormalizePath(home)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is a directory")
}

func TestDeriveNameFromPath(t *testing.T) {
	require.Equal(t, "machine", deriveNameFromPath("/tmp/machine.yaml"))
	require.Equal(t, "dev-box", deriveNameFromPath("dev-box.yml"))
	require.Equal(t, ".hidden", deriveNameFromPath("/tmp/.hidden"))
}
