package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFixture(t *testing.T, home, contents string) {
	t.Helper()

	dir := filepath.Join(home, ".si")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o644))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[controller]")
	assert.Contains(t, stdout, "http://127.0.0.1:9200")
	assert.Contains(t, stdout, "object_actions = true")
}

func TestConfigShowReflectsConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfigFixture(t, home, `
[controller]
url = "http://sim.local:8080"

[images]
color = true
`)

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "http://sim.local:8080")
	assert.Contains(t, stdout, "color = true")
}

func TestInteractRequiresTerminal(t *testing.T) {
	// Tests never run attached to a terminal, so the session must
	// refuse before touching the controller.
	_, _, err := executeCLI(t, t.TempDir(), "interact")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

func TestInteractRejectsUnknownChannel(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "interact", "--save", "thermal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel \"thermal\"")
}

func TestInteractRejectsDigitBindingFromConfig(t *testing.T) {
	home := t.TempDir()
	writeConfigFixture(t, home, `
[actions.bindings]
5 = "MoveAhead"
`)

	_, _, err := executeCLI(t, home, "interact")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved for object commands")
}

func TestInteractRejectsUnknownDefaultAction(t *testing.T) {
	home := t.TempDir()
	writeConfigFixture(t, home, `
[actions]
defaults = ["Levitate"]
`)

	_, _, err := executeCLI(t, home, "interact")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown default action")
}

func TestUnknownCommandFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "teleport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"teleport\"")
}
