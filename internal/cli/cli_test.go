// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/payload"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(nil)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()

	return buf.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "tiles")
	out, err := runCommand(t, "env", "init", dir)
	require.NoError(t, err)
	require.Contains(t, out, "initialized workspace at "+dir)
	require.Contains(t, out, "activate with: source ")

	return dir
}

func seedCaves(t *testing.T, root string) {
	t.Helper()

	ws, err := workspace.Open(root)
	require.NoError(t, err)

	def := &pack.Definition{
		Schema:  pack.SchemaVersion,
		Name:    "caves",
		Version: "0.1.0",
		Title:   "caves pack",
		Tables: []pack.TableDef{
			{Name: "walls", Items: []string{"rough", "smooth", "collapsed"}},
		},
	}
	dir := ws.PackDir("caves")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, def.Save(dir))
}

func TestEnvInit(t *testing.T) {
	t.Parallel()

	dir := initWorkspace(t)

	_, err := workspace.Open(dir)
	require.NoError(t, err)

	_, err = runCommand(t, "env", "init", dir)
	require.ErrorContains(t, err, "already initialized")

	_, err = runCommand(t, "env", "init", dir, "--force")
	require.NoError(t, err)
}

func TestTablesCommand(t *testing.T) {
	t.Parallel()

	dir := initWorkspace(t)
	seedCaves(t, dir)

	out, err := runCommand(t, "tables", "--workspace", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "TABLE")
	assert.Contains(t, out, "directions")
	assert.Contains(t, out, "builtin")
	assert.Contains(t, out, "caves/walls")
	assert.Contains(t, out, "uniform")
	assert.Contains(t, out, "weighted")
}

func TestRollCommandDeterministic(t *testing.T) {
	t.Parallel()

	dir := initWorkspace(t)
	seedCaves(t, dir)

	args := []string{"roll", "caves/walls", "--workspace", dir, "--seed", "5", "--count", "3"}
	first, err := runCommand(t, args...)
	require.NoError(t, err)
	second, err := runCommand(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, first, "seed:")

	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, []string{"rough", "smooth", "collapsed"}, line)
	}
}

func TestRollCommandReportsPickedSeed(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "roll", "directions", "--workspace", filepath.Join(t.TempDir(), "nowhere"))
	require.NoError(t, err)
	assert.Contains(t, out, "seed: ")
}

func TestFreezeRequiresWorkspace(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "freeze", "-o", "-", "--workspace", filepath.Join(t.TempDir(), "nowhere"))
	require.ErrorContains(t, err, "not initialized")
}

func TestConfigRoutesWorkspace(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(pack.WorkspaceEnv, "")

	dir := initWorkspace(t)

	_, err := runCommand(t, "freeze", "-o", "-")
	require.ErrorContains(t, err, "not initialized")

	cfgPath := filepath.Join(t.TempDir(), "dndtiles.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workspace: "+dir+"\n"), 0o600))

	out, err := runCommand(t, "--config", cfgPath, "freeze", "-o", "-")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestVerifyCommand(t *testing.T) {
	t.Parallel()

	dir := initWorkspace(t)

	_, err := runCommand(t, "verify", "--workspace", dir)
	require.ErrorContains(t, err, "no packs to check")

	seedCaves(t, dir)
	out, err := runCommand(t, "verify", "--workspace", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[ok] caves :: schema")
}

func TestPacksListEmpty(t *testing.T) {
	t.Parallel()

	dir := initWorkspace(t)

	out, err := runCommand(t, "packs", "list", "--workspace", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no packs installed")
}

func TestBundleInfoRejectsPlainFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x90}, 64), 0o600))

	_, err := runCommand(t, "bundle", "info", path)
	require.ErrorIs(t, err, payload.ErrNoPayload)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dndtiles v0.0.0-dev")
	assert.Contains(t, out, "commit: ")
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "bogus")
	require.ErrorContains(t, err, "unknown command")
}
