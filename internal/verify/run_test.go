// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package verify

import (
	"bytes"
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

const brokenDefinition = `schema: 3
name: Bad Caves
version: not-a-version
requires:
  - woodland >= banana
tables:
  - name: walls
    items: [rough, rough]
  - name: walls
    items: [smooth]
  - name: mood
    weights:
      calm: -1
`

func cleanDefinition() *pack.Definition {
	return &pack.Definition{
		Schema:   pack.SchemaVersion,
		Name:     "caves",
		Version:  "0.1.0",
		Title:    "Cave Tiles",
		Requires: []string{"woodland >=0.1.0"},
		Tables: []pack.TableDef{
			{Name: "walls", Items: []string{"rough", "smooth", "collapsed"}},
			{Name: "mood", Weights: map[string]float64{"calm": 2, "tense": 1}},
		},
	}
}

func initWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.Init(filepath.Join(t.TempDir(), "tiles"), false, "test")
	require.NoError(t, err)

	return ws
}

func installDefinition(t *testing.T, ws *workspace.Workspace, def *pack.Definition) {
	t.Helper()

	dir := ws.PackDir(def.Name)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, def.Save(dir))
}

func writeBrokenPack(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, pack.DefinitionFile), []byte(brokenDefinition), 0o600))
}

func TestRunCleanWorkspace(t *testing.T) {
	t.Parallel()

	ws := initWorkspace(t)
	installDefinition(t, ws, cleanDefinition())

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), Options{Workspace: ws.Root, Out: &out}))

	assert.Contains(t, out.String(), "[ok] caves :: schema")
	assert.Contains(t, out.String(), "[ok] caves :: table:mood")
	assert.Contains(t, out.String(), "[ok] caves :: requires:woodland >=0.1.0")
	assert.NotContains(t, out.String(), "[FAIL]")
}

func TestRunBrokenPack(t *testing.T) {
	t.Parallel()

	ws := initWorkspace(t)
	writeBrokenPack(t, ws.PackDir("caves"))

	var out bytes.Buffer
	err := Run(context.Background(), Options{Workspace: ws.Root, Out: &out})
	require.ErrorIs(t, err, errChecksFailed)
	assert.ErrorContains(t, err, "8 failing checks")

	assert.Contains(t, out.String(), "[FAIL] Bad Caves :: schema (want schema 1, got 3)")
	assert.Contains(t, out.String(), "[FAIL] Bad Caves :: version")
	assert.Contains(t, out.String(), "[FAIL] Bad Caves :: title (title is empty)")
	assert.Contains(t, out.String(), "[FAIL] Bad Caves :: requires:woodland >= banana")
	assert.Contains(t, out.String(), "[FAIL] Bad Caves :: unique-tables (duplicate table walls)")
	assert.Contains(t, out.String(), "[FAIL] Bad Caves :: table:mood")
}

func TestRunLockDrift(t *testing.T) {
	t.Parallel()

	ws := initWorkspace(t)
	installDefinition(t, ws, cleanDefinition())

	sum, err := pack.TreeHash(ws.PackDir("caves"))
	require.NoError(t, err)
	lock := pack.NewLockfile([]pack.LockEntry{
		{Name: "caves", Version: "0.1.0", Integrity: sum, Source: "test"},
	}, time.Now())
	require.NoError(t, pack.WriteLock(ws.LockPath(), lock))

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), Options{Workspace: ws.Root, Out: &out}))
	assert.Contains(t, out.String(), "[ok] caves :: lock")

	// Any edit under the installed tree drifts it away from the recorded
	// digest.
	require.NoError(t, os.WriteFile(filepath.Join(ws.PackDir("caves"), "extra.txt"), []byte("drift"), 0o600))

	out.Reset()
	err = Run(context.Background(), Options{Workspace: ws.Root, Out: &out})
	require.ErrorIs(t, err, errChecksFailed)
	assert.ErrorContains(t, err, "1 failing checks")
	assert.Contains(t, out.String(), "[FAIL] caves :: lock")
}

func TestRunExplicitPaths(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "wip-pack")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, cleanDefinition().Save(dir))

	// No workspace anywhere near this root.
	missing := filepath.Join(t.TempDir(), "nowhere")

	var out bytes.Buffer
	err := Run(context.Background(), Options{Workspace: missing, Paths: []string{dir}, Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[ok] caves :: title")
}

func TestRunRequiresWorkspaceWithoutPaths(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nowhere")

	err := Run(context.Background(), Options{Workspace: missing, Out: new(bytes.Buffer)})
	require.ErrorContains(t, err, "not initialized")
}

func TestRunNoPacks(t *testing.T) {
	t.Parallel()

	ws := initWorkspace(t)

	err := Run(context.Background(), Options{Workspace: ws.Root, Out: new(bytes.Buffer)})
	require.ErrorIs(t, err, errNoPacks)
}

func TestRunWritesJUnitReport(t *testing.T) {
	t.Parallel()

	ws := initWorkspace(t)
	writeBrokenPack(t, ws.PackDir("caves"))

	junitPath := filepath.Join(t.TempDir(), "reports", "verify.xml")
	err := Run(context.Background(), Options{Workspace: ws.Root, JUnitPath: junitPath, Out: new(bytes.Buffer)})
	require.ErrorIs(t, err, errChecksFailed)

	data, err := os.ReadFile(junitPath)
	require.NoError(t, err)

	var suite junitSuite
	require.NoError(t, xml.Unmarshal(data, &suite))
	assert.Equal(t, "dndtiles-verify", suite.Name)
	assert.Equal(t, 9, suite.Tests)
	assert.Equal(t, 8, suite.Failures)

	require.NotEmpty(t, suite.TestCases)
	assert.Equal(t, "packs.Bad Caves", suite.TestCases[0].Classname)
	failed := 0
	for _, tc := range suite.TestCases {
		if tc.Failure != nil {
			failed++
		}
	}
	assert.Equal(t, suite.Failures, failed)
}
