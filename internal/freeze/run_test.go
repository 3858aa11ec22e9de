// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package freeze

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

func seedWorkspace(t *testing.T, entries ...catalog.Entry) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.Init(filepath.Join(t.TempDir(), ".dndtiles"), false, "test")
	require.NoError(t, err)

	cat, err := catalog.Open(ws.CatalogPath())
	require.NoError(t, err)
	for _, entry := range entries {
		require.NoError(t, cat.Record(context.Background(), entry))
	}
	require.NoError(t, cat.Close())

	return ws
}

func testEntry(name, version string) catalog.Entry {
	return catalog.Entry{
		Name:        name,
		Version:     version,
		Integrity:   "sha256:deadbeef",
		Source:      "local",
		Tables:      1,
		InstalledAt: "2025-01-02T03:04:05Z",
	}
}

func TestRunWritesManifestFile(t *testing.T) {
	t.Parallel()

	ws := seedWorkspace(t, testEntry("woodland", "0.2.0"), testEntry("caves", "1.0.0"))

	out := filepath.Join(t.TempDir(), "packs.txt")
	require.NoError(t, Run(context.Background(), Options{Workspace: ws.Root, OutputPath: out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "caves==1.0.0\nwoodland==0.2.0\n", string(data))
}

func TestRunWritesStdout(t *testing.T) {
	t.Parallel()

	ws := seedWorkspace(t, testEntry("caves", "1.0.0"))

	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), Options{
		Workspace:  ws.Root,
		OutputPath: StdoutPath,
		Out:        &buf,
	}))
	require.Equal(t, "caves==1.0.0\n", buf.String())
}

func TestRunEmptyCatalog(t *testing.T) {
	t.Parallel()

	ws := seedWorkspace(t)

	out := filepath.Join(t.TempDir(), "packs.txt")
	require.NoError(t, Run(context.Background(), Options{Workspace: ws.Root, OutputPath: out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestRunRequiresWorkspace(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Options{
		Workspace:  filepath.Join(t.TempDir(), "missing"),
		OutputPath: filepath.Join(t.TempDir(), "packs.txt"),
	})
	require.ErrorContains(t, err, "not initialized")
}
