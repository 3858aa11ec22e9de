// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/internal/pack"
)

func TestInitAndOpen(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "ws")

	ws, err := Init(root, false, "1.0.0-test")
	require.NoError(t, err)
	require.Equal(t, EnvSchema, ws.Env.Schema)
	_, err = uuid.Parse(ws.Env.ID)
	require.NoError(t, err)

	for _, dir := range []string{ws.PacksDir(), ws.CacheDir(), ws.StateDir()} {
		info, statErr := os.Stat(dir)
		require.NoError(t, statErr)
		require.True(t, info.IsDir())
	}

	opened, err := Open(root)
	require.NoError(t, err)
	require.Equal(t, ws.Env, opened.Env)
}

func TestInitRefusesExisting(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "ws")

	first, err := Init(root, false, "1.0.0-test")
	require.NoError(t, err)

	_, err = Init(root, false, "1.0.0-test")
	require.ErrorIs(t, err, errAlreadyInitialized)

	// Force rewrites the identity but keeps installed packs.
	packDir := first.PackDir("dungeon-core")
	require.NoError(t, os.MkdirAll(packDir, 0o750))

	second, err := Init(root, true, "1.0.0-test")
	require.NoError(t, err)
	require.NotEqual(t, first.Env.ID, second.Env.ID)

	_, err = os.Stat(packDir)
	require.NoError(t, err)
}

func TestOpenFailures(t *testing.T) {
	t.Parallel()

	t.Run("NotInitialized", func(t *testing.T) {
		t.Parallel()
		_, err := Open(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, errNotInitialized)
	})

	t.Run("BadSchema", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "ws")
		_, err := Init(root, false, "1.0.0-test")
		require.NoError(t, err)
		require.NoError(t, pack.WriteJSON(filepath.Join(root, "env.json"), Env{Schema: 99}))

		_, err = Open(root)
		require.ErrorIs(t, err, errBadEnvSchema)
	})

	t.Run("MissingDir", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "ws")
		ws, err := Init(root, false, "1.0.0-test")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(ws.PacksDir()))

		_, err = Open(root)
		require.ErrorIs(t, err, errCorruptLayout)
	})
}

func TestActivationScripts(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "ws")
	ws, err := Init(root, false, "1.0.0-test")
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)

	posix, err := os.ReadFile(ws.ActivatePath())
	require.NoError(t, err)
	require.Contains(t, string(posix), "DNDTILES_HOME=")
	require.Contains(t, string(posix), absRoot)
	require.Contains(t, string(posix), "deactivate")

	ps1, err := os.ReadFile(ws.ActivatePS1Path())
	require.NoError(t, err)
	require.Contains(t, string(ps1), "$Env:DNDTILES_HOME")
	require.Contains(t, string(ps1), absRoot)
	require.Contains(t, string(ps1), "Deactivate-DndTiles")
}

func TestResolve(t *testing.T) {
	require.Equal(t, "/explicit", Resolve("/explicit"))

	t.Setenv(pack.WorkspaceEnv, "/from-env")
	require.Equal(t, "/from-env", Resolve(""))

	t.Setenv(pack.WorkspaceEnv, "")
	require.Equal(t, pack.DefaultWorkspaceDir, Resolve(""))
}

func TestLockRoundTrip(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "ws")
	ws, err := Init(root, false, "1.0.0-test")
	require.NoError(t, err)

	lock, err := ws.AcquireLock()
	require.NoError(t, err)
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := ws.AcquireLock()
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
