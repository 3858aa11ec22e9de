// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/internal/pack"
)

func openTest(t *testing.T) *Catalog {
	t.Helper()

	cat, err := Open(filepath.Join(t.TempDir(), "state", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cat.Close()
	})

	return cat
}

func TestRecordGetList(t *testing.T) {
	t.Parallel()

	cat := openTest(t)
	ctx := context.Background()

	wilds := Entry{
		Name: "wilds", Version: "0.3.1", Integrity: "sha256:abc",
		Source: "dir:./registry", Tables: 2, InstalledAt: "2025-06-01T12:00:00Z",
	}
	core := Entry{
		Name: "dungeon-core", Version: "1.2.0", Integrity: "sha256:def",
		Source: "dir:./registry", Tables: 4, InstalledAt: "2025-06-01T12:00:00Z",
	}
	require.NoError(t, cat.Record(ctx, wilds))
	require.NoError(t, cat.Record(ctx, core))

	got, err := cat.Get(ctx, "wilds")
	require.NoError(t, err)
	require.Equal(t, wilds, got)

	entries, err := cat.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []Entry{core, wilds}, entries)
}

func TestRecordUpserts(t *testing.T) {
	t.Parallel()

	cat := openTest(t)
	ctx := context.Background()

	entry := Entry{Name: "wilds", Version: "0.3.1", Integrity: "sha256:abc", Source: "s", InstalledAt: "t"}
	require.NoError(t, cat.Record(ctx, entry))

	entry.Version = "0.4.0"
	entry.Integrity = "sha256:def"
	require.NoError(t, cat.Record(ctx, entry))

	got, err := cat.Get(ctx, "wilds")
	require.NoError(t, err)
	require.Equal(t, "0.4.0", got.Version)

	entries, err := cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	cat := openTest(t)
	ctx := context.Background()

	require.NoError(t, cat.Record(ctx, Entry{Name: "wilds", Version: "0.3.1", Integrity: "i", Source: "s", InstalledAt: "t"}))
	require.NoError(t, cat.Remove(ctx, "wilds"))
	require.ErrorIs(t, cat.Remove(ctx, "wilds"), ErrNotInstalled)

	_, err := cat.Get(ctx, "wilds")
	require.ErrorIs(t, err, ErrNotInstalled)
}

func TestPins(t *testing.T) {
	t.Parallel()

	cat := openTest(t)
	ctx := context.Background()

	pins, err := cat.Pins(ctx)
	require.NoError(t, err)
	require.Empty(t, pins)

	require.NoError(t, cat.Record(ctx, Entry{Name: "wilds", Version: "0.3.1", Integrity: "i", Source: "s", InstalledAt: "t"}))
	require.NoError(t, cat.Record(ctx, Entry{Name: "dungeon-core", Version: "1.2.0", Integrity: "i", Source: "s", InstalledAt: "t"}))

	pins, err = cat.Pins(ctx)
	require.NoError(t, err)
	require.Equal(t, []pack.Pin{
		{Name: "dungeon-core", Version: "1.2.0"},
		{Name: "wilds", Version: "0.3.1"},
	}, pins)
}
