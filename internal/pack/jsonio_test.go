// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCleanStatePath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	abs := filepath.Join(tmpDir, "lock.json")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Relative", "state/lock.json", filepath.Clean("state/lock.json"), nil},
		{"Absolute", abs, abs, nil},
		{"ParentTraversal", "../lock.json", "", errPathOutsideRoot},
		{"Empty", "", ".", nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := cleanStatePath(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLockfileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "state", "lock.json")

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lock := NewLockfile([]LockEntry{
		{
			Name:        "wilds",
			Version:     "0.3.1",
			Integrity:   "sha256:abc",
			Source:      "dir:./registry",
			InstalledAt: now.Format(time.RFC3339),
		},
		{
			Name:        "dungeon-core",
			Version:     "1.2.0",
			Integrity:   "sha256:def",
			Source:      "dir:./registry",
			InstalledAt: now.Format(time.RFC3339),
		},
	}, now)

	// NewLockfile sorts by name.
	require.Equal(t, "dungeon-core", lock.Entries[0].Name)

	require.NoError(t, WriteLock(path, lock))

	got, err := ReadLock(path)
	require.NoError(t, err)
	require.Equal(t, lock, got)
}

func TestLockfileEdits(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lock := NewLockfile([]LockEntry{{Name: "wilds", Version: "0.3.1"}}, now)

	lock.Upsert(LockEntry{Name: "dungeon-core", Version: "1.2.0"})
	require.Len(t, lock.Entries, 2)
	require.Equal(t, "dungeon-core", lock.Entries[0].Name)

	lock.Upsert(LockEntry{Name: "wilds", Version: "0.4.0"})
	require.Len(t, lock.Entries, 2)

	entry, ok := lock.Entry("wilds")
	require.True(t, ok)
	require.Equal(t, "0.4.0", entry.Version)

	require.True(t, lock.Remove("wilds"))
	require.False(t, lock.Remove("wilds"))
	require.Len(t, lock.Entries, 1)
}
