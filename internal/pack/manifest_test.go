// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	t.Parallel()

	t.Run("CommentsAndBlanks", func(t *testing.T) {
		t.Parallel()
		input := "# frozen by dndtiles\ndungeon-core==1.2.0\n\nwilds==0.3.1 # trailing note\n"
		pins, err := ParseManifest(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, []Pin{
			{Name: "dungeon-core", Version: "1.2.0"},
			{Name: "wilds", Version: "0.3.1"},
		}, pins)
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		pins, err := ParseManifest(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, pins)
	})

	tests := []struct {
		desc    string
		input   string
		wantErr error
	}{
		{"SingleEquals", "dungeon-core=1.2.0\n", errMalformedPin},
		{"MissingVersion", "dungeon-core==\n", errBadVersion},
		{"UppercaseName", "Dungeon==1.0.0\n", errBadName},
		{"BadVersion", "dungeon-core==latest\n", errBadVersion},
		{"Duplicate", "a==1.0.0\na==2.0.0\n", errDuplicatePin},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			_, err := ParseManifest(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseManifestReportsLine(t *testing.T) {
	t.Parallel()

	input := "# header\n\na==1.0.0\nbroken line\n"
	_, err := ParseManifest(strings.NewReader(input))
	require.ErrorIs(t, err, errMalformedPin)
	require.Contains(t, err.Error(), "line 4")
}

func TestFormatManifest(t *testing.T) {
	t.Parallel()

	got := FormatManifest([]Pin{
		{Name: "wilds", Version: "0.3.1"},
		{Name: "dungeon-core", Version: "1.2.0"},
	})
	require.Equal(t, "dungeon-core==1.2.0\nwilds==0.3.1\n", got)

	require.Empty(t, FormatManifest(nil))
}

func TestManifestFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "packs.txt")

	pins := []Pin{
		{Name: "dungeon-core", Version: "1.2.0"},
		{Name: "wilds", Version: "0.3.1"},
	}
	require.NoError(t, WriteManifestFile(path, pins))

	got, err := ReadManifestFile(path)
	require.NoError(t, err)
	require.Equal(t, pins, got)

	// Overwrite replaces, never appends.
	require.NoError(t, WriteManifestFile(path, pins[:1]))
	got, err = ReadManifestFile(path)
	require.NoError(t, err)
	require.Equal(t, pins[:1], got)
}
