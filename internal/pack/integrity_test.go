// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	}

	return root
}

func TestTreeHash(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"pack.yaml":        "schema: 1\n",
		"README.md":        "docs\n",
		"assets/icon.png":  "binary-ish",
		"assets/tiles.txt": "cave\nhall\n",
	}

	first, err := TreeHash(writeTree(t, files))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first, "sha256:"))

	second, err := TreeHash(writeTree(t, files))
	require.NoError(t, err)
	require.Equal(t, first, second)

	t.Run("ContentChanges", func(t *testing.T) {
		t.Parallel()
		changed := map[string]string{}
		for k, v := range files {
			changed[k] = v
		}
		changed["pack.yaml"] = "schema: 2\n"
		got, err := TreeHash(writeTree(t, changed))
		require.NoError(t, err)
		require.NotEqual(t, first, got)
	})

	t.Run("PathChanges", func(t *testing.T) {
		t.Parallel()
		moved := map[string]string{}
		for k, v := range files {
			moved[k] = v
		}
		delete(moved, "README.md")
		moved["NOTES.md"] = "docs\n"
		got, err := TreeHash(writeTree(t, moved))
		require.NoError(t, err)
		require.NotEqual(t, first, got)
	})

	t.Run("GitIgnored", func(t *testing.T) {
		t.Parallel()
		root := writeTree(t, files)
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref: x"), 0o640))
		got, err := TreeHash(root)
		require.NoError(t, err)
		require.Equal(t, first, got)
	})
}

func TestVerifyTree(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"pack.yaml": "schema: 1\n"})
	digest, err := TreeHash(root)
	require.NoError(t, err)

	require.NoError(t, VerifyTree(root, digest))
	require.ErrorIs(t, VerifyTree(root, "sha256:0000"), errIntegrityMismatch)
}
