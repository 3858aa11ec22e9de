// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package payload

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testInfo() Info {
	return Info{
		Schema:    InfoSchema,
		ID:        "a7cf02aa-7e6f-40f8-a2a0-5edbe2783d52",
		Name:      "dnd_tiles",
		Mode:      ModeWindowed,
		CreatedAt: "2025-01-02T03:04:05Z",
		Runtime:   "test",
		Packs:     []PackRecord{{Name: "caves", Version: "0.1.0", Integrity: "sha256:aa"}},
	}
}

func buildArchive(t *testing.T, info Info, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	data, err := json.Marshal(info)
	require.NoError(t, err)
	w, err := zw.Create(InfoFileName)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)

	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func writeFakeBinary(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dnd_tiles")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xAB}, 4096), 0o700))

	return path
}

func TestAppendAndOpen(t *testing.T) {
	t.Parallel()

	path := writeFakeBinary(t)
	archive := buildArchive(t, testInfo(), map[string][]byte{
		"packs/caves/pack.yaml": []byte("schema: 1\n"),
		"entry/run.txt":         []byte("roll\n"),
	})
	require.NoError(t, Append(path, archive))

	p, err := Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, p.Close())
	}()

	require.Equal(t, "dnd_tiles", p.Info.Name)
	require.True(t, p.Windowed())
	require.Len(t, p.Info.Packs, 1)

	data, err := fs.ReadFile(p.FS(), "entry/run.txt")
	require.NoError(t, err)
	require.Equal(t, "roll\n", string(data))

	packs, err := p.PacksFS()
	require.NoError(t, err)
	data, err = fs.ReadFile(packs, "caves/pack.yaml")
	require.NoError(t, err)
	require.Equal(t, "schema: 1\n", string(data))
}

func TestOpenPlainBinary(t *testing.T) {
	t.Parallel()

	_, err := Open(writeFakeBinary(t))
	require.ErrorIs(t, err, ErrNoPayload)
}

func TestOpenTinyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stub")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o600))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrNoPayload)
}

func TestOpenOversizedTrailer(t *testing.T) {
	t.Parallel()

	path := writeFakeBinary(t)
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:8], 1<<40)
	copy(trailer[8:], magic[:])

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	_, err = f.Write(trailer[:])
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Open(path)
	require.ErrorIs(t, err, errCorruptPayload)
}

func TestOpenGarbageArchive(t *testing.T) {
	t.Parallel()

	path := writeFakeBinary(t)
	require.NoError(t, Append(path, []byte("this is not a zip archive")))

	_, err := Open(path)
	require.ErrorIs(t, err, errCorruptPayload)
}

func TestOpenMissingInfo(t *testing.T) {
	t.Parallel()

	path := writeFakeBinary(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("entry/run.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("roll\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, Append(path, buf.Bytes()))

	_, err = Open(path)
	require.ErrorIs(t, err, errCorruptPayload)
}

func TestOpenWrongSchema(t *testing.T) {
	t.Parallel()

	path := writeFakeBinary(t)
	info := testInfo()
	info.Schema = 99
	require.NoError(t, Append(path, buildArchive(t, info, nil)))

	_, err := Open(path)
	require.ErrorIs(t, err, errBadInfoSchema)
}

func TestAppendEmptyArchive(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Append(writeFakeBinary(t), nil), errEmptyArchive)
}
