// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package payload reads and writes the archive a bundled binary carries
// behind its executable image. The layout is the executable bytes, a zip
// archive, the archive size as eight little-endian bytes and an eight byte
// magic, so a plain binary and a bundle stay distinguishable from the tail
// alone.
package payload

import (
	"archive/zip"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const (
	// InfoSchema is the bundle.json schema this build reads and writes.
	InfoSchema = 1

	// InfoFileName is the metadata file at the archive root.
	InfoFileName = "bundle.json"
	// PacksDirName holds one directory per bundled pack.
	PacksDirName = "packs"
	// EntryDirName holds the entry point material of the bundle.
	EntryDirName = "entry"
	// AssetsDirName holds icons and other collected extras.
	AssetsDirName = "assets"

	// ModeConsole bundles keep the terminal interface as their default
	// command, ModeWindowed bundles boot straight into the TUI.
	ModeConsole  = "console"
	ModeWindowed = "windowed"
)

const trailerSize = 16

var magic = [8]byte{'D', 'T', 'I', 'L', 'E', 'S', '0', '1'}

// Info is the decoded bundle.json of a payload.
type Info struct {
	Schema    int          `json:"schema"`
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Mode      string       `json:"mode"`
	Entry     string       `json:"entry,omitempty"`
	Icon      string       `json:"icon,omitempty"`
	CreatedAt string       `json:"createdAt"`
	Runtime   string       `json:"runtime"`
	Packs     []PackRecord `json:"packs"`
	Files     []FileRecord `json:"files"`
}

// PackRecord names one pack carried by the bundle.
type PackRecord struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Integrity string `json:"integrity"`
}

// FileRecord describes one archived file.
type FileRecord struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// Payload is an opened bundle archive.
type Payload struct {
	Info Info

	file *os.File
	zr   *zip.Reader
}

// Open probes path for a payload trailer. Binaries without one fail with
// ErrNoPayload; a trailer pointing at an unreadable archive fails with a
// corruption error instead.
func Open(path string) (*Payload, error) {
	f, err := os.Open(path) //nolint:gosec // probing our own executable
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	p, err := read(f)
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}
	p.file = f

	return p, nil
}

// Self probes the running executable.
func Self() (*Payload, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	return Open(exe)
}

func read(f *os.File) (*Payload, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() < trailerSize {
		return nil, ErrNoPayload
	}

	var trailer [trailerSize]byte
	if _, err := f.ReadAt(trailer[:], stat.Size()-trailerSize); err != nil {
		return nil, fmt.Errorf("read trailer: %w", err)
	}
	if [8]byte(trailer[8:]) != magic {
		return nil, ErrNoPayload
	}

	size := binary.LittleEndian.Uint64(trailer[:8])
	if size == 0 || size > uint64(stat.Size()-trailerSize) {
		return nil, fmt.Errorf("%w: archive size %d out of range", errCorruptPayload, size)
	}

	offset := stat.Size() - trailerSize - int64(size)
	zr, err := zip.NewReader(io.NewSectionReader(f, offset, int64(size)), int64(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptPayload, err)
	}

	info, err := readInfo(zr)
	if err != nil {
		return nil, err
	}

	return &Payload{Info: info, zr: zr}, nil
}

func readInfo(zr *zip.Reader) (Info, error) {
	data, err := fs.ReadFile(zr, InfoFileName)
	if err != nil {
		return Info{}, fmt.Errorf("%w: missing %s", errCorruptPayload, InfoFileName)
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("%w: %s: %v", errCorruptPayload, InfoFileName, err)
	}
	if info.Schema != InfoSchema {
		return Info{}, fmt.Errorf("%w: %d", errBadInfoSchema, info.Schema)
	}

	return info, nil
}

// FS exposes the whole archive.
func (p *Payload) FS() fs.FS {
	return p.zr
}

// PacksFS exposes the packs area of the archive, one directory per pack.
func (p *Payload) PacksFS() (fs.FS, error) {
	return fs.Sub(p.zr, PacksDirName)
}

// Windowed reports whether the bundle wants the TUI as its default command.
func (p *Payload) Windowed() bool {
	return p.Info.Mode == ModeWindowed
}

func (p *Payload) Close() error {
	if p.file == nil {
		return nil
	}

	return p.file.Close()
}

// Append attaches archive to the executable at path and seals it with the
// size and magic trailer.
func Append(path string, archive []byte) error {
	if len(archive) == 0 {
		return errEmptyArchive
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0) //nolint:gosec // bundler output path
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(archive); err != nil {
		return errors.Join(fmt.Errorf("append archive: %w", err), f.Close())
	}

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:8], uint64(len(archive)))
	copy(trailer[8:], magic[:])
	if _, err := f.Write(trailer[:]); err != nil {
		return errors.Join(fmt.Errorf("append trailer: %w", err), f.Close())
	}

	return f.Close()
}
