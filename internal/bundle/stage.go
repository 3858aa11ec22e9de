// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/payload"
)

// zipEpoch stamps every archived file, so identical stages zip to identical
// bytes regardless of when they were staged.
var zipEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// stager copies files into the payload staging directory and records the
// file manifest as it goes. Record paths are forward-slash, relative to the
// payload root.
type stager struct {
	root    string
	records []payload.FileRecord
}

func (s *stager) addTree(src, dstRel string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(src, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return os.MkdirAll(filepath.Join(s.root, filepath.FromSlash(dstRel)), 0o750)
		}
		if rel == ".git" || strings.HasPrefix(rel, ".git"+string(os.PathSeparator)) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		targetRel := path.Join(dstRel, filepath.ToSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(s.root, filepath.FromSlash(targetRel)), 0o750)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		return s.copyFile(p, targetRel)
	})
}

func (s *stager) addFile(src, dstRel string) error {
	target := filepath.Join(s.root, filepath.FromSlash(dstRel))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}

	return s.copyFile(src, dstRel)
}

func (s *stager) copyFile(src, dstRel string) error {
	data, err := os.ReadFile(src) //nolint:gosec // staging caller-chosen inputs
	if err != nil {
		return err
	}
	target := filepath.Join(s.root, filepath.FromSlash(dstRel))
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return err
	}
	sum, err := pack.FileHash(target)
	if err != nil {
		return err
	}
	s.records = append(s.records, payload.FileRecord{
		Path:   dstRel,
		Size:   int64(len(data)),
		SHA256: sum,
	})

	return nil
}

func (s *stager) files() []payload.FileRecord {
	sorted := append([]payload.FileRecord(nil), s.records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	return sorted
}

// zipPayload archives the staged tree with sorted names and fixed
// timestamps.
func zipPayload(stageDir string) ([]byte, error) {
	var names []string
	err := filepath.WalkDir(stageDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(stageDir, p)
		if relErr != nil {
			return relErr
		}
		names = append(names, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk stage: %w", err)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
		data, err := os.ReadFile(filepath.Join(stageDir, filepath.FromSlash(name))) //nolint:gosec // staged by us
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("archive %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func copyExecutable(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // runtime chosen by the caller
	if err != nil {
		return fmt.Errorf("open runtime: %w", err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755) //nolint:gosec // distributable binary
	if err != nil {
		return errors.Join(fmt.Errorf("create %s: %w", dst, err), in.Close())
	}
	_, copyErr := io.Copy(out, in)

	return errors.Join(copyErr, out.Close(), in.Close())
}

// cleanOutputPath normalizes a build or dist root and refuses paths that
// climb out of the working directory.
func cleanOutputPath(p string) (string, error) {
	if p == "" {
		return "", errEmptyOutputPath
	}
	clean := filepath.Clean(p)
	if strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: %s", errUnsafeOutputPath, p)
	}

	return clean, nil
}
