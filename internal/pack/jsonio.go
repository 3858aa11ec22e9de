// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadLock parses the lock.json at path.
func ReadLock(path string) (*Lockfile, error) {
	safePath, err := cleanStatePath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(safePath)
	if err != nil {
		return nil, fmt.Errorf("read lock: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var l Lockfile
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return nil, fmt.Errorf("parse lock: %w", err)
	}

	return &l, nil
}

// WriteLock atomically replaces the lock.json at path.
func WriteLock(path string, l *Lockfile) error {
	safePath, err := cleanStatePath(path)
	if err != nil {
		return err
	}
	if parentErr := makeParent(safePath); parentErr != nil {
		return parentErr
	}

	return WriteJSON(safePath, l)
}

func makeParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, 0o750)
}

// WriteJSON writes v as indented JSON through a temp file and rename, so a
// crash never leaves a torn state file behind.
func WriteJSON(path string, v any) error {
	tmp := path + ".tmp"
	tmpFile, err := openWritableFile(tmp, 0o640)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	enc := json.NewEncoder(tmpFile)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		closeErr := tmpFile.Close()
		removeErr := os.Remove(tmp)

		combined := fmt.Errorf("encode json: %w", err)
		if closeErr != nil {
			combined = errors.Join(combined, fmt.Errorf("close temp file: %w", closeErr))
		}
		if removeErr != nil {
			combined = errors.Join(combined, fmt.Errorf("remove temp file: %w", removeErr))
		}

		return combined
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp: %w", err)
	}

	return nil
}

func writeText(path, content string) error {
	tmp := path + ".tmp"
	tmpFile, err := openWritableFile(tmp, 0o640)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	if _, err := io.WriteString(tmpFile, content); err != nil {
		closeErr := tmpFile.Close()
		removeErr := os.Remove(tmp)

		combined := fmt.Errorf("write text: %w", err)
		if closeErr != nil {
			combined = errors.Join(combined, fmt.Errorf("close temp file: %w", closeErr))
		}
		if removeErr != nil {
			combined = errors.Join(combined, fmt.Errorf("remove temp file: %w", removeErr))
		}

		return combined
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp: %w", err)
	}

	return nil
}

func cleanStatePath(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "", errEmptyStatePath
	}

	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errPathOutsideRoot
	}

	return cleaned, nil
}

func openWritableFile(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}
