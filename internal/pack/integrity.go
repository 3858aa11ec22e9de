// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const digestPrefix = "sha256:"

// TreeHash digests a pack directory deterministically: relative paths in
// sorted forward-slash form, each followed by the file bytes, into one
// sha256. Git metadata is skipped so a fetched tree and a checkout agree.
func TreeHash(root string) (string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("hash tree: %w", err)
	}
	sort.Strings(paths)

	hash := sha256.New()
	for _, rel := range paths {
		hash.Write([]byte(rel))
		hash.Write([]byte{'\n'})
		if err := hashFile(hash, filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return "", err
		}
	}

	return digestPrefix + hex.EncodeToString(hash.Sum(nil)), nil
}

// FileHash digests a single file, prefixed the same way tree digests are.
func FileHash(path string) (string, error) {
	hash := sha256.New()
	if err := hashFile(hash, path); err != nil {
		return "", err
	}

	return digestPrefix + hex.EncodeToString(hash.Sum(nil)), nil
}

func hashFile(dst io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("hash tree: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("hash tree: %w", err)
	}

	return nil
}

// VerifyTree recomputes the digest of root and compares it to want.
func VerifyTree(root, want string) error {
	got, err := TreeHash(root)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: %s: want %s, got %s", errIntegrityMismatch, root, want, got)
	}

	return nil
}
