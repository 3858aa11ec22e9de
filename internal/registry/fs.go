// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dndtiles/dndtiles/internal/pack"
)

// FSSource serves packs out of a read-only filesystem, usually the packs
// area of a bundle payload. Each pack ships exactly one version, laid out as
// <name>/pack.yaml at the filesystem root.
type FSSource struct {
	name string
	fsys fs.FS
}

func NewFSSource(name string, fsys fs.FS) *FSSource {
	return &FSSource{name: name, fsys: fsys}
}

func (s *FSSource) Name() string {
	return s.name
}

func (s *FSSource) Resolve(ctx context.Context, name string) ([]string, error) {
	if err := pack.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, path.Join(name, pack.DefinitionFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPackNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read bundled pack %s: %w", name, err)
	}

	var def pack.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse bundled %s: %w", pack.DefinitionFile, err)
	}
	if def.Name != name {
		return nil, fmt.Errorf("%w: bundled directory %s holds %s", ErrPackNotFound, name, def.Name)
	}

	return []string{def.Version}, nil
}

func (s *FSSource) Fetch(ctx context.Context, name, version, dstDir string) (Fetched, error) {
	versions, err := s.Resolve(ctx, name)
	if err != nil {
		return Fetched{}, err
	}
	if len(versions) != 1 || versions[0] != version {
		return Fetched{}, fmt.Errorf("%w: %s@%s", ErrVersionNotFound, name, version)
	}

	if err := copyFromFS(s.fsys, name, dstDir); err != nil {
		return Fetched{}, fmt.Errorf("copy bundled %s@%s: %w", name, version, err)
	}
	def, err := pack.Load(dstDir)
	if err != nil {
		return Fetched{}, fmt.Errorf("load %s@%s: %w", name, version, err)
	}
	if def.Version != version {
		return Fetched{}, fmt.Errorf("%w: bundled pack holds %s", errVersionMismatch, def.Version)
	}

	integrity, err := pack.TreeHash(dstDir)
	if err != nil {
		return Fetched{}, fmt.Errorf("hash %s@%s: %w", name, version, err)
	}

	return Fetched{
		Name:      name,
		Version:   version,
		Integrity: integrity,
		Source:    s.name,
		Dir:       dstDir,
	}, nil
}

// copyFromFS mirrors one subtree of a read-only filesystem onto disk.
func copyFromFS(fsys fs.FS, root, dst string) error {
	sub, err := fs.Sub(fsys, root)
	if err != nil {
		return err
	}

	return fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return os.MkdirAll(dst, 0o750)
		}

		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		data, readErr := fs.ReadFile(sub, p)
		if readErr != nil {
			return readErr
		}

		return os.WriteFile(target, data, 0o600)
	})
}
