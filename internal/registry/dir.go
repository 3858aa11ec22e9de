// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dndtiles/dndtiles/internal/pack"
)

// DirSource serves packs from a registry directory laid out as
// <root>/<name>/<version>/pack.yaml.
type DirSource struct {
	name string
	root string
}

func NewDirSource(name, root string) *DirSource {
	return &DirSource{name: name, root: root}
}

func (s *DirSource) Name() string {
	return s.name
}

func (s *DirSource) Resolve(ctx context.Context, name string) ([]string, error) {
	if err := pack.ValidateName(name); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrPackNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read registry directory: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() || !pack.IsValidVersion(entry.Name()) {
			continue
		}
		versions = append(versions, entry.Name())
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPackNotFound, name)
	}
	pack.SortVersions(versions)

	return versions, nil
}

func (s *DirSource) Fetch(ctx context.Context, name, version, dstDir string) (Fetched, error) {
	if err := pack.ValidateName(name); err != nil {
		return Fetched{}, err
	}
	if _, err := os.Stat(filepath.Join(s.root, name)); os.IsNotExist(err) {
		return Fetched{}, fmt.Errorf("%w: %s", ErrPackNotFound, name)
	}

	srcDir := filepath.Join(s.root, name, version)
	if _, err := os.Stat(filepath.Join(srcDir, pack.DefinitionFile)); os.IsNotExist(err) {
		return Fetched{}, fmt.Errorf("%w: %s@%s", ErrVersionNotFound, name, version)
	}

	def, err := pack.Load(srcDir)
	if err != nil {
		return Fetched{}, fmt.Errorf("load %s@%s: %w", name, version, err)
	}
	if def.Name != name {
		return Fetched{}, fmt.Errorf("%w: directory %s holds %s", errNameMismatch, name, def.Name)
	}
	if def.Version != version {
		return Fetched{}, fmt.Errorf("%w: directory %s holds %s", errVersionMismatch, version, def.Version)
	}

	if err := copyTree(srcDir, dstDir); err != nil {
		return Fetched{}, fmt.Errorf("copy %s@%s: %w", name, version, err)
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
