// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package packs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/registry"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// Add resolves, fetches and installs one pack, then updates the catalog
// and the lockfile.
func Add(ctx context.Context, opts AddOptions) error {
	opts = opts.WithDefaults()

	name, constraint := splitRef(opts.Ref)
	if name == "" {
		return errNoName
	}

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	if err != nil {
		return err
	}
	flock, err := ws.AcquireLock()
	if err != nil {
		return err
	}
	defer func() {
		_ = flock.Release()
	}()

	reg := registry.New(opts.Sources, opts.LoggerFactory)
	version, err := resolveVersion(ctx, reg, name, constraint, opts.Prerelease)
	if err != nil {
		return err
	}

	stage := filepath.Join(ws.CacheDir(), "stage", name+"@"+version)
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stage for %s: %w", name, err)
	}
	fetched, err := reg.Fetch(ctx, name, version, stage)
	if err != nil {
		return err
	}
	def, err := pack.Load(stage)
	if err != nil {
		return err
	}

	target := ws.PackDir(name)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear %s: %w", target, err)
	}
	if err := os.Rename(stage, target); err != nil {
		return fmt.Errorf("install %s: %w", name, err)
	}

	cat, err := catalog.Open(ws.CatalogPath())
	if err != nil {
		return err
	}
	defer func() {
		_ = cat.Close()
	}()

	err = cat.Record(ctx, catalog.Entry{
		Name:        fetched.Name,
		Version:     fetched.Version,
		Integrity:   fetched.Integrity,
		Source:      fetched.Source,
		Tables:      len(def.Tables),
		InstalledAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := writeLock(ctx, ws, cat); err != nil {
		return err
	}

	_, err = fmt.Fprintf(opts.Out, "installed %s==%s from %s\n",
		fetched.Name, fetched.Version, fetched.Source)

	return err
}

// splitRef splits NAME[@VERSION|@CONSTRAINT].
func splitRef(ref string) (name, constraint string) {
	name, constraint, _ = strings.Cut(strings.TrimSpace(ref), "@")

	return name, strings.TrimSpace(constraint)
}

// resolveVersion picks the version to install. An exact pin and a
// constraint both go through latest-matching; a bare name takes the
// highest stable version, or the highest outright with prerelease set.
func resolveVersion(ctx context.Context, reg *registry.Registry, name, constraint string, prerelease bool) (string, error) {
	versions, _, err := reg.Versions(ctx, name)
	if err != nil {
		return "", err
	}

	if constraint == "" && prerelease {
		best := ""
		for _, v := range versions {
			if best == "" || pack.CompareVersions(v, best) > 0 {
				best = v
			}
		}
		if best == "" {
			return "", fmt.Errorf("%w: %s", registry.ErrVersionNotFound, name)
		}

		return best, nil
	}

	version, err := pack.LatestMatching(versions, constraint)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return version, nil
}

func writeLock(ctx context.Context, ws *workspace.Workspace, cat *catalog.Catalog) error {
	entries, err := cat.LockEntries(ctx)
	if err != nil {
		return err
	}

	return pack.WriteLock(ws.LockPath(), pack.NewLockfile(entries, time.Now()))
}
