// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package packs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// Remove uninstalls one pack: the tree, the catalog row and its lockfile
// entry.
func Remove(ctx context.Context, opts RemoveOptions) error {
	opts = opts.WithDefaults()
	if opts.Name == "" {
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

	cat, err := catalog.Open(ws.CatalogPath())
	if err != nil {
		return err
	}
	defer func() {
		_ = cat.Close()
	}()

	// An untracked tree under packs/ still removes; only a pack known to
	// neither the catalog nor the disk is an error.
	if _, getErr := cat.Get(ctx, opts.Name); getErr != nil {
		if _, statErr := os.Stat(ws.PackDir(opts.Name)); statErr != nil {
			return getErr
		}
	}

	if err := os.RemoveAll(ws.PackDir(opts.Name)); err != nil {
		return fmt.Errorf("remove %s: %w", opts.Name, err)
	}
	if err := cat.Remove(ctx, opts.Name); err != nil && !errors.Is(err, catalog.ErrNotInstalled) {
		return err
	}
	if err := writeLock(ctx, ws, cat); err != nil {
		return err
	}

	_, err = fmt.Fprintf(opts.Out, "removed %s\n", opts.Name)

	return err
}
