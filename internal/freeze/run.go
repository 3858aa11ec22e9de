// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package freeze snapshots the installed packs of a workspace into a pin
// manifest, one name==version line per pack.
package freeze

import (
	"context"
	"errors"
	"io"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	if err != nil {
		return err
	}

	cat, err := catalog.Open(ws.CatalogPath())
	if err != nil {
		return err
	}
	pins, err := cat.Pins(ctx)
	if err != nil {
		return errors.Join(err, cat.Close())
	}
	if err := cat.Close(); err != nil {
		return err
	}

	if opts.OutputPath == StdoutPath {
		_, err := io.WriteString(opts.Out, pack.FormatManifest(pins))

		return err
	}

	return pack.WriteManifestFile(opts.OutputPath, pins)
}
