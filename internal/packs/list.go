// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package packs implements the pack management commands: list, info, add
// and remove.
package packs

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// List prints the catalog of installed packs.
func List(ctx context.Context, opts ListOptions) error {
	opts = opts.WithDefaults()

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	if err != nil {
		return err
	}
	cat, err := catalog.Open(ws.CatalogPath())
	if err != nil {
		return err
	}
	defer func() {
		_ = cat.Close()
	}()

	entries, err := cat.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err = fmt.Fprintln(opts.Out, "no packs installed")

		return err
	}

	tw := tabwriter.NewWriter(opts.Out, 10, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSOURCE\tTABLES\tINSTALLED")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			entry.Name, entry.Version, entry.Source, entry.Tables, entry.InstalledAt)
	}

	return tw.Flush()
}
