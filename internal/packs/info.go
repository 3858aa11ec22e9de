// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package packs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/term"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// Info describes one installed pack: metadata, tables and the README.
func Info(ctx context.Context, opts InfoOptions) error {
	opts = opts.WithDefaults()
	if opts.Name == "" {
		return errNoName
	}

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	if err != nil {
		return err
	}

	dir := ws.PackDir(opts.Name)
	def, err := pack.Load(dir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", catalog.ErrNotInstalled, opts.Name)
	}
	if err != nil {
		return err
	}

	// The catalog row is nice-to-have context; a pack dropped into packs/
	// by hand still gets described.
	var entry catalog.Entry
	if cat, catErr := catalog.Open(ws.CatalogPath()); catErr == nil {
		entry, _ = cat.Get(ctx, opts.Name)
		_ = cat.Close()
	}

	buf := bufio.NewWriter(opts.Out)
	fmt.Fprintf(buf, "%s %s: %s\n", def.Name, def.Version, def.Title)
	if def.Description != "" {
		fmt.Fprintln(buf, def.Description)
	}
	if entry.Source != "" {
		fmt.Fprintf(buf, "installed from %s at %s\n", entry.Source, entry.InstalledAt)
	}
	if len(def.Requires) > 0 {
		fmt.Fprintf(buf, "requires: %s\n", strings.Join(def.Requires, ", "))
	}
	fmt.Fprintf(buf, "tables (%d):\n", len(def.Tables))
	for _, table := range def.Tables {
		set := table.Set()
		kind := "uniform"
		if set.Weighted() {
			kind = "weighted"
		}
		fmt.Fprintf(buf, "  %s (%s, %d options)\n", table.Name, kind, len(set.Options()))
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	return printReadme(opts, dir)
}

// printReadme appends the pack README, rendered for the terminal when one
// is attached.
func printReadme(opts InfoOptions, dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, pack.ReadmeFile)) //nolint:gosec // path under the workspace
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	content := string(data)
	if term.IsTTY() {
		content = term.RenderMarkdown(content, opts.Theme, 80)
	}
	_, err = fmt.Fprintf(opts.Out, "\n%s", content)

	return err
}
