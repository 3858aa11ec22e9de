// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package roll implements the roll command: resolve a table, draw from it
// with a reproducible seed and optionally record the run as artifacts.
package roll

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dndtiles/dndtiles/choice"
	"github.com/dndtiles/dndtiles/internal/tables"
)

func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()
	if opts.Table == "" {
		return errNoTable
	}

	view, err := tables.Load(tables.Options{
		Workspace:     opts.Workspace,
		Bundled:       opts.Bundled,
		LoggerFactory: opts.LoggerFactory,
	})
	if err != nil {
		return err
	}

	ref := opts.Table
	if opts.Pack != "" && !strings.Contains(ref, "/") {
		ref = opts.Pack + "/" + ref
	}
	tbl, err := view.Lookup(ref)
	if err != nil {
		return err
	}

	seed := choice.ResolveSeed(opts.Seed)
	rng := choice.NewRand(seed)
	results, err := tbl.Set.DrawN(rng, opts.Count, opts.Unique, opts.Exclude)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(opts.Out)
	for _, value := range results {
		fmt.Fprintln(buf, value)
	}
	if opts.Seed == 0 {
		fmt.Fprintf(buf, "seed: %d\n", seed)
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	return writeArtifacts(opts, tbl, seed, results)
}
