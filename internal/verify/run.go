// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package verify lints content packs: definition schema, table shapes,
// weight sanity and requires syntax, with an optional JUnit report.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()

	targets, ws, err := collectTargets(opts)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return errNoPacks
	}

	var lock *pack.Lockfile
	if ws != nil {
		if lock, err = readLock(ws); err != nil {
			return err
		}
	}

	var results []checkResult
	for _, tgt := range targets {
		results = append(results, checkPack(tgt)...)
		if lock == nil || !tgt.installed {
			continue
		}
		if res, recorded := checkLock(lock, tgt); recorded {
			results = append(results, res)
		}
	}

	printResults(opts.Out, results)

	if opts.JUnitPath != "" {
		if err := writeJUnitReport(opts.JUnitPath, results); err != nil {
			return err
		}
	}

	if failures := countFailures(results); failures > 0 {
		return fmt.Errorf("%w: %d failing checks", errChecksFailed, failures)
	}

	return nil
}

// collectTargets gathers the installed packs of the workspace plus any
// explicitly named directories. The workspace is only required when no
// explicit paths were given; the returned workspace is nil when it could
// not be opened.
func collectTargets(opts Options) ([]target, *workspace.Workspace, error) {
	var targets []target

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	switch {
	case err == nil:
		entries, readErr := os.ReadDir(ws.PacksDir())
		if readErr != nil {
			return nil, nil, readErr
		}
		for _, entry := range entries {
			if entry.IsDir() {
				targets = append(targets, target{label: entry.Name(), dir: ws.PackDir(entry.Name()), installed: true})
			}
		}
	case len(opts.Paths) == 0:
		return nil, nil, err
	default:
		ws = nil
	}

	for _, p := range opts.Paths {
		targets = append(targets, target{label: filepath.Base(p), dir: p})
	}

	return targets, ws, nil
}

// readLock loads the workspace lockfile, nil when none has been written
// yet.
func readLock(ws *workspace.Workspace) (*pack.Lockfile, error) {
	lock, err := pack.ReadLock(ws.LockPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func printResults(w io.Writer, results []checkResult) {
	for _, res := range results {
		status := "ok"
		if !res.Passed {
			status = "FAIL"
		}
		if res.Details != "" {
			fmt.Fprintf(w, "[%s] %s :: %s (%s)\n", status, res.Pack, res.Check, res.Details)
			continue
		}
		fmt.Fprintf(w, "[%s] %s :: %s\n", status, res.Pack, res.Check)
	}
}
