// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package syncenv reconciles a workspace with its pin manifest: missing and
// drifted packs are fetched and swapped in, pruned packs removed, and the
// lockfile rewritten to match what ended up installed.
package syncenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/registry"
	"github.com/dndtiles/dndtiles/internal/term"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

type installResult struct {
	fetched registry.Fetched
	tables  int
	stage   string
}

func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()

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

	pins, err := pack.ReadManifestFile(opts.ManifestPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", errManifestMissing, opts.ManifestPath)
	}
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

	plan, err := computePlan(ctx, ws, cat, pins, opts.Prune)
	if err != nil {
		return err
	}
	if opts.DryRun {
		return printPlan(opts.Out, plan)
	}

	log := opts.LoggerFactory.NewLogger("sync")

	results, err := fetchAll(ctx, opts, ws, plan.Install)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, res := range results {
		if err := swapIn(ws, res); err != nil {
			// The old tree is gone once the swap starts; drop the stale
			// catalog row so the catalog never claims a tree that is not
			// on disk.
			if removeErr := cat.Remove(ctx, res.fetched.Name); removeErr != nil && !errors.Is(removeErr, catalog.ErrNotInstalled) {
				return errors.Join(err, removeErr)
			}

			return err
		}
		err := cat.Record(ctx, catalog.Entry{
			Name:        res.fetched.Name,
			Version:     res.fetched.Version,
			Integrity:   res.fetched.Integrity,
			Source:      res.fetched.Source,
			Tables:      res.tables,
			InstalledAt: now,
		})
		if err != nil {
			return err
		}
		log.Infof("installed %s@%s from %s", res.fetched.Name, res.fetched.Version, res.fetched.Source)
	}

	for _, action := range plan.Remove {
		if err := os.RemoveAll(ws.PackDir(action.Name)); err != nil {
			return fmt.Errorf("remove %s: %w", action.Name, err)
		}
		if err := cat.Remove(ctx, action.Name); err != nil && !errors.Is(err, catalog.ErrNotInstalled) {
			return err
		}
		log.Infof("removed %s", action.Name)
	}

	unmet, err := checkRequirements(ctx, ws, cat)
	if err != nil {
		return err
	}
	if len(unmet) > 0 {
		if opts.Strict {
			return fmt.Errorf("%w: %s", errUnmetRequirements, strings.Join(unmet, "; "))
		}
		for _, miss := range unmet {
			log.Warnf("%s", miss)
		}
	}

	if err := writeLockfile(ctx, ws, cat); err != nil {
		return err
	}

	_, err = fmt.Fprintf(opts.Out, "installed %d, kept %d, removed %d\n",
		len(plan.Install), len(plan.Keep), len(plan.Remove))

	return err
}

// fetchAll materializes every planned install into a staging directory,
// bounded by the jobs limit. Nothing is swapped into the workspace here, so
// a failed fetch leaves the installed packs untouched.
func fetchAll(ctx context.Context, opts Options, ws *workspace.Workspace, installs []Action) ([]installResult, error) {
	if len(installs) == 0 {
		return nil, nil
	}

	reg := registry.New(opts.Sources, opts.LoggerFactory)
	update, done := term.StartSpinner("syncing packs ")
	defer done()

	results := make([]installResult, len(installs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Jobs)
	for i, action := range installs {
		group.Go(func() error {
			update(action.Name + "@" + action.Version)
			stage := filepath.Join(ws.CacheDir(), "stage", action.Name+"@"+action.Version)
			if err := os.RemoveAll(stage); err != nil {
				return fmt.Errorf("clear stage for %s: %w", action.Name, err)
			}
			fetched, err := reg.Fetch(groupCtx, action.Name, action.Version, stage)
			if err != nil {
				return err
			}
			def, err := pack.Load(stage)
			if err != nil {
				return err
			}
			results[i] = installResult{fetched: fetched, tables: len(def.Tables), stage: stage}

			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// swapIn replaces the installed tree with the staged one. Stage and packs
// live under the same workspace root, so the rename stays on one filesystem.
func swapIn(ws *workspace.Workspace, res installResult) error {
	target := ws.PackDir(res.fetched.Name)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear %s: %w", target, err)
	}
	if err := os.Rename(res.stage, target); err != nil {
		return fmt.Errorf("install %s: %w", res.fetched.Name, err)
	}

	return nil
}

func checkRequirements(ctx context.Context, ws *workspace.Workspace, cat *catalog.Catalog) ([]string, error) {
	entries, err := cat.List(ctx)
	if err != nil {
		return nil, err
	}
	versions := make(map[string]string, len(entries))
	for _, entry := range entries {
		versions[entry.Name] = entry.Version
	}

	var unmet []string
	for _, entry := range entries {
		def, err := pack.Load(ws.PackDir(entry.Name))
		if err != nil {
			return nil, fmt.Errorf("installed pack %s: %w", entry.Name, err)
		}
		for _, raw := range def.Requires {
			req, err := pack.ParseRequirement(raw)
			if err != nil {
				return nil, fmt.Errorf("pack %s: %w", entry.Name, err)
			}
			have, installed := versions[req.Name]
			if !installed {
				unmet = append(unmet, fmt.Sprintf("%s requires %q, not installed", entry.Name, raw))
				continue
			}
			ok, err := req.Satisfies(have)
			if err != nil {
				return nil, fmt.Errorf("pack %s: %w", entry.Name, err)
			}
			if !ok {
				unmet = append(unmet, fmt.Sprintf("%s requires %q, have %s", entry.Name, raw, have))
			}
		}
	}
	sort.Strings(unmet)

	return unmet, nil
}

func writeLockfile(ctx context.Context, ws *workspace.Workspace, cat *catalog.Catalog) error {
	entries, err := cat.LockEntries(ctx)
	if err != nil {
		return err
	}

	return pack.WriteLock(ws.LockPath(), pack.NewLockfile(entries, time.Now()))
}
