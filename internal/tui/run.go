// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package tui implements the interactive browser: a tables page that
// rolls selections in place and a packs page with rendered READMEs,
// reloading live while the workspace changes underneath it.
package tui

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pion/logging"

	"github.com/dndtiles/dndtiles/choice"
	"github.com/dndtiles/dndtiles/internal/catalog"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/tables"
	"github.com/dndtiles/dndtiles/internal/term"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()
	if !term.IsTTY() {
		return errNoTTY
	}

	view, packs, err := loadContent(ctx, opts)
	if err != nil {
		return err
	}

	m := newModel(view, packs, opts, choice.ResolveSeed(0))
	m.load = func() (*tables.View, []PackInfo, error) {
		return loadContent(ctx, opts)
	}

	if opts.Watch {
		ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
		if err != nil {
			return err
		}
		w, err := watchPacks(ws.PacksDir(), opts.LoggerFactory)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		m.changes = w.Changes()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func loadContent(ctx context.Context, opts Options) (*tables.View, []PackInfo, error) {
	view, err := tables.Load(tables.Options{
		Workspace:     opts.Workspace,
		Bundled:       opts.Bundled,
		LoggerFactory: opts.LoggerFactory,
	})
	if err != nil {
		return nil, nil, err
	}
	return view, gatherPacks(ctx, opts), nil
}

// gatherPacks collects the pack rows from the workspace and any
// embedded payload. Packs it cannot read are skipped, matching the
// tables view.
func gatherPacks(ctx context.Context, opts Options) []PackInfo {
	log := opts.LoggerFactory.NewLogger("tui")

	var infos []PackInfo
	seen := make(map[string]struct{})

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	if err == nil {
		infos = workspacePacks(ctx, ws, log, seen)
	}

	if opts.Bundled != nil {
		infos = append(infos, bundledPacks(opts.Bundled, log, seen)...)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func workspacePacks(ctx context.Context, ws *workspace.Workspace, log logging.LeveledLogger, seen map[string]struct{}) []PackInfo {
	entries, err := os.ReadDir(ws.PacksDir())
	if err != nil {
		log.Debugf("read %s: %v", ws.PacksDir(), err)
		return nil
	}

	sources := catalogSources(ctx, ws, log)

	var infos []PackInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		def, err := pack.Load(ws.PackDir(entry.Name()))
		if err != nil {
			log.Debugf("skipping pack %s: %v", entry.Name(), err)
			continue
		}
		seen[def.Name] = struct{}{}

		readme, _ := os.ReadFile(filepath.Join(ws.PackDir(entry.Name()), pack.ReadmeFile))
		infos = append(infos, PackInfo{
			Name:    def.Name,
			Version: def.Version,
			Source:  sources[def.Name],
			Origin:  tables.OriginWorkspace,
			Tables:  len(def.Tables),
			Readme:  string(readme),
		})
	}
	return infos
}

func bundledPacks(bundled fs.FS, log logging.LeveledLogger, seen map[string]struct{}) []PackInfo {
	entries, err := fs.ReadDir(bundled, ".")
	if err != nil {
		log.Debugf("read bundled packs: %v", err)
		return nil
	}

	var infos []PackInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		def, err := pack.LoadFS(bundled, entry.Name())
		if err != nil {
			log.Debugf("skipping bundled pack %s: %v", entry.Name(), err)
			continue
		}
		if _, ok := seen[def.Name]; ok {
			continue
		}

		readme, _ := fs.ReadFile(bundled, path.Join(entry.Name(), pack.ReadmeFile))
		infos = append(infos, PackInfo{
			Name:    def.Name,
			Version: def.Version,
			Source:  "bundle",
			Origin:  tables.OriginBundle,
			Tables:  len(def.Tables),
			Readme:  string(readme),
		})
	}
	return infos
}

// catalogSources maps installed pack names to the source they came
// from. The catalog is advisory here; packs dropped into packs/ by
// hand still show up, just without a source.
func catalogSources(ctx context.Context, ws *workspace.Workspace, log logging.LeveledLogger) map[string]string {
	sources := make(map[string]string)

	cat, err := catalog.Open(ws.CatalogPath())
	if err != nil {
		log.Debugf("open catalog: %v", err)
		return sources
	}
	defer func() { _ = cat.Close() }()

	entries, err := cat.List(ctx)
	if err != nil {
		log.Debugf("list catalog: %v", err)
		return sources
	}
	for _, e := range entries {
		sources[e.Name] = e.Source
	}
	return sources
}
