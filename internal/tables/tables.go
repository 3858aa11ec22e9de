// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package tables assembles the rollable-table view of one invocation:
// builtin content plus the tables of every loadable pack, from the
// workspace and, when running from a bundle, the embedded payload.
package tables

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/pion/logging"

	"github.com/dndtiles/dndtiles/choice"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// Origins a table can come from.
const (
	OriginBuiltin   = "builtin"
	OriginWorkspace = "workspace"
	OriginBundle    = "bundle"
)

// Table is one rollable table plus where it came from. Pack is empty for
// builtin tables.
type Table struct {
	Pack   string
	Name   string
	Origin string
	Set    choice.Set
}

// Qualified returns the name that addresses the table unambiguously.
func (t Table) Qualified() string {
	if t.Pack == "" {
		return t.Name
	}

	return t.Pack + "/" + t.Name
}

// View is an immutable snapshot of every table visible to one invocation.
type View struct {
	tables []Table
}

// Options configure Load.
type Options struct {
	// Workspace is the --workspace flag value; empty falls back to
	// DNDTILES_HOME and the default directory. A missing workspace is not
	// an error, builtin and bundled tables still roll.
	Workspace string
	// Bundled is the packs subtree of an embedded payload, nil when the
	// binary runs without one.
	Bundled fs.FS

	LoggerFactory logging.LoggerFactory
}

// Load gathers builtin tables, installed workspace packs and bundled
// payload packs into one view. Packs that fail to load are skipped so a
// half-edited pack never takes the whole view down. On a pack name
// collision the workspace copy shadows the bundled one.
func Load(opts Options) (*View, error) {
	if opts.LoggerFactory == nil {
		opts.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	log := opts.LoggerFactory.NewLogger("tables")

	var all []Table
	for _, name := range choice.BuiltinNames() {
		set, _ := choice.Builtin(name)
		all = append(all, Table{Name: name, Origin: OriginBuiltin, Set: set})
	}

	seenPacks := make(map[string]struct{})

	if ws, err := workspace.Open(workspace.Resolve(opts.Workspace)); err == nil {
		entries, readErr := os.ReadDir(ws.PacksDir())
		if readErr != nil {
			return nil, readErr
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			def, loadErr := pack.Load(ws.PackDir(entry.Name()))
			if loadErr != nil {
				log.Debugf("skipping pack %s: %v", entry.Name(), loadErr)
				continue
			}
			seenPacks[def.Name] = struct{}{}
			all = appendPack(all, def, OriginWorkspace)
		}
	}

	if opts.Bundled != nil {
		entries, readErr := fs.ReadDir(opts.Bundled, ".")
		if readErr != nil {
			return nil, readErr
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			def, loadErr := pack.LoadFS(opts.Bundled, entry.Name())
			if loadErr != nil {
				log.Debugf("skipping bundled pack %s: %v", entry.Name(), loadErr)
				continue
			}
			if _, shadowed := seenPacks[def.Name]; shadowed {
				continue
			}
			all = appendPack(all, def, OriginBundle)
		}
	}

	return newView(all), nil
}

func appendPack(all []Table, def *pack.Definition, origin string) []Table {
	for _, td := range def.Tables {
		all = append(all, Table{Pack: def.Name, Name: td.Name, Origin: origin, Set: td.Set()})
	}

	return all
}

func newView(all []Table) *View {
	sort.Slice(all, func(i, j int) bool {
		return all[i].Qualified() < all[j].Qualified()
	})

	return &View{tables: all}
}

// All returns every table, sorted by qualified name.
func (v *View) All() []Table {
	return append([]Table(nil), v.tables...)
}

// Lookup resolves a table reference. A "pack/table" form must match
// exactly. A bare name matches a builtin table first, then a pack table,
// and is an error when several packs define it.
func (v *View) Lookup(name string) (Table, error) {
	if packName, tableName, qualified := strings.Cut(name, "/"); qualified {
		for _, t := range v.tables {
			if t.Pack == packName && t.Name == tableName {
				return t, nil
			}
		}

		return Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	var hits []Table
	for _, t := range v.tables {
		if t.Name != name {
			continue
		}
		if t.Origin == OriginBuiltin {
			return t, nil
		}
		hits = append(hits, t)
	}

	switch len(hits) {
	case 0:
		return Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	case 1:
		return hits[0], nil
	}

	names := make([]string, len(hits))
	for i, t := range hits {
		names[i] = t.Qualified()
	}

	return Table{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousTable, name, strings.Join(names, ", "))
}
