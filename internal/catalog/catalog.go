// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package catalog keeps the ledger of installed packs. It is the source of
// truth freeze reads; sync, add and remove keep it matching the pack trees
// on disk.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dndtiles/dndtiles/internal/pack"
)

// ErrNotInstalled reports a pack the catalog has no row for.
var ErrNotInstalled = errors.New("catalog: pack not installed")

const schema = `
CREATE TABLE IF NOT EXISTS packs_v1 (
	name TEXT PRIMARY KEY,
	version TEXT NOT NULL,
	integrity TEXT NOT NULL,
	source TEXT NOT NULL,
	tables INTEGER NOT NULL DEFAULT 0,
	installed_at TEXT NOT NULL
)
`

// Entry is one installed pack.
type Entry struct {
	Name        string `db:"name"`
	Version     string `db:"version"`
	Integrity   string `db:"integrity"`
	Source      string `db:"source"`
	Tables      int    `db:"tables"`
	InstalledAt string `db:"installed_at"`
}

type Catalog struct {
	db *sqlx.DB
}

// Open connects to the catalog database at path, creating it and its
// schema on first use.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		combined := fmt.Errorf("init catalog schema: %w", err)
		if closeErr != nil {
			combined = errors.Join(combined, closeErr)
		}

		return nil, combined
	}

	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record upserts the entry for its name.
func (c *Catalog) Record(ctx context.Context, entry Entry) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO packs_v1 (name, version, integrity, source, tables, installed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name)
DO UPDATE SET version = $2, integrity = $3, source = $4, tables = $5, installed_at = $6`,
		entry.Name, entry.Version, entry.Integrity, entry.Source, entry.Tables, entry.InstalledAt)
	if err != nil {
		return fmt.Errorf("record pack %s: %w", entry.Name, err)
	}

	return nil
}

// Remove drops the entry for name.
func (c *Catalog) Remove(ctx context.Context, name string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM packs_v1 WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("remove pack %s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove pack %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	return nil
}

// Get returns the entry for name.
func (c *Catalog) Get(ctx context.Context, name string) (Entry, error) {
	var entry Entry
	err := c.db.GetContext(ctx, &entry,
		`SELECT name, version, integrity, source, tables, installed_at FROM packs_v1 WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get pack %s: %w", name, err)
	}

	return entry, nil
}

// List returns every entry ordered by name.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := c.db.SelectContext(ctx, &entries,
		`SELECT name, version, integrity, source, tables, installed_at FROM packs_v1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}

	return entries, nil
}

// Pins renders the catalog as manifest pins, exactly what freeze writes.
func (c *Catalog) Pins(ctx context.Context) ([]pack.Pin, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	pins := make([]pack.Pin, 0, len(entries))
	for _, entry := range entries {
		pins = append(pins, pack.Pin{Name: entry.Name, Version: entry.Version})
	}

	return pins, nil
}

// LockEntries renders the catalog as lockfile entries.
func (c *Catalog) LockEntries(ctx context.Context) ([]pack.LockEntry, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	lockEntries := make([]pack.LockEntry, 0, len(entries))
	for _, entry := range entries {
		lockEntries = append(lockEntries, pack.LockEntry{
			Name:        entry.Name,
			Version:     entry.Version,
			Integrity:   entry.Integrity,
			Source:      entry.Source,
			InstalledAt: entry.InstalledAt,
		})
	}

	return lockEntries, nil
}
