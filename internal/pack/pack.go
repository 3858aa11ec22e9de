// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dndtiles/dndtiles/choice"
)

// SchemaVersion is the pack.yaml schema this build reads and writes.
const SchemaVersion = 1

// Definition is the parsed pack.yaml of one content pack.
type Definition struct {
	Schema      int        `yaml:"schema"`
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Requires    []string   `yaml:"requires,omitempty"`
	Tables      []TableDef `yaml:"tables,omitempty"`
}

// TableDef is one choice table inside a pack: exactly one of Items and
// Weights carries the pool.
type TableDef struct {
	Name    string             `yaml:"name"`
	Title   string             `yaml:"title,omitempty"`
	Items   []string           `yaml:"items,omitempty"`
	Weights map[string]float64 `yaml:"weights,omitempty"`
}

// Set converts the table definition into a drawable choice set. The table
// name stands in when no display title was given.
func (t TableDef) Set() choice.Set {
	title := t.Title
	if title == "" {
		title = t.Name
	}

	return choice.Set{Title: title, Items: t.Items, Weights: t.Weights}
}

// Load reads and validates the pack.yaml inside dir.
func Load(dir string) (*Definition, error) {
	data, err := os.ReadFile(filepath.Join(dir, DefinitionFile))
	if err != nil {
		return nil, fmt.Errorf("read pack definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse pack definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// LoadFS reads and validates the pack.yaml inside dir of fsys, for packs
// that live in an embedded payload rather than on disk.
func LoadFS(fsys fs.FS, dir string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, DefinitionFile))
	if err != nil {
		return nil, fmt.Errorf("read pack definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse pack definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks the definition against the schema rules: valid name and
// version, a title, well-formed requires constraints and unique tables whose
// shapes the choice engine accepts.
func (d *Definition) Validate() error {
	if d.Schema != SchemaVersion {
		return fmt.Errorf("%w: %d", errBadSchema, d.Schema)
	}
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if !IsValidVersion(d.Version) {
		return fmt.Errorf("%w: %q", errBadVersion, d.Version)
	}
	if d.Title == "" {
		return fmt.Errorf("%w: %s", errMissingTitle, d.Name)
	}
	for _, raw := range d.Requires {
		if _, err := ParseRequirement(raw); err != nil {
			return fmt.Errorf("pack %s: %w", d.Name, err)
		}
	}

	seen := make(map[string]struct{}, len(d.Tables))
	for _, table := range d.Tables {
		if err := ValidateName(table.Name); err != nil {
			return fmt.Errorf("pack %s: table: %w", d.Name, err)
		}
		if _, dup := seen[table.Name]; dup {
			return fmt.Errorf("%w: %s/%s", errDuplicateTable, d.Name, table.Name)
		}
		seen[table.Name] = struct{}{}
		if err := table.Set().Validate(); err != nil {
			return fmt.Errorf("pack %s: %w", d.Name, err)
		}
	}

	return nil
}

// Table returns the named table definition.
func (d *Definition) Table(name string) (TableDef, bool) {
	for _, table := range d.Tables {
		if table.Name == name {
			return table, true
		}
	}

	return TableDef{}, false
}

// Save writes the definition as pack.yaml inside dir.
func (d *Definition) Save(dir string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode pack definition: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, DefinitionFile), data, 0o640)
}
