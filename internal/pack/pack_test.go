// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/choice"
)

func validDefinition() *Definition {
	return &Definition{
		Schema:  SchemaVersion,
		Name:    "dungeon-core",
		Version: "1.2.0",
		Title:   "Dungeon Core",
		Requires: []string{
			"wilds >=0.3.0 <1.0.0",
		},
		Tables: []TableDef{
			{Name: "tiles", Title: "Tiles", Items: []string{"cave", "hall", "bridge"}},
			{Name: "dirs", Weights: map[string]float64{"Forward": 0.3, "Back": 0.1}},
		},
	}
}

func TestDefinitionValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validDefinition().Validate())

	tests := []struct {
		desc    string
		mutate  func(*Definition)
		wantErr error
	}{
		{"BadSchema", func(d *Definition) { d.Schema = 2 }, errBadSchema},
		{"BadName", func(d *Definition) { d.Name = "Dungeon Core" }, errBadName},
		{"BadVersion", func(d *Definition) { d.Version = "v1.2.0" }, errBadVersion},
		{"NoTitle", func(d *Definition) { d.Title = "" }, errMissingTitle},
		{"BadRequire", func(d *Definition) { d.Requires = []string{"wilds ==nope=="} }, errBadConstraint},
		{"BadTableName", func(d *Definition) { d.Tables[0].Name = "Tiles!" }, errBadName},
		{
			"DuplicateTable",
			func(d *Definition) { d.Tables = append(d.Tables, TableDef{Name: "tiles", Items: []string{"x"}}) },
			errDuplicateTable,
		},
		{
			"TableBothPools",
			func(d *Definition) { d.Tables[0].Weights = map[string]float64{"cave": 1} },
			choice.ErrInvalidSet,
		},
		{
			"TableNoPool",
			func(d *Definition) { d.Tables[0].Items = nil },
			choice.ErrInvalidSet,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			def := validDefinition()
			tc.mutate(def)
			require.ErrorIs(t, def.Validate(), tc.wantErr)
		})
	}
}

func TestTableSet(t *testing.T) {
	t.Parallel()

	withTitle := TableDef{Name: "tiles", Title: "Tiles", Items: []string{"cave"}}
	require.Equal(t, "Tiles", withTitle.Set().Title)

	bare := TableDef{Name: "tiles", Items: []string{"cave"}}
	require.Equal(t, "tiles", bare.Set().Title)
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	def := validDefinition()
	require.NoError(t, def.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, def, loaded)

	table, ok := loaded.Table("tiles")
	require.True(t, ok)
	require.Equal(t, "Tiles", table.Title)

	_, ok = loaded.Table("missing")
	require.False(t, ok)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefinitionFile), []byte("schema: [broken"), 0o640))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}
