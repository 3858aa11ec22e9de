// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	valid := []string{"dungeon-core", "wilds", "a", "pack_2", "3rd-age"}
	for _, name := range valid {
		require.NoError(t, ValidateName(name), "ValidateName(%q)", name)
	}

	tests := []struct {
		desc    string
		input   string
		wantErr error
	}{
		{"Empty", "", errEmptyName},
		{"Uppercase", "Dungeon", errBadName},
		{"Spaces", "dungeon core", errBadName},
		{"LeadingDash", "-dungeon", errBadName},
		{"Unicode", "подземелье", errBadName},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, ValidateName(tc.input), tc.wantErr)
		})
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                        "pack",
		"Hello World!":            "hello_world",
		"  multiple  ":            "multiple",
		"***":                     "pack",
		"MiXeD-Case123":           "mixed_case123",
		"https://example.com/p.g": "https_example_com_p_g",
	}

	for input, want := range tests {
		got := Slugify(input)
		require.Equal(t, want, got, "Slugify(%q)", input)
	}
}

func TestWithSuffix(t *testing.T) {
	t.Parallel()

	got := WithSuffix("Feature", "ABCDEF123456")
	want := "feature_abcdef1"
	require.Equal(t, want, got)

	got = WithSuffix("already_suffix_abcdef1", "abcdef1234")
	require.Equal(t, "already_suffix_abcdef1", got)
}
