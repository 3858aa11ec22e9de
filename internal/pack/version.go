// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Versions in pack files and manifests carry no leading v; the x/mod
// routines require one.
func canonicalVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}

	return "v" + version
}

// IsValidVersion reports whether version is bare semver, without a leading v.
func IsValidVersion(version string) bool {
	if version == "" || strings.HasPrefix(version, "v") {
		return false
	}

	return semver.IsValid(canonicalVersion(version))
}

// CompareVersions orders two bare semver strings.
func CompareVersions(a, b string) int {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b))
}

// SortVersions sorts bare semver strings ascending.
func SortVersions(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) < 0
	})
}

// IsPrerelease reports whether version carries a prerelease tag.
func IsPrerelease(version string) bool {
	return semver.Prerelease(canonicalVersion(version)) != ""
}
