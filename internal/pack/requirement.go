// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is one entry of a pack's requires list: a pack name plus an
// optional version constraint, as in "dungeon-core >=1.0.0 <2.0.0".
type Requirement struct {
	Name       string
	Constraint string
}

// ParseRequirement splits and validates a raw requires line.
func ParseRequirement(raw string) (Requirement, error) {
	name, constraint, _ := strings.Cut(strings.TrimSpace(raw), " ")
	constraint = strings.TrimSpace(constraint)
	if err := ValidateName(name); err != nil {
		return Requirement{}, err
	}
	if constraint != "" {
		if _, err := semver.NewConstraint(constraint); err != nil {
			return Requirement{}, fmt.Errorf("%w: %q: %v", errBadConstraint, constraint, err)
		}
	}

	return Requirement{Name: name, Constraint: constraint}, nil
}

// Satisfies reports whether version meets the constraint. An empty
// constraint accepts any version.
func (r Requirement) Satisfies(version string) (bool, error) {
	if r.Constraint == "" {
		return true, nil
	}
	rng, err := semver.NewConstraint(r.Constraint)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", errBadConstraint, r.Constraint, err)
	}
	ver, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("%w: %q", errBadVersion, version)
	}

	return rng.Check(ver), nil
}

// LatestMatching picks the highest version satisfying constraint. With an
// empty constraint only stable versions are considered.
func LatestMatching(versions []string, constraint string) (string, error) {
	var rng *semver.Constraints
	if constraint != "" {
		parsed, err := semver.NewConstraint(strings.TrimSpace(constraint))
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", errBadConstraint, constraint, err)
		}
		rng = parsed
	}

	best := ""
	for _, candidate := range versions {
		ver, err := semver.NewVersion(candidate)
		if err != nil {
			continue
		}
		if rng != nil {
			if !rng.Check(ver) {
				continue
			}
		} else if ver.Prerelease() != "" {
			continue
		}
		if best == "" || CompareVersions(candidate, best) > 0 {
			best = candidate
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %q", errNoMatchingVersion, constraint)
	}

	return best, nil
}
