// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import "errors"

var (
	errEmptyName         = errors.New("pack: name is empty")
	errBadName           = errors.New("pack: name must be lowercase alphanumeric with - or _")
	errBadVersion        = errors.New("pack: version is not valid semver")
	errBadSchema         = errors.New("pack: unsupported schema version")
	errMissingTitle      = errors.New("pack: title is required")
	errDuplicateTable    = errors.New("pack: duplicate table name")
	errMalformedPin      = errors.New("manifest: malformed line, want name==version")
	errDuplicatePin      = errors.New("manifest: duplicate pack name")
	errBadConstraint     = errors.New("pack: invalid version constraint")
	errNoMatchingVersion = errors.New("pack: no version satisfies constraint")
	errIntegrityMismatch = errors.New("pack: integrity mismatch")
	errPathOutsideRoot   = errors.New("state path escapes working directory")
	errEmptyStatePath    = errors.New("state path empty")
)
