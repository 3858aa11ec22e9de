// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package registry

import "errors"

// ErrPackNotFound reports that no configured source carries the pack.
var ErrPackNotFound = errors.New("registry: pack not found")

// ErrVersionNotFound reports that a source carries the pack but not the
// requested version.
var ErrVersionNotFound = errors.New("registry: version not found")

var (
	errNameMismatch    = errors.New("registry: pack name does not match request")
	errVersionMismatch = errors.New("registry: pack version does not match request")
	errNoDefinition    = errors.New("registry: repository has no pack definition at its root")
)
