// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package choice

import "errors"

var (
	// ErrInvalidSet reports a table whose shape cannot be drawn from.
	ErrInvalidSet = errors.New("choice: invalid set")
	// ErrNoOptions reports a pool left empty once exclusions and the
	// epsilon cutoff are applied.
	ErrNoOptions = errors.New("choice: no available options")
)
