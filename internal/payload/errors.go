// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package payload

import "errors"

// ErrNoPayload reports a binary with no payload trailer at all. Callers
// probing their own executable treat this as running unbundled.
var ErrNoPayload = errors.New("payload: no payload trailer")

var (
	errCorruptPayload = errors.New("payload: corrupt archive")
	errBadInfoSchema  = errors.New("payload: unsupported bundle.json schema")
	errEmptyArchive   = errors.New("payload: refusing to append an empty archive")
)
