// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package workspace

import "errors"

var (
	errAlreadyInitialized = errors.New("workspace: already initialized, use --force to rewrite")
	errNotInitialized     = errors.New("workspace: not initialized, run dndtiles env init")
	errBadEnvSchema       = errors.New("workspace: unsupported env.json schema")
	errCorruptLayout      = errors.New("workspace: missing directory")
)
