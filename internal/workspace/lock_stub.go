// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

//go:build !unix

package workspace

// Advisory locking is best-effort; platforms without flock run unlocked.
func acquireLock(string) (*Lock, error) {
	return &Lock{}, nil
}
