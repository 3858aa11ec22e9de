// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package workspace

import "path/filepath"

// Lock is a held advisory workspace lock.
type Lock struct {
	release func() error
}

// Release lets the next workspace mutation proceed. Releasing twice is a
// no-op.
func (l *Lock) Release() error {
	if l == nil || l.release == nil {
		return nil
	}
	release := l.release
	l.release = nil

	return release()
}

// AcquireLock blocks until the workspace mutation lock is free and takes
// it. Sync, add and remove hold it across their catalog and tree edits.
func (w *Workspace) AcquireLock() (*Lock, error) {
	return acquireLock(filepath.Join(w.StateDir(), lockFileName))
}
