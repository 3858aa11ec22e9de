// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"sort"
	"time"
)

// LockSchema is the lock.json schema this build reads and writes.
const LockSchema = 1

// Lockfile records what is installed in a workspace, exactly.
type Lockfile struct {
	Schema      int         `json:"schema"`
	GeneratedAt string      `json:"generatedAt"`
	Entries     []LockEntry `json:"entries"`
}

// LockEntry pins one installed pack to a version, a tree digest and the
// source it came from.
type LockEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Integrity   string `json:"integrity"`
	Source      string `json:"source"`
	InstalledAt string `json:"installedAt"`
}

// NewLockfile stamps a fresh lockfile with now and the entries sorted by
// name.
func NewLockfile(entries []LockEntry, now time.Time) *Lockfile {
	sorted := append([]LockEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	return &Lockfile{
		Schema:      LockSchema,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Entries:     sorted,
	}
}

// Entry returns the lock entry for name.
func (l *Lockfile) Entry(name string) (LockEntry, bool) {
	for _, entry := range l.Entries {
		if entry.Name == name {
			return entry, true
		}
	}

	return LockEntry{}, false
}

// Upsert replaces or appends the entry for its name, keeping name order.
func (l *Lockfile) Upsert(entry LockEntry) {
	for i := range l.Entries {
		if l.Entries[i].Name == entry.Name {
			l.Entries[i] = entry
			return
		}
	}
	l.Entries = append(l.Entries, entry)
	sort.Slice(l.Entries, func(i, j int) bool { return l.Entries[i].Name < l.Entries[j].Name })
}

// Remove drops the entry for name, reporting whether it was present.
func (l *Lockfile) Remove(name string) bool {
	for i := range l.Entries {
		if l.Entries[i].Name == name {
			l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
			return true
		}
	}

	return false
}
