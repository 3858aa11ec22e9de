// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package pack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Pin is one line of the pinned manifest: an exact name==version pair.
type Pin struct {
	Name    string
	Version string
}

func (p Pin) String() string {
	return p.Name + "==" + p.Version
}

// ParseManifest reads name==version lines. Blank lines and # comments are
// ignored; duplicate names, malformed lines and invalid versions fail with
// the offending line number.
func ParseManifest(r io.Reader) ([]Pin, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]int)

	var pins []Pin
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, version, ok := strings.Cut(line, "==")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", errMalformedPin, lineNo, line)
		}
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !IsValidVersion(version) {
			return nil, fmt.Errorf("%w: line %d: %q", errBadVersion, lineNo, version)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: line %d: %s already pinned on line %d", errDuplicatePin, lineNo, name, prev)
		}
		seen[name] = lineNo
		pins = append(pins, Pin{Name: name, Version: version})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return pins, nil
}

// FormatManifest renders pins sorted by name, one per line. Zero pins render
// as the empty string.
func FormatManifest(pins []Pin) string {
	sorted := append([]Pin(nil), pins...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	for _, pin := range sorted {
		b.WriteString(pin.String())
		b.WriteByte('\n')
	}

	return b.String()
}

// ReadManifestFile parses the manifest at path.
func ReadManifestFile(path string) ([]Pin, error) {
	safePath, err := cleanStatePath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(safePath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ParseManifest(f)
}

// WriteManifestFile atomically replaces the manifest at path.
func WriteManifestFile(path string, pins []Pin) error {
	safePath, err := cleanStatePath(path)
	if err != nil {
		return err
	}
	if parentErr := makeParent(safePath); parentErr != nil {
		return parentErr
	}

	return writeText(safePath, FormatManifest(pins))
}
