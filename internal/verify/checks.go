// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dndtiles/dndtiles/internal/pack"
)

// checkResult is the outcome of one lint check on one pack.
type checkResult struct {
	Pack    string
	Check   string
	Passed  bool
	Details string
}

// target is one pack directory to lint. installed marks trees under the
// workspace packs dir, the only ones lock.json can speak for.
type target struct {
	label     string
	dir       string
	installed bool
}

// checkLock compares an installed tree against its lock.json entry. Packs
// the lock does not record are skipped; untracked trees are tolerated the
// same way the catalog tolerates them.
func checkLock(lock *pack.Lockfile, tgt target) (checkResult, bool) {
	entry, ok := lock.Entry(tgt.label)
	if !ok {
		return checkResult{}, false
	}

	return checkErr(tgt.label, "lock", pack.VerifyTree(tgt.dir, entry.Integrity)), true
}

// checkPack lints a single pack directory. The definition is read without
// the usual all-or-nothing validation so every rule reports on its own.
func checkPack(tgt target) []checkResult {
	data, err := os.ReadFile(filepath.Join(tgt.dir, pack.DefinitionFile)) //nolint:gosec // lint target chosen by the caller
	if err != nil {
		return []checkResult{fail(tgt.label, "definition", err.Error())}
	}

	var def pack.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return []checkResult{fail(tgt.label, "definition", err.Error())}
	}

	label := tgt.label
	if def.Name != "" {
		label = def.Name
	}

	results := []checkResult{
		check(label, "schema", def.Schema == pack.SchemaVersion,
			fmt.Sprintf("want schema %d, got %d", pack.SchemaVersion, def.Schema)),
		checkErr(label, "name", pack.ValidateName(def.Name)),
		check(label, "version", pack.IsValidVersion(def.Version),
			fmt.Sprintf("not a bare semver version: %q", def.Version)),
		check(label, "title", def.Title != "", "title is empty"),
	}

	for _, raw := range def.Requires {
		_, err := pack.ParseRequirement(raw)
		results = append(results, checkErr(label, "requires:"+raw, err))
	}

	duplicate := ""
	seen := make(map[string]struct{}, len(def.Tables))
	for _, table := range def.Tables {
		if _, dup := seen[table.Name]; dup && duplicate == "" {
			duplicate = table.Name
		}
		seen[table.Name] = struct{}{}
	}
	results = append(results, check(label, "unique-tables", duplicate == "", "duplicate table "+duplicate))

	for _, table := range def.Tables {
		err := errors.Join(pack.ValidateName(table.Name), table.Set().Validate())
		results = append(results, checkErr(label, "table:"+table.Name, err))
	}

	return results
}

func check(packName, checkName string, passed bool, details string) checkResult {
	res := checkResult{Pack: packName, Check: checkName, Passed: passed}
	if !passed {
		res.Details = details
	}

	return res
}

func checkErr(packName, checkName string, err error) checkResult {
	if err != nil {
		return fail(packName, checkName, err.Error())
	}

	return checkResult{Pack: packName, Check: checkName, Passed: true}
}

func fail(packName, checkName, details string) checkResult {
	return checkResult{Pack: packName, Check: checkName, Passed: false, Details: details}
}

func countFailures(results []checkResult) int {
	failures := 0
	for _, res := range results {
		if !res.Passed {
			failures++
		}
	}

	return failures
}
