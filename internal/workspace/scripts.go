// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The activation scripts mirror the venv convention: they are sourced, not
// executed, export the workspace root and define a deactivate step that
// restores whatever was set before.

const activateTemplate = `# This file must be used with "source bin/activate" from sh, bash or zsh.
# Generated by dndtiles env init.

deactivate () {
    if [ -n "${_OLD_DNDTILES_HOME:-}" ] ; then
        DNDTILES_HOME="${_OLD_DNDTILES_HOME:-}"
        export DNDTILES_HOME
        unset _OLD_DNDTILES_HOME
    else
        unset DNDTILES_HOME
    fi
    if [ ! "${1:-}" = "nondestructive" ] ; then
        unset -f deactivate
    fi
}

deactivate nondestructive

_OLD_DNDTILES_HOME="${DNDTILES_HOME:-}"
DNDTILES_HOME=%q
export DNDTILES_HOME
`

const activatePS1Template = `# Dot-source this file from PowerShell: . .\Scripts\Activate.ps1
# Generated by dndtiles env init.

function global:Deactivate-DndTiles {
    if (Test-Path Env:_OLD_DNDTILES_HOME) {
        $Env:DNDTILES_HOME = $Env:_OLD_DNDTILES_HOME
        Remove-Item Env:_OLD_DNDTILES_HOME
    } else {
        Remove-Item Env:DNDTILES_HOME -ErrorAction SilentlyContinue
    }
    Remove-Item Function:Deactivate-DndTiles -ErrorAction SilentlyContinue
}

if (Test-Path Env:DNDTILES_HOME) {
    $Env:_OLD_DNDTILES_HOME = $Env:DNDTILES_HOME
}
$Env:DNDTILES_HOME = '%s'
`

func writeActivationScripts(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve workspace root: %w", err)
	}

	posix := fmt.Sprintf(activateTemplate, absRoot)
	posixPath := filepath.Join(root, binDirName, activateFile)
	if err := os.WriteFile(posixPath, []byte(posix), 0o640); err != nil {
		return fmt.Errorf("write activation script: %w", err)
	}

	// PowerShell single-quoted literals escape quotes by doubling them.
	ps1 := fmt.Sprintf(activatePS1Template, strings.ReplaceAll(absRoot, "'", "''"))
	ps1Path := filepath.Join(root, scriptsDirName, activatePS1File)
	if err := os.WriteFile(ps1Path, []byte(ps1), 0o640); err != nil {
		return fmt.Errorf("write activation script: %w", err)
	}

	return nil
}
