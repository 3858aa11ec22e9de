// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package workspace manages the isolated pack environment: directory
// layout, metadata, activation scripts and the advisory mutation lock.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dndtiles/dndtiles/internal/pack"
)

// EnvSchema is the env.json schema this build reads and writes.
const EnvSchema = 1

const (
	envFileName     = "env.json"
	binDirName      = "bin"
	scriptsDirName  = "Scripts"
	activateFile    = "activate"
	activatePS1File = "Activate.ps1"
	lockFileName    = ".lock"
)

// Env is the workspace identity stored in env.json.
type Env struct {
	Schema      int    `json:"schema"`
	ID          string `json:"id"`
	CreatedAt   string `json:"createdAt"`
	ToolVersion string `json:"toolVersion"`
}

// Workspace is an opened environment rooted at Root.
type Workspace struct {
	Root string
	Env  Env
}

// Resolve picks the workspace root: the explicit flag value wins, then the
// DNDTILES_HOME environment variable, then the default directory.
func Resolve(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if fromEnv := os.Getenv(pack.WorkspaceEnv); fromEnv != "" {
		return fromEnv
	}

	return pack.DefaultWorkspaceDir
}

// Init creates a fresh environment at root: the directory tree, env.json
// and both activation scripts. An initialized root is refused unless force
// is set; force rewrites metadata and scripts but keeps installed packs.
func Init(root string, force bool, toolVersion string) (*Workspace, error) {
	envPath := filepath.Join(root, envFileName)
	if _, err := os.Stat(envPath); err == nil && !force {
		return nil, fmt.Errorf("%w: %s", errAlreadyInitialized, root)
	}

	for _, dir := range layoutDirs(root) {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create workspace: %w", err)
		}
	}

	env := Env{
		Schema:      EnvSchema,
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		ToolVersion: toolVersion,
	}
	if err := pack.WriteJSON(envPath, env); err != nil {
		return nil, err
	}
	if err := writeActivationScripts(root); err != nil {
		return nil, err
	}

	return &Workspace{Root: root, Env: env}, nil
}

// Open validates an existing environment at root.
func Open(root string) (*Workspace, error) {
	data, err := os.ReadFile(filepath.Join(root, envFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errNotInitialized, root)
		}

		return nil, fmt.Errorf("open workspace: %w", err)
	}

	var env Env
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse env.json: %w", err)
	}
	if env.Schema != EnvSchema {
		return nil, fmt.Errorf("%w: %d", errBadEnvSchema, env.Schema)
	}

	for _, dir := range layoutDirs(root) {
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", errCorruptLayout, dir)
		}
	}

	return &Workspace{Root: root, Env: env}, nil
}

func layoutDirs(root string) []string {
	return []string{
		pack.PacksDir(root),
		pack.CacheDir(root),
		filepath.Join(root, pack.StateDirName),
		filepath.Join(root, binDirName),
		filepath.Join(root, scriptsDirName),
	}
}

func (w *Workspace) PacksDir() string {
	return pack.PacksDir(w.Root)
}

func (w *Workspace) CacheDir() string {
	return pack.CacheDir(w.Root)
}

func (w *Workspace) StateDir() string {
	return filepath.Join(w.Root, pack.StateDirName)
}

func (w *Workspace) LockPath() string {
	return pack.LockPath(w.Root)
}

func (w *Workspace) CatalogPath() string {
	return pack.CatalogPath(w.Root)
}

func (w *Workspace) PackDir(name string) string {
	return pack.InstalledPackDir(w.Root, name)
}

// ActivatePath is the POSIX activation script, sourced from sh-compatible
// shells.
func (w *Workspace) ActivatePath() string {
	return filepath.Join(w.Root, binDirName, activateFile)
}

// ActivatePS1Path is the PowerShell activation script, dot-sourced on
// Windows.
func (w *Workspace) ActivatePS1Path() string {
	return filepath.Join(w.Root, scriptsDirName, activatePS1File)
}
