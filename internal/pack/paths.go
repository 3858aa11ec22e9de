// Package pack contains the content-pack domain shared by the dndtiles
// commands: definitions, pinned manifests, lock state, versions, integrity.
package pack

import "path/filepath"

const (
	DefaultWorkspaceDir = ".dndtiles"
	DefaultManifestFile = "packs.txt"
	DefinitionFile      = "pack.yaml"
	ReadmeFile          = "README.md"
	StateDirName        = "state"
	PacksDirName        = "packs"
	CacheDirName        = "cache"
	LockFileName        = "lock.json"
	CatalogFileName     = "catalog.db"

	// WorkspaceEnv overrides the workspace root when set.
	WorkspaceEnv = "DNDTILES_HOME"
)

func LockPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, StateDirName, LockFileName)
}

func CatalogPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, StateDirName, CatalogFileName)
}

func PacksDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, PacksDirName)
}

func CacheDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, CacheDirName)
}

func InstalledPackDir(workspaceRoot, name string) string {
	return filepath.Join(PacksDir(workspaceRoot), name)
}
