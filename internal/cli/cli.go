// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package cli wires the dndtiles commands. Each subcommand binds its
// flags to the options struct of the package that implements it.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/config"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/payload"
	"github.com/dndtiles/dndtiles/internal/registry"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

func Execute(args []string) error {
	self, err := payload.Self()
	switch {
	case err == nil:
		defer func() { _ = self.Close() }()
	case errors.Is(err, payload.ErrNoPayload):
		self = nil
	default:
		return err
	}

	root := newRootCmd(self)

	// A windowed bundle run without arguments boots the browser.
	if len(args) == 0 && self != nil && self.Windowed() {
		args = []string{"tui"}
	}
	root.SetArgs(args)
	ctx := context.Background()

	if err := root.ExecuteContext(ctx); err != nil {
		return err
	}

	return nil
}

func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func newRootCmd(self *payload.Payload) *cobra.Command {
	state := &rootState{payload: self}
	cmd := &cobra.Command{
		Use:   "dndtiles",
		Short: "dndtiles manages tile packs and rolls their tables",
		Long: `dndtiles keeps a workspace of installed tile packs, freezes and restores
it through manifests, rolls the packs' tables, and packages workspace plus
runtime into a single self-running file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&state.workspace, "workspace", "", "workspace directory (default $DNDTILES_HOME or .dndtiles)")
	cmd.PersistentFlags().StringVar(&state.configPath, "config", "", "config file (default: discovered)")

	cmd.AddCommand(newEnvCmd(state))
	cmd.AddCommand(newFreezeCmd(state))
	cmd.AddCommand(newSyncCmd(state))
	cmd.AddCommand(newRollCmd(state))
	cmd.AddCommand(newTablesCmd(state))
	cmd.AddCommand(newPacksCmd(state))
	cmd.AddCommand(newBundleCmd(state))
	cmd.AddCommand(newVerifyCmd(state))
	cmd.AddCommand(newTUICmd(state))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// rootState carries the persistent flags and the payload probe into the
// subcommand builders.
type rootState struct {
	verbose    bool
	workspace  string
	configPath string

	payload *payload.Payload
}

func (s *rootState) loggerFactory() logging.LoggerFactory {
	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = logging.LogLevelWarn
	if s.verbose {
		factory.DefaultLogLevel = logging.LogLevelDebug
	}

	return factory
}

// loadConfig reads the --config file, or the first discovered one. No
// config anywhere is not an error; the zero Config runs on defaults.
func (s *rootState) loadConfig() (*config.Config, error) {
	path := s.configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			if config.IsNotFound(err) {
				return &config.Config{}, nil
			}

			return nil, err
		}
		path = found
	}

	return config.Load(path)
}

// workspaceDir resolves the workspace directory: flag, then config,
// then the workspace package defaults.
func (s *rootState) workspaceDir(cfg *config.Config) string {
	if s.workspace != "" {
		return s.workspace
	}

	return cfg.Workspace
}

// sources builds the registry chain: configured sources first, then the
// packs carried by an embedded payload as an offline fallback.
func (s *rootState) sources(cfg *config.Config) ([]registry.Source, error) {
	cacheDir := pack.CacheDir(workspace.Resolve(s.workspaceDir(cfg)))
	sources, err := cfg.BuildSources(cacheDir)
	if err != nil {
		return nil, err
	}

	if fsys := s.bundledPacks(); fsys != nil {
		sources = append(sources, registry.NewFSSource("bundled", fsys))
	}

	return sources, nil
}

// bundledPacks exposes the packs area of the payload, nil without one.
func (s *rootState) bundledPacks() fs.FS {
	if s.payload == nil {
		return nil
	}

	fsys, err := s.payload.PacksFS()
	if err != nil {
		return nil
	}

	return fsys
}
