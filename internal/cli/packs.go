// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/packs"
)

func newPacksCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Manage the installed tile packs",
	}

	cmd.AddCommand(newPacksListCmd(state))
	cmd.AddCommand(newPacksInfoCmd(state))
	cmd.AddCommand(newPacksAddCmd(state))
	cmd.AddCommand(newPacksRemoveCmd(state))

	return cmd
}

func newPacksListCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			return packs.List(cmd.Context(), packs.ListOptions{
				Workspace: state.workspaceDir(cfg),
				Out:       cmd.OutOrStdout(),
			})
		},
	}
}

func newPacksInfoCmd(state *rootState) *cobra.Command {
	opts := packs.InfoOptions{}
	cmd := &cobra.Command{
		Use:   "info NAME",
		Short: "Describe an installed pack",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}

			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Workspace = state.workspaceDir(cfg)
			if opts.Theme == "" {
				opts.Theme = cfg.Theme
			}
			opts.Out = cmd.OutOrStdout()

			return packs.Info(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "markdown style for the README")

	return cmd
}

func newPacksAddCmd(state *rootState) *cobra.Command {
	opts := packs.AddOptions{}
	cmd := &cobra.Command{
		Use:   "add NAME[@VERSION]",
		Short: "Resolve, fetch, and install a pack",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Ref = args[0]
			}

			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Workspace = state.workspaceDir(cfg)
			opts.Sources, err = state.sources(cfg)
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			opts.LoggerFactory = state.loggerFactory()

			return packs.Add(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Prerelease, "pre", false, "admit prerelease versions")

	return cmd
}

func newPacksRemoveCmd(state *rootState) *cobra.Command {
	opts := packs.RemoveOptions{}
	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an installed pack",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}

			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Workspace = state.workspaceDir(cfg)
			opts.Out = cmd.OutOrStdout()
			opts.LoggerFactory = state.loggerFactory()

			return packs.Remove(cmd.Context(), opts)
		},
	}

	return cmd
}
