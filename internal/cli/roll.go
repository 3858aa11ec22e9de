// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/roll"
)

func newRollCmd(state *rootState) *cobra.Command {
	opts := roll.Options{}.WithDefaults()
	cmd := &cobra.Command{
		Use:   "roll TABLE",
		Short: "Roll a table and print the drawn options",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Table = args[0]
			}

			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Exclude = pack.SplitAndTrim(opts.Exclude)
			opts.Workspace = state.workspaceDir(cfg)
			opts.Bundled = state.bundledPacks()
			opts.Out = cmd.OutOrStdout()
			opts.LoggerFactory = state.loggerFactory()

			return roll.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0=random, reported)")
	cmd.Flags().IntVar(&opts.Count, "count", opts.Count, "number of draws")
	cmd.Flags().BoolVar(&opts.Unique, "unique", false, "exclude each result from later draws")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "options to leave out (comma-separated, may repeat)")
	cmd.Flags().StringVar(&opts.Pack, "pack", "", "pack to resolve a bare table name in")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "directory for roll artifacts")

	return cmd
}
