package cli

import (
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/tui"
)

func newTUICmd(state *rootState) *cobra.Command {
	opts := tui.Options{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse tables and packs interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Workspace = state.workspaceDir(cfg)
			opts.Bundled = state.bundledPacks()
			opts.Theme = cfg.Theme
			opts.LoggerFactory = state.loggerFactory()

			return tui.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "reload when the packs directory changes")

	return cmd
}
