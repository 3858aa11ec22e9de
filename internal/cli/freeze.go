package cli

import (
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/freeze"
)

func newFreezeCmd(state *rootState) *cobra.Command {
	opts := freeze.Options{}.WithDefaults()
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Write the installed packs as a pinned manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}
			opts.Workspace = state.workspaceDir(cfg)
			opts.Out = cmd.OutOrStdout()

			return freeze.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", opts.OutputPath, "manifest path (- for stdout)")

	return cmd
}
