package cli

import (
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/syncenv"
)

func newSyncCmd(state *rootState) *cobra.Command {
	opts := syncenv.Options{}.WithDefaults()
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Install, upgrade, and prune packs to match the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Workspace = state.workspaceDir(cfg)
			if !cmd.Flags().Changed("jobs") && cfg.Jobs > 0 {
				opts.Jobs = cfg.Jobs
			}
			opts.Sources, err = state.sources(cfg)
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			opts.LoggerFactory = state.loggerFactory()

			return syncenv.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ManifestPath, "manifest", opts.ManifestPath, "manifest to satisfy")
	cmd.Flags().IntVar(&opts.Jobs, "jobs", opts.Jobs, "parallel fetches")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "remove installed packs absent from the manifest")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show the plan without changing the workspace")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat requires violations as errors")

	return cmd
}
