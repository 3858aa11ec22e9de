package cli

import (
	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/verify"
)

func newVerifyCmd(state *rootState) *cobra.Command {
	opts := verify.Options{}.WithDefaults()
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Lint the loadable packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}
			opts.Workspace = state.workspaceDir(cfg)
			opts.Out = cmd.OutOrStdout()

			return verify.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Paths, "path", nil, "extra pack directories to check (may repeat)")
	cmd.Flags().StringVar(&opts.JUnitPath, "out", "", "path to write JUnit XML results")

	return cmd
}
