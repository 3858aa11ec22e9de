package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/workspace"
)

func newEnvCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the tiles workspace",
	}
	cmd.AddCommand(newEnvInitCmd(state))

	return cmd
}

func newEnvInitCmd(state *rootState) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a workspace with activation scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			dir := state.workspaceDir(cfg)
			if len(args) == 1 {
				dir = args[0]
			}

			ws, err := workspace.Init(workspace.Resolve(dir), force, buildVersion)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "initialized workspace at %s\n", ws.Root)
			fmt.Fprintf(out, "activate with: source %s\n", ws.ActivatePath())

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reinitialize an existing workspace, keeping installed packs")

	return cmd
}
