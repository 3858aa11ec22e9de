package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/tables"
)

func newTablesCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List every rollable table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			view, err := tables.Load(tables.Options{
				Workspace:     state.workspaceDir(cfg),
				Bundled:       state.bundledPacks(),
				LoggerFactory: state.loggerFactory(),
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 10, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tKIND\tOPTIONS\tORIGIN")
			for _, tbl := range view.All() {
				kind := "uniform"
				if tbl.Set.Weighted() {
					kind = "weighted"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", tbl.Qualified(), kind, len(tbl.Set.Options()), tbl.Origin)
			}

			return tw.Flush()
		},
	}

	return cmd
}
