// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dndtiles/dndtiles/internal/bundle"
	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/payload"
)

func newBundleCmd(state *rootState) *cobra.Command {
	opts := bundle.Options{}.WithDefaults()
	cmd := &cobra.Command{
		Use:   "bundle [entry-dir]",
		Short: "Package packs and runtime into one self-running file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.EntryDir = args[0]
			}

			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}

			opts.Workspace = state.workspaceDir(cfg)
			opts.CollectAll = pack.SplitAndTrim(opts.CollectAll)
			opts.ToolVersion = buildVersion
			opts.Out = cmd.OutOrStdout()
			opts.LoggerFactory = state.loggerFactory()

			return bundle.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.OneFile, "onefile", true, "emit a single executable (=false keeps the staged directory)")
	cmd.Flags().BoolVar(&opts.Console, "console", true, "default to the console commands (=false boots the TUI)")
	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "delete the build and dist directories first")
	cmd.Flags().StringSliceVar(&opts.CollectAll, "collect-all", nil, "force-include these installed packs (comma-separated, may repeat)")
	cmd.Flags().StringVar(&opts.Name, "name", opts.Name, "output name")
	cmd.Flags().StringVar(&opts.Icon, "icon", "", "icon file to carry in the payload")
	cmd.Flags().StringVar(&opts.OutDir, "out", opts.OutDir, "dist directory")
	cmd.Flags().StringVar(&opts.Runtime, "runtime", "", "base executable (default: the running binary)")

	cmd.AddCommand(newBundleInfoCmd())

	return cmd
}

func newBundleInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print the metadata a bundled file carries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := payload.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = p.Close() }()

			return printBundleInfo(cmd.OutOrStdout(), p.Info)
		},
	}
}

func printBundleInfo(w io.Writer, info payload.Info) error {
	fmt.Fprintf(w, "%s (%s)\n", info.Name, info.Mode)
	fmt.Fprintf(w, "id: %s\n", info.ID)
	fmt.Fprintf(w, "created: %s by %s\n", info.CreatedAt, info.Runtime)
	if info.Entry != "" {
		fmt.Fprintf(w, "entry: %s\n", info.Entry)
	}
	if info.Icon != "" {
		fmt.Fprintf(w, "icon: %s\n", info.Icon)
	}

	if len(info.Packs) > 0 {
		tw := tabwriter.NewWriter(w, 10, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PACK\tVERSION\tINTEGRITY")
		for _, rec := range info.Packs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.Name, rec.Version, rec.Integrity)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "%d files\n", len(info.Files))

	return nil
}
