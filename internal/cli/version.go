package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Overridable at build time via -ldflags.
var (
	buildVersion = "v0.0.0-dev"
	buildDate    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build and version info",
		Run: func(cmd *cobra.Command, _ []string) {
			commitHash, commitDate := "unknown", "unknown"
			goos, goarch, goVersion := "", "", ""

			if nfo, ok := debug.ReadBuildInfo(); ok {
				goVersion = nfo.GoVersion
				for _, s := range nfo.Settings {
					switch s.Key {
					case "vcs.revision":
						commitHash = s.Value
					case "vcs.time":
						commitDate = s.Value
					case "GOOS":
						goos = s.Value
					case "GOARCH":
						goarch = s.Value
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dndtiles %s (built %s, %s %s/%s)\n", buildVersion, buildDate, goVersion, goos, goarch)
			fmt.Fprintf(out, "commit: %s (date: %s)\n", commitHash, commitDate)
		},
	}
}
