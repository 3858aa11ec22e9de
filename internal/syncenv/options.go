package syncenv

import (
	"io"
	"os"

	"github.com/pion/logging"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/registry"
)

// DefaultJobs bounds how many packs are fetched at once.
const DefaultJobs = 4

type Options struct {
	Workspace     string
	ManifestPath  string
	Jobs          int
	Prune         bool
	DryRun        bool
	Strict        bool
	Sources       []registry.Source
	Out           io.Writer
	LoggerFactory logging.LoggerFactory
}

func defaultOptions() Options {
	return Options{
		ManifestPath:  pack.DefaultManifestFile,
		Jobs:          DefaultJobs,
		Out:           os.Stdout,
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	}
}

func (o Options) WithDefaults() Options {
	def := defaultOptions()
	if o.ManifestPath == "" {
		o.ManifestPath = def.ManifestPath
	}
	if o.Jobs < 1 {
		o.Jobs = def.Jobs
	}
	if o.Out == nil {
		o.Out = def.Out
	}
	if o.LoggerFactory == nil {
		o.LoggerFactory = def.LoggerFactory
	}

	return o
}
