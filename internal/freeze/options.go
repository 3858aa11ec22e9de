package freeze

import (
	"io"
	"os"

	"github.com/dndtiles/dndtiles/internal/pack"
)

// StdoutPath selects standard output instead of a manifest file.
const StdoutPath = "-"

type Options struct {
	Workspace  string
	OutputPath string
	Out        io.Writer
}

func defaultOptions() Options {
	return Options{
		OutputPath: pack.DefaultManifestFile,
		Out:        os.Stdout,
	}
}

func (o Options) WithDefaults() Options {
	def := defaultOptions()
	if o.OutputPath == "" {
		o.OutputPath = def.OutputPath
	}
	if o.Out == nil {
		o.Out = def.Out
	}

	return o
}
