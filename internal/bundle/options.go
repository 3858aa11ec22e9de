package bundle

import (
	"io"
	"os"

	"github.com/pion/logging"
)

// DefaultName is the output name when none is given.
const DefaultName = "dnd_tiles"

const (
	defaultBuildDir = "build"
	defaultOutDir   = "dist"
)

// Options drive one bundle build. OneFile and Console carry their flag
// values as-is; the command layer owns their defaults.
type Options struct {
	EntryDir    string
	Name        string
	OneFile     bool
	Console     bool
	Clean       bool
	CollectAll  []string
	Icon        string
	OutDir      string
	BuildDir    string
	Runtime     string
	Workspace   string
	ToolVersion string

	Out           io.Writer
	LoggerFactory logging.LoggerFactory
}

func defaultOptions() Options {
	return Options{
		Name:          DefaultName,
		OutDir:        defaultOutDir,
		BuildDir:      defaultBuildDir,
		ToolVersion:   "dev",
		Out:           os.Stdout,
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	}
}

func (o Options) WithDefaults() Options {
	def := defaultOptions()
	if o.Name == "" {
		o.Name = def.Name
	}
	if o.OutDir == "" {
		o.OutDir = def.OutDir
	}
	if o.BuildDir == "" {
		o.BuildDir = def.BuildDir
	}
	if o.ToolVersion == "" {
		o.ToolVersion = def.ToolVersion
	}
	if o.Out == nil {
		o.Out = def.Out
	}
	if o.LoggerFactory == nil {
		o.LoggerFactory = def.LoggerFactory
	}

	return o
}
