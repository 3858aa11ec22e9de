package roll

import (
	"io"
	"io/fs"
	"os"

	"github.com/pion/logging"
)

// Options configure Run.
type Options struct {
	// Table is the table reference, a bare name or pack/table.
	Table string
	// Pack narrows a bare Table reference to one pack.
	Pack string
	// Seed drives the draws; zero picks a time-derived seed, which the run
	// reports.
	Seed int64
	// Count is the number of draws.
	Count int
	// Unique excludes each result from the draws after it.
	Unique bool
	// Exclude removes options from the pool before any draw.
	Exclude []string
	// OutDir, when set, receives config.json, results.json and seed.txt.
	OutDir string

	// Workspace is the --workspace flag value; a missing workspace still
	// rolls builtin and bundled tables.
	Workspace string
	// Bundled is the packs subtree of an embedded payload, nil without one.
	Bundled fs.FS

	Out           io.Writer
	LoggerFactory logging.LoggerFactory
}

func defaultOptions() Options {
	return Options{
		Count: 1,
		Out:   os.Stdout,
	}
}

// WithDefaults returns a copy of the options with empty fields filled in.
func (o Options) WithDefaults() Options {
	def := defaultOptions()
	if o.Count < 1 {
		o.Count = def.Count
	}
	if o.Out == nil {
		o.Out = def.Out
	}
	if o.LoggerFactory == nil {
		o.LoggerFactory = logging.NewDefaultLoggerFactory()
	}

	return o
}
