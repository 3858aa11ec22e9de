package tui

import (
	"io/fs"

	"github.com/pion/logging"
)

// Options configures the interactive browser.
type Options struct {
	// Workspace is the directory holding the workspace. Empty means the
	// current directory.
	Workspace string

	// Bundled is the pack tree carried by an embedded payload, if any.
	Bundled fs.FS

	// Theme selects the markdown style used for README rendering.
	Theme string

	// Watch reloads the browser content whenever the workspace packs
	// directory changes.
	Watch bool

	// LoggerFactory creates the loggers used by the browser.
	LoggerFactory logging.LoggerFactory
}

func defaultOptions() Options {
	return Options{
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	}
}

// WithDefaults returns a shallow copy of o with empty fields replaced
// by their defaults.
func (o Options) WithDefaults() Options {
	def := defaultOptions()
	if o.LoggerFactory == nil {
		o.LoggerFactory = def.LoggerFactory
	}

	return o
}
