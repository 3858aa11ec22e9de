package packs

import (
	"io"
	"os"

	"github.com/pion/logging"

	"github.com/dndtiles/dndtiles/internal/registry"
)

// ListOptions configure List.
type ListOptions struct {
	Workspace string
	Out       io.Writer
}

// WithDefaults returns a copy of the options with empty fields filled in.
func (o ListOptions) WithDefaults() ListOptions {
	if o.Out == nil {
		o.Out = os.Stdout
	}

	return o
}

// InfoOptions configure Info.
type InfoOptions struct {
	// Name is the installed pack to describe.
	Name string
	// Theme is the glamour style used when the README renders on a TTY.
	Theme string

	Workspace string
	Out       io.Writer
}

// WithDefaults returns a copy of the options with empty fields filled in.
func (o InfoOptions) WithDefaults() InfoOptions {
	if o.Out == nil {
		o.Out = os.Stdout
	}

	return o
}

// AddOptions configure Add.
type AddOptions struct {
	// Ref is the pack to install: NAME, NAME@VERSION or NAME@CONSTRAINT.
	Ref string
	// Prerelease admits prerelease versions when resolving a bare name.
	Prerelease bool
	// Sources are the registries to resolve against, in order.
	Sources []registry.Source

	Workspace     string
	Out           io.Writer
	LoggerFactory logging.LoggerFactory
}

// WithDefaults returns a copy of the options with empty fields filled in.
func (o AddOptions) WithDefaults() AddOptions {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.LoggerFactory == nil {
		o.LoggerFactory = logging.NewDefaultLoggerFactory()
	}

	return o
}

// RemoveOptions configure Remove.
type RemoveOptions struct {
	// Name is the installed pack to remove.
	Name string

	Workspace     string
	Out           io.Writer
	LoggerFactory logging.LoggerFactory
}

// WithDefaults returns a copy of the options with empty fields filled in.
func (o RemoveOptions) WithDefaults() RemoveOptions {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.LoggerFactory == nil {
		o.LoggerFactory = logging.NewDefaultLoggerFactory()
	}

	return o
}
