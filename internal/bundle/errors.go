package bundle

import "errors"

var (
	errNothingToBundle  = errors.New("bundle: need an entry pack directory or at least one --collect-all pack")
	errPackNotInstalled = errors.New("bundle: pack not installed in the workspace, run dndtiles sync first")
	errEmptyOutputPath  = errors.New("bundle: output path is empty")
	errUnsafeOutputPath = errors.New("bundle: output path escapes the working directory")
)
