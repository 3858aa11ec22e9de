package tui

import "errors"

var errNoTTY = errors.New("tui: interactive terminal required")
