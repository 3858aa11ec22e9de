package packs

import "errors"

var errNoName = errors.New("packs: pack name required")
