package tables

import "errors"

var (
	// ErrTableNotFound reports a reference no visible table matches.
	ErrTableNotFound = errors.New("tables: table not found")
	// ErrAmbiguousTable reports a bare name defined by several packs.
	ErrAmbiguousTable = errors.New("tables: ambiguous table name")
)
