package syncenv

import "errors"

var (
	errManifestMissing   = errors.New("sync: manifest not found, run dndtiles freeze or pass --manifest")
	errUnmetRequirements = errors.New("sync: unmet pack requirements")
)
