package config

import "errors"

var (
	errNoConfigFile      = errors.New("config: no config file in default locations")
	errBadConfig         = errors.New("config: invalid configuration")
	errUnknownSourceType = errors.New("config: unknown source type")
)

// IsNotFound reports whether err is the missing-config-file case, which
// callers treat as "run with defaults".
func IsNotFound(err error) bool {
	return errors.Is(err, errNoConfigFile)
}
