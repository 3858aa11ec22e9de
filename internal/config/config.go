// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package config loads the optional dndtiles configuration file: registry
// sources, the default workspace and a few UI knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pion/logging"
	"gopkg.in/yaml.v3"

	"github.com/dndtiles/dndtiles/internal/registry"
)

// Source types accepted in the sources list.
const (
	SourceTypeDir = "dir"
	SourceTypeGit = "git"
)

// Config is the top-level configuration for dndtiles.
type Config struct {
	// Workspace overrides the default workspace root; the --workspace flag
	// still wins over it.
	Workspace string `yaml:"workspace,omitempty"`
	// Jobs is the default fetch parallelism for sync.
	Jobs int `yaml:"jobs,omitempty"`
	// Theme picks the glamour style for rendered READMEs.
	Theme string `yaml:"theme,omitempty"`
	// Sources lists pack registries in resolution order.
	Sources []SourceConfig `yaml:"sources,omitempty"`
}

// SourceConfig describes a single registry source.
type SourceConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // "dir" or "git"
	Path string `yaml:"path,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding ${ENV_VAR}
// references in the workspace and source locations.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("parse config file: %w", unmarshalErr)
	}

	cfg.Workspace = expand(cfg.Workspace)
	for i := range cfg.Sources {
		cfg.Sources[i].Path = expand(cfg.Sources[i].Path)
		cfg.Sources[i].URL = expand(cfg.Sources[i].URL)
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches the standard locations for a configuration file
// and returns the first hit.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{"."}
	if homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".dndtiles.yaml",
		".dndtiles.yml",
		"dndtiles.yaml",
		"dndtiles.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errNoConfigFile
}

// BuildSources turns the configured source list into registry sources.
// Git mirrors live under cacheDir.
func (c *Config) BuildSources(cacheDir string) ([]registry.Source, error) {
	sources := make([]registry.Source, 0, len(c.Sources))
	for _, sc := range c.Sources {
		switch sc.Type {
		case SourceTypeDir:
			sources = append(sources, registry.NewDirSource(sc.Name, sc.Path))
		case SourceTypeGit:
			sources = append(sources, registry.NewGitSource(sc.Name, sc.URL, cacheDir))
		default:
			return nil, fmt.Errorf("%w: %q", errUnknownSourceType, sc.Type)
		}
	}

	return sources, nil
}

// expand replaces ${VAR} references with environment values. Unset
// variables expand to the empty string with a warning.
func expand(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logging.NewDefaultLoggerFactory().NewLogger("config").Warnf("environment variable %q is not set", varName)

		return ""
	})
}

func validate(cfg *Config) error {
	if cfg.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative", errBadConfig)
	}

	seen := make(map[string]struct{}, len(cfg.Sources))
	for i, sc := range cfg.Sources {
		if sc.Name == "" {
			return fmt.Errorf("%w: sources[%d].name is required", errBadConfig, i)
		}
		if _, dup := seen[sc.Name]; dup {
			return fmt.Errorf("%w: duplicate source %q", errBadConfig, sc.Name)
		}
		seen[sc.Name] = struct{}{}

		switch sc.Type {
		case SourceTypeDir:
			if sc.Path == "" {
				return fmt.Errorf("%w: source %q needs a path", errBadConfig, sc.Name)
			}
		case SourceTypeGit:
			if sc.URL == "" {
				return fmt.Errorf("%w: source %q needs a url", errBadConfig, sc.Name)
			}
		default:
			return fmt.Errorf("%w: %q", errUnknownSourceType, sc.Type)
		}
	}

	return nil
}
