// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package registry resolves and fetches content packs from configured
// sources: registry directories, git repositories and bundle payloads.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/pion/logging"
)

// Fetched describes a pack tree materialized into a local directory.
type Fetched struct {
	Name      string
	Version   string
	Integrity string
	Source    string
	Dir       string
}

// Source is one place packs can come from.
type Source interface {
	// Name labels the source in locks and logs.
	Name() string
	// Resolve lists the versions of name the source can provide, sorted
	// ascending. Sources without the pack return ErrPackNotFound.
	Resolve(ctx context.Context, name string) ([]string, error)
	// Fetch materializes name@version into dstDir and reports the tree
	// digest. Missing versions return ErrVersionNotFound.
	Fetch(ctx context.Context, name, version, dstDir string) (Fetched, error)
}

// Registry fans out over sources in configuration order; the first source
// that can serve a request wins.
type Registry struct {
	sources []Source
	log     logging.LeveledLogger
}

func New(sources []Source, loggerFactory logging.LoggerFactory) *Registry {
	return &Registry{
		sources: sources,
		log:     loggerFactory.NewLogger("registry"),
	}
}

// Sources returns the configured sources in order.
func (r *Registry) Sources() []Source {
	return r.sources
}

// Versions finds the first source carrying name and returns its versions
// plus the source name.
func (r *Registry) Versions(ctx context.Context, name string) ([]string, string, error) {
	for _, source := range r.sources {
		versions, err := source.Resolve(ctx, name)
		if errors.Is(err, ErrPackNotFound) {
			r.log.Debugf("source %s has no pack %s", source.Name(), name)
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("resolve %s via %s: %w", name, source.Name(), err)
		}
		r.log.Debugf("source %s has %s versions %v", source.Name(), name, versions)

		return versions, source.Name(), nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrPackNotFound, name)
}

// Fetch materializes name@version from the first source that has it.
func (r *Registry) Fetch(ctx context.Context, name, version, dstDir string) (Fetched, error) {
	packSeen := false
	for _, source := range r.sources {
		fetched, err := source.Fetch(ctx, name, version, dstDir)
		switch {
		case errors.Is(err, ErrPackNotFound):
			continue
		case errors.Is(err, ErrVersionNotFound):
			packSeen = true
			continue
		case err != nil:
			return Fetched{}, fmt.Errorf("fetch %s@%s via %s: %w", name, version, source.Name(), err)
		}
		r.log.Infof("fetched %s@%s from %s", name, version, source.Name())

		return fetched, nil
	}

	if packSeen {
		return Fetched{}, fmt.Errorf("%w: %s@%s", ErrVersionNotFound, name, version)
	}

	return Fetched{}, fmt.Errorf("%w: %s", ErrPackNotFound, name)
}
