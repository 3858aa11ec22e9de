// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package choice implements the table chooser: uniform or weighted random
// selection over named options, with exclusion filtering.
package choice

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// DefaultEpsilon is the weight cutoff below which a weighted option is
// treated as absent from the pool.
const DefaultEpsilon = 1e-9

// Set is one choice table: a title plus exactly one pool of options,
// either uniform (Items) or weighted (Weights).
type Set struct {
	Title   string
	Items   []string
	Weights map[string]float64
	Epsilon float64
}

func (s Set) epsilon() float64 {
	if s.Epsilon > 0 {
		return s.Epsilon
	}

	return DefaultEpsilon
}

// Weighted reports whether the set draws from the weighted pool.
func (s Set) Weighted() bool {
	return len(s.Weights) > 0
}

// Options returns the option names of the pool, sorted.
func (s Set) Options() []string {
	var names []string
	if len(s.Items) > 0 {
		names = append([]string(nil), s.Items...)
	} else {
		names = make([]string, 0, len(s.Weights))
		for name := range s.Weights {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names
}

// Validate checks the set shape before any draw: a title, exactly one
// non-empty pool, no duplicate items, finite non-negative weights with a
// total above epsilon.
func (s Set) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSet)
	}
	if len(s.Items) > 0 && len(s.Weights) > 0 {
		return fmt.Errorf("%w: %s carries both items and weights", ErrInvalidSet, s.Title)
	}
	if len(s.Items) == 0 && len(s.Weights) == 0 {
		return fmt.Errorf("%w: %s has no options", ErrInvalidSet, s.Title)
	}
	if s.Epsilon < 0 {
		return fmt.Errorf("%w: %s epsilon must be non-negative", ErrInvalidSet, s.Title)
	}
	if len(s.Items) > 0 {
		return s.validateItems()
	}

	return s.validateWeights()
}

func (s Set) validateItems() error {
	seen := make(map[string]struct{}, len(s.Items))
	for _, item := range s.Items {
		if item == "" {
			return fmt.Errorf("%w: %s has an empty item", ErrInvalidSet, s.Title)
		}
		if _, dup := seen[item]; dup {
			return fmt.Errorf("%w: %s repeats item %q", ErrInvalidSet, s.Title, item)
		}
		seen[item] = struct{}{}
	}

	return nil
}

func (s Set) validateWeights() error {
	total := 0.0
	for name, weight := range s.Weights {
		if name == "" {
			return fmt.Errorf("%w: %s has an empty option name", ErrInvalidSet, s.Title)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return fmt.Errorf("%w: %s option %q has weight %v", ErrInvalidSet, s.Title, name, weight)
		}
		total += weight
	}
	if total <= s.epsilon() {
		return fmt.Errorf("%w: %s total weight %v does not exceed epsilon", ErrInvalidSet, s.Title, total)
	}

	return nil
}

// Draw picks one option, never one listed in exclude. Uniform pools pick
// with equal probability; weighted pools pick proportionally to the weights
// of the options that remain, and options at or below epsilon never win.
func (s Set) Draw(rng *rand.Rand, exclude []string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	excluded := nameSet(exclude)
	if len(s.Items) > 0 {
		return s.drawUniform(rng, excluded)
	}

	return s.drawWeighted(rng, excluded)
}

func (s Set) drawUniform(rng *rand.Rand, excluded map[string]struct{}) (string, error) {
	options := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		if _, skip := excluded[item]; skip {
			continue
		}
		options = append(options, item)
	}
	if len(options) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOptions, s.Title)
	}

	return options[rng.IntN(len(options))], nil
}

func (s Set) drawWeighted(rng *rand.Rand, excluded map[string]struct{}) (string, error) {
	eps := s.epsilon()
	names := make([]string, 0, len(s.Weights))
	for name, weight := range s.Weights {
		if _, skip := excluded[name]; skip {
			continue
		}
		if weight <= eps {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOptions, s.Title)
	}
	// Walk in sorted order so a seed replays identically regardless of map
	// iteration order.
	sort.Strings(names)

	total := 0.0
	for _, name := range names {
		total += s.Weights[name]
	}
	roll := rng.Float64() * total
	acc := 0.0
	for _, name := range names {
		acc += s.Weights[name]
		if roll < acc {
			return name, nil
		}
	}

	return names[len(names)-1], nil
}

// DrawN performs n draws. With unique set, each result joins the exclusion
// list for the draws after it, and the pool running dry before n draws is
// ErrNoOptions.
func (s Set) DrawN(rng *rand.Rand, n int, unique bool, exclude []string) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: draw count must be >= 1", ErrInvalidSet)
	}

	running := append([]string(nil), exclude...)
	results := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picked, err := s.Draw(rng, running)
		if err != nil {
			return nil, err
		}
		results = append(results, picked)
		if unique {
			running = append(running, picked)
		}
	}

	return results, nil
}

func nameSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}
