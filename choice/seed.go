// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package choice

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultSeed int64 = 1

// NewRand returns the deterministic generator used for every draw with the
// given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1))) //nolint:gosec // not cryptographic purpose
}

// DeriveSeed folds an index into a base seed so that each table or repeat
// within a session gets an independent, reproducible stream.
func DeriveSeed(base int64, idx int) int64 {
	payload := fmt.Sprintf("%d:%d", base, idx)
	sum := sha256.Sum256([]byte(payload))

	return int64(binary.LittleEndian.Uint64(sum[:8])) //nolint:gosec // not cryptographic purpose
}

// ResolveSeed maps the zero seed to a time-derived one, so zero can mean
// "pick for me" while the picked value stays reportable.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	picked := time.Now().UnixNano()
	if picked == 0 {
		picked = defaultSeed
	}

	return picked
}
