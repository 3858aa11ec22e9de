// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package roll

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/tables"
)

type rollConfig struct {
	GeneratedAt time.Time `json:"generated_at"`
	SessionID   string    `json:"session_id"`
	Table       string    `json:"table"`
	Origin      string    `json:"origin"`
	Seed        int64     `json:"seed"`
	Count       int       `json:"count"`
	Unique      bool      `json:"unique,omitempty"`
	Exclude     []string  `json:"exclude,omitempty"`
}

type rollResults struct {
	GeneratedAt time.Time      `json:"generated_at"`
	SessionID   string         `json:"session_id"`
	Seed        int64          `json:"seed"`
	Results     []resultRecord `json:"results"`
}

type resultRecord struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

func writeArtifacts(opts Options, tbl tables.Table, seed int64, results []string) error {
	if opts.OutDir == "" {
		return nil
	}

	dir := filepath.Clean(opts.OutDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("roll: out dir: %w", err)
	}

	generatedAt := time.Now().UTC()
	sessionID := uuid.NewString()
	config := rollConfig{
		GeneratedAt: generatedAt,
		SessionID:   sessionID,
		Table:       tbl.Qualified(),
		Origin:      tbl.Origin,
		Seed:        seed,
		Count:       opts.Count,
		Unique:      opts.Unique,
		Exclude:     opts.Exclude,
	}
	resultsDoc := rollResults{
		GeneratedAt: generatedAt,
		SessionID:   sessionID,
		Seed:        seed,
		Results:     make([]resultRecord, 0, len(results)),
	}
	for i, value := range results {
		resultsDoc.Results = append(resultsDoc.Results, resultRecord{Index: i + 1, Value: value})
	}

	if err := pack.WriteJSON(filepath.Join(dir, "config.json"), config); err != nil {
		return err
	}
	if err := pack.WriteJSON(filepath.Join(dir, "results.json"), resultsDoc); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "seed.txt"), []byte(fmt.Sprintf("%d\n", seed)), 0o600); err != nil {
		return fmt.Errorf("roll: write seed: %w", err)
	}

	return nil
}
