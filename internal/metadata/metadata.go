// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package metadata writes and rebuilds train/metadata.json, the summary the
// trainer reads to size its epochs.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/draftset/internal/logging"
	"github.com/tomtom215/draftset/internal/models"
	"github.com/tomtom215/draftset/internal/shard"
)

// File names inside a split directory.
const (
	FileName       = "metadata.json"
	OracleDictName = "oracleDict.json"
)

// Metadata counts what was written to the training split.
type Metadata struct {
	NumOracles int   `json:"numOracles"`
	NumCubes   int64 `json:"numCubes"`
	NumDecks   int64 `json:"numDecks"`
	NumPicks   int64 `json:"numPicks"`
}

// Set records count for kind.
func (m *Metadata) Set(kind string, count int64) {
	switch kind {
	case models.KindCubes:
		m.NumCubes = count
	case models.KindDecks:
		m.NumDecks = count
	case models.KindPicks:
		m.NumPicks = count
	}
}

// Get returns the count recorded for kind.
func (m *Metadata) Get(kind string) int64 {
	switch kind {
	case models.KindCubes:
		return m.NumCubes
	case models.KindDecks:
		return m.NumDecks
	case models.KindPicks:
		return m.NumPicks
	}
	return 0
}

// Write stores m as dir/metadata.json.
func Write(dir string, m Metadata) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata %s: %w", path, err)
	}
	return nil
}

// Read loads dir/metadata.json.
func Read(dir string) (Metadata, error) {
	var m Metadata
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read metadata %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	return m, nil
}

// Recount rebuilds the metadata of an existing training split directory by
// reading oracleDict.json and counting the records of every shard.
// Kinds without a shard directory count as zero.
func Recount(trainDir string) (Metadata, error) {
	var m Metadata
	logger := logging.WithComponent("metadata")

	oracles, err := shard.Count(filepath.Join(trainDir, OracleDictName))
	if err != nil {
		return m, fmt.Errorf("count oracles: %w", err)
	}
	m.NumOracles = oracles

	for _, kind := range models.Kinds {
		paths, err := shard.List(filepath.Join(trainDir, kind))
		if err != nil {
			return m, err
		}

		var total int64
		for i, path := range paths {
			n, err := shard.Count(path)
			if err != nil {
				return m, err
			}
			total += int64(n)
			logger.Info().
				Str("category", kind).
				Str("file", filepath.Base(path)).
				Int("index", i+1).
				Int("total", len(paths)).
				Int("records", n).
				Msg("Counted shard")
		}
		m.Set(kind, total)
	}
	return m, nil
}
