// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package config

import (
	"fmt"
	"path/filepath"

	"github.com/tomtom215/draftset/internal/validation"
)

// Split strategies.
const (
	// SplitPrefix sends the first floor(len*(1-p)) records of every source
	// file to train and the remainder to test.
	SplitPrefix = "prefix"

	// SplitFile routes whole source files to one side.
	SplitFile = "file"
)

// Shard compression modes.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// Config holds all configuration for a dataset preparation run.
type Config struct {
	Source  SourceConfig  `koanf:"source"`
	Output  OutputConfig  `koanf:"output"`
	Split   SplitConfig   `koanf:"split"`
	Elo     EloConfig     `koanf:"elo"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
	Ledger  LedgerConfig  `koanf:"ledger"`
}

// SourceConfig locates the raw input tree.
// File and directory names are relative to Dir unless absolute.
type SourceConfig struct {
	// Dir is the root of the raw input tree.
	Dir string `koanf:"dir" validate:"required"`

	// OracleMapFile maps string keys to oracle identifiers.
	OracleMapFile string `koanf:"oracle_map_file" validate:"required"`

	// CubesFile is a single array of {cards: [...]}.
	CubesFile string `koanf:"cubes_file" validate:"required"`

	// DecksDir holds files each containing an array of decks.
	DecksDir string `koanf:"decks_dir" validate:"required"`

	// PicksDir holds files each containing an array of picks.
	PicksDir string `koanf:"picks_dir" validate:"required"`

	// RatingsFile maps oracle identifiers to {elo}. Empty means every
	// oracle gets the default rating.
	RatingsFile string `koanf:"ratings_file"`
}

// OracleMapPath returns the resolved oracle map location.
func (s *SourceConfig) OracleMapPath() string { return s.resolve(s.OracleMapFile) }

// CubesPath returns the resolved cubes file location.
func (s *SourceConfig) CubesPath() string { return s.resolve(s.CubesFile) }

// DecksPath returns the resolved deck directory.
func (s *SourceConfig) DecksPath() string { return s.resolve(s.DecksDir) }

// PicksPath returns the resolved pick directory.
func (s *SourceConfig) PicksPath() string { return s.resolve(s.PicksDir) }

// RatingsPath returns the resolved ratings file, or "" when none is configured.
func (s *SourceConfig) RatingsPath() string {
	if s.RatingsFile == "" {
		return ""
	}
	return s.resolve(s.RatingsFile)
}

func (s *SourceConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// OutputConfig controls shard production.
type OutputConfig struct {
	// Dir receives the train/ and test/ trees.
	Dir string `koanf:"dir" validate:"required"`

	// ShardSize is the maximum number of records per shard file.
	ShardSize int `koanf:"shard_size" validate:"gte=1"`

	// BatchSize is the number of records serialized before a write.
	// Peak serialization memory is O(BatchSize * record size).
	BatchSize int `koanf:"batch_size" validate:"gte=1"`

	// NameWidth is the zero-padded width of shard file names.
	NameWidth int `koanf:"name_width" validate:"gte=1,lte=12"`

	// Compression is none or zstd.
	Compression string `koanf:"compression" validate:"oneof=none zstd"`

	// OracleFrequency enables train/oracleFrequency.json.
	OracleFrequency bool `koanf:"oracle_frequency"`
}

// TrainDir returns the training split root.
func (o *OutputConfig) TrainDir() string { return filepath.Join(o.Dir, "train") }

// TestDir returns the held-out split root.
func (o *OutputConfig) TestDir() string { return filepath.Join(o.Dir, "test") }

// SplitConfig controls train/test routing.
type SplitConfig struct {
	// TestFraction is the held-out fraction p in [0, 1).
	TestFraction float64 `koanf:"test_fraction" validate:"gte=0,lt=1"`

	// Strategy is prefix or file.
	Strategy string `koanf:"strategy" validate:"oneof=prefix file"`
}

// EloConfig controls the rating feature.
type EloConfig struct {
	// DefaultRating is used for oracles without a positive rating.
	DefaultRating float64 `koanf:"default_rating" validate:"gt=0"`

	// BaseRating is the divisor inside the log: ln(rating/BaseRating).
	BaseRating float64 `koanf:"base_rating" validate:"gt=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// TextfilePath receives the run's metrics in text exposition format
	// (node_exporter textfile collector). Empty disables the export.
	TextfilePath string `koanf:"textfile_path"`
}

// LedgerConfig controls the optional BadgerDB run ledger.
type LedgerConfig struct {
	// Path is the BadgerDB directory. Empty disables the ledger.
	Path string `koanf:"path"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
