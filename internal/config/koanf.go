// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"draftset.yaml",
	"draftset.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "DRAFTSET_CONFIG"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:           "raw_data",
			OracleMapFile: "indexToOracleMap.json",
			CubesFile:     "cubes.json",
			DecksDir:      "decks",
			PicksDir:      "picks",
			RatingsFile:   "",
		},
		Output: OutputConfig{
			Dir:             "data",
			ShardSize:       10000,
			BatchSize:       10000,
			NameWidth:       4,
			Compression:     CompressionNone,
			OracleFrequency: true,
		},
		Split: SplitConfig{
			TestFraction: 0.1,
			Strategy:     SplitPrefix,
		},
		Elo: EloConfig{
			DefaultRating: 1200,
			BaseRating:    600,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without consulting files or
// the environment.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (explicit path, DRAFTSET_CONFIG, or DefaultConfigPaths)
//  3. Environment Variables: Override any setting
//
// Command-line flags are applied on top by the caller, which must call
// Validate again afterwards.
func LoadWithKoanf(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// DRAFTSET_SHARD_SIZE -> output.shard_size
	if err := k.Load(env.Provider("DRAFTSET_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile resolves the config file to load.
// An explicit path must exist; otherwise the environment variable and the
// default paths are consulted and a missing file is not an error.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"draftset_source_dir":      "source.dir",
	"draftset_oracle_map_file": "source.oracle_map_file",
	"draftset_cubes_file":      "source.cubes_file",
	"draftset_decks_dir":       "source.decks_dir",
	"draftset_picks_dir":       "source.picks_dir",
	"draftset_ratings_file":    "source.ratings_file",

	"draftset_output_dir":       "output.dir",
	"draftset_shard_size":       "output.shard_size",
	"draftset_batch_size":       "output.batch_size",
	"draftset_name_width":       "output.name_width",
	"draftset_compression":      "output.compression",
	"draftset_oracle_frequency": "output.oracle_frequency",

	"draftset_test_fraction":  "split.test_fraction",
	"draftset_split_strategy": "split.strategy",

	"draftset_default_rating": "elo.default_rating",
	"draftset_base_rating":    "elo.base_rating",

	"draftset_log_level":  "logging.level",
	"draftset_log_format": "logging.format",
	"draftset_log_caller": "logging.caller",

	"draftset_metrics_textfile": "metrics.textfile_path",
	"draftset_ledger_path":      "ledger.path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" and are skipped, so stray DRAFTSET_* variables
// cannot pollute the configuration.
//
// Examples:
//   - DRAFTSET_SHARD_SIZE -> output.shard_size
//   - DRAFTSET_TEST_FRACTION -> split.test_fraction
//   - DRAFTSET_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
