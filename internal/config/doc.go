// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

/*
Package config provides configuration loading for draftset runs.

Configuration is layered with Koanf v2 (highest priority wins):
  - Command-line flags (applied by cmd/draftset)
  - Environment variables (DRAFTSET_*)
  - YAML config file (--config, DRAFTSET_CONFIG, or ./draftset.yaml)
  - Built-in defaults

# Example File

	source:
	  dir: raw_data
	  ratings_file: cards.json
	output:
	  dir: data
	  shard_size: 10000
	  batch_size: 10000
	  compression: none
	split:
	  test_fraction: 0.1
	  strategy: prefix
	logging:
	  level: info
	  format: console

# Environment Variables

	DRAFTSET_SOURCE_DIR, DRAFTSET_OUTPUT_DIR
	DRAFTSET_SHARD_SIZE, DRAFTSET_BATCH_SIZE, DRAFTSET_NAME_WIDTH
	DRAFTSET_COMPRESSION            none | zstd
	DRAFTSET_TEST_FRACTION          0 <= p < 1
	DRAFTSET_SPLIT_STRATEGY         prefix | file
	DRAFTSET_DEFAULT_RATING, DRAFTSET_BASE_RATING
	DRAFTSET_LOG_LEVEL, DRAFTSET_LOG_FORMAT, DRAFTSET_LOG_CALLER
	DRAFTSET_METRICS_TEXTFILE, DRAFTSET_LEDGER_PATH

All values are validated with go-playground/validator after loading; an
invalid configuration aborts the run before any output is written.
*/
package config
