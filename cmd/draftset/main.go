// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package main is the entry point for the draftset command.
//
// Draftset turns raw card-draft exports (cube lists, deck lists and draft
// picks) into sharded train/test datasets for the rating model trainer.
//
// # Commands
//
//	draftset prepare   # full run: oracle dict, elos, cubes, decks, picks, metadata
//	draftset recount   # rebuild train/metadata.json from existing shards
//	draftset history   # list runs recorded in the run ledger
//	draftset version
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags
//   - Environment variables (DRAFTSET_SOURCE_DIR, DRAFTSET_SHARD_SIZE, ...)
//   - Config file (draftset.yaml, or the path in DRAFTSET_CONFIG or --config)
//   - Built-in defaults
//
// # Example Usage
//
//	draftset prepare --source raw_data --output data --test-fraction 0.1
//
//	DRAFTSET_COMPRESSION=zstd draftset prepare --split-strategy file
//
//	draftset prepare --ledger .draftset/ledger && draftset history --ledger .draftset/ledger
//
// The process exits with status 1 on the first fatal error. There are no
// retries; rerunning over the same source tree reproduces the same output.
package main

import (
	"os"
)

// Set at build time: -ldflags "-X main.version=v1.2.3 -X main.commit=abc1234"
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
