// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package logging provides centralized zerolog-based structured logging for draftset.
//
// Every draftset command logs through one process logger configured by
// Init. Pipeline packages take a component logger once, at construction,
// and the active run ID is stamped on their events by a hook, so no logger
// has to be threaded through the shard, metadata or dataset APIs.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output for batch runs collected by a log shipper
//   - Console output for interactive runs
//   - Run correlation: a run_id field on every event of a dataset run
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     "info",
//	    Format:    "console",
//	    Timestamp: true,
//	})
//
//	ctx, end := logging.BeginRun(ctx)
//	defer end()
//
//	logger := logging.WithComponent("dataset")
//	logger.Info().Str("category", "decks").Msg("Processing category")
//
// # Runs
//
// BeginRun reuses the run ID carried by the context (ContextWithRunID) or
// generates a UUIDv7. The same ID is the key of the run's ledger entry,
// so `draftset history` output can be matched against log lines. Between
// runs, for example during `draftset recount`, events carry no run_id.
//
// # Configuration
//
// Environment variables (mapped by internal/config):
//
//	DRAFTSET_LOG_LEVEL   - trace, debug, info, warn, error, disabled (default: info)
//	DRAFTSET_LOG_FORMAT  - json, console (default: json)
//	DRAFTSET_LOG_CALLER  - include caller file:line (default: false)
//
// The --log-level and --log-format flags override both.
//
// # Output Formats
//
// JSON:
//
//	{"level":"info","component":"dataset","category":"decks","files":12,"run_id":"0192f1c4-...","time":"2026-10-19T10:30:00Z","message":"Processing category"}
//
// Console:
//
//	10:30:00 INF Processing category category=decks component=dataset files=12 run_id=0192f1c4-...
//
// # Volume
//
// The pipeline logs once per source file and once per category at info
// level, and once per shard at debug level. Records dropped by
// normalization are counted, never logged one by one.
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. Init swaps the
// process logger under a sync.RWMutex; the active run is an atomic pointer.
package logging
