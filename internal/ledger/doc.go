// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

/*
Package ledger keeps a history of dataset runs.

Each run stores one RunSummary: its run ID, timings, configuration
fingerprint and per-category counts. Comparing summaries of two runs over the
same source tree is the quickest way to confirm that a rerun reproduced the
same split.

Two stores are provided:

  - BadgerStore persists summaries in a BadgerDB directory (ledger.path)
  - MemoryStore keeps them for the lifetime of the process

Keys are ordered by start time, so List returns the newest runs first
without sorting.
*/
package ledger
