// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

/*
Package dataset drives one dataset preparation run.

A Pipeline is the run context: it owns the configuration, the oracle count,
the correlation matrix and the counters of the run, and is discarded when Run
returns. Processing is strictly sequential:

 1. oracleDict.json: the index to identifier table, written to both splits
 2. elos.json: the normalized rating vector, written to both splits
 3. cubes: cubes.json, normalized, split, sharded; oracleFrequency.json
 4. decks: decks/*.json in name order; every kept mainboard also feeds the
    correlation matrix, written once as correlations.json. Decks routed to
    test are counted too, so held-out co-occurrences reach a train feature.
 5. picks: picks/*.json in name order
 6. metadata.json with the training split counts

Output layout:

	<output>/train/oracleDict.json
	<output>/train/elos.json
	<output>/train/correlations.json
	<output>/train/oracleFrequency.json
	<output>/train/metadata.json
	<output>/train/{cubes,decks,picks}/0000.json ...
	<output>/test/oracleDict.json
	<output>/test/elos.json
	<output>/test/{cubes,decks,picks}/0000.json ...

Only one source file is held in memory at a time. Records that fail
normalization are dropped and counted; they are never errors. A malformed
source file (*source.FormatError) or a failed write (*DestinationError)
aborts the run. Every file handle is closed on the way out, including on
error paths.

Reruns over the same source tree produce byte-identical output. Shards left
over from an earlier run are removed before a category is written, and
oracleFrequency.json is removed when it is disabled.
*/
package dataset
