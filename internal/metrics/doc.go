// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

/*
Package metrics provides Prometheus instrumentation for dataset runs.

A run is a short-lived batch process, so nothing is served over HTTP.
Instead the default registry is written once at the end of the run to a
node-exporter textfile (metrics.textfile_path), which the textfile collector
picks up on its next scrape:

	draftset prepare --metrics-textfile /var/lib/node_exporter/draftset.prom

# Available Metrics

Source Metrics:
  - draftset_source_files_total: Source files read (counter)
    Labels: category (cubes, decks, picks)
  - draftset_records_read_total: Records decoded (counter)
    Labels: category
  - draftset_records_dropped_total: Records rejected by normalization (counter)
    Labels: category

Output Metrics:
  - draftset_records_written_total: Records written (counter)
    Labels: category, split (train, test)
  - draftset_shards_written_total: Shard files completed (counter)
    Labels: category, split
  - draftset_side_files_written_total: Side files written (counter)
    Labels: file

Correlation Metrics:
  - draftset_correlation_mainboards_total: Mainboards counted (counter)
  - draftset_correlation_pairs_total: Card pairs counted (counter)
  - draftset_oracles: Oracle dictionary size (gauge)
  - draftset_elo_defaulted_oracles: Oracles using the default rating (gauge)

Run Metrics:
  - draftset_category_duration_seconds: Per-category processing time (histogram)
    Labels: category
  - draftset_run_duration_seconds: Last run duration (gauge)
  - draftset_run_errors_total: Aborted runs (counter)
    Labels: error_type (source_format, destination_io, other)
  - draftset_last_success_timestamp_seconds: Last successful run (gauge)

Individual dropped records are never logged; the dropped counter is the only
per-record signal.
*/
package metrics
