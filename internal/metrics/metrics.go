// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Batch run instrumentation. All series are registered on the default
// registry and exported once per run through WriteTextfile.

var (
	// Source Metrics
	SourceFilesRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_source_files_total",
			Help: "Total number of source files read",
		},
		[]string{"category"},
	)

	RecordsRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_records_read_total",
			Help: "Total number of source records decoded",
		},
		[]string{"category"},
	)

	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_records_dropped_total",
			Help: "Total number of source records rejected by normalization",
		},
		[]string{"category"},
	)

	// Output Metrics
	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_records_written_total",
			Help: "Total number of records written to shards",
		},
		[]string{"category", "split"}, // split: "train", "test"
	)

	ShardsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_shards_written_total",
			Help: "Total number of shard files completed",
		},
		[]string{"category", "split"},
	)

	SideFilesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_side_files_written_total",
			Help: "Total number of side files written (oracleDict, elos, correlations, ...)",
		},
		[]string{"file"},
	)

	// Correlation Metrics
	CorrelationMainboards = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "draftset_correlation_mainboards_total",
			Help: "Total number of mainboards folded into the correlation matrix",
		},
	)

	CorrelationPairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "draftset_correlation_pairs_total",
			Help: "Total number of distinct card pairs counted across mainboards",
		},
	)

	Oracles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "draftset_oracles",
			Help: "Number of oracles in the dictionary of the last run",
		},
	)

	EloDefaulted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "draftset_elo_defaulted_oracles",
			Help: "Number of oracles that fell back to the default rating",
		},
	)

	// Run Metrics
	CategoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "draftset_category_duration_seconds",
			Help:    "Time spent processing one source category",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 1800},
		},
		[]string{"category"},
	)

	RunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "draftset_run_duration_seconds",
			Help: "Wall-clock duration of the last run",
		},
	)

	RunErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftset_run_errors_total",
			Help: "Total number of aborted runs",
		},
		[]string{"error_type"}, // "source_format", "destination_io", "other"
	)

	RunLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "draftset_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful run",
		},
	)
)

// RecordSourceFile records one decoded source file and what normalization kept.
func RecordSourceFile(category string, read, kept int) {
	SourceFilesRead.WithLabelValues(category).Inc()
	RecordsRead.WithLabelValues(category).Add(float64(read))
	if dropped := read - kept; dropped > 0 {
		RecordsDropped.WithLabelValues(category).Add(float64(dropped))
	}
}

// RecordWritten records records routed to one split.
func RecordWritten(category, split string, count int) {
	RecordsWritten.WithLabelValues(category, split).Add(float64(count))
}

// RecordShards records completed shard files for one split.
func RecordShards(category, split string, count int) {
	ShardsWritten.WithLabelValues(category, split).Add(float64(count))
}

// RecordSideFile records one written side file.
func RecordSideFile(name string) {
	SideFilesWritten.WithLabelValues(name).Inc()
}

// RecordCorrelation records totals from a finished matrix.
func RecordCorrelation(mainboards, pairs int64) {
	CorrelationMainboards.Add(float64(mainboards))
	CorrelationPairs.Add(float64(pairs))
}

// RecordCategory records the processing time of one category.
func RecordCategory(category string, duration time.Duration) {
	CategoryDuration.WithLabelValues(category).Observe(duration.Seconds())
}

// RecordRun records the outcome of a whole run. errorType is ignored when
// err is nil.
func RecordRun(duration time.Duration, errorType string, err error) {
	RunDuration.Set(duration.Seconds())
	if err != nil {
		if errorType == "" {
			errorType = "other"
		}
		RunErrors.WithLabelValues(errorType).Inc()
		return
	}
	RunLastSuccess.Set(float64(time.Now().Unix()))
}

// WriteTextfile exports the default registry in the node-exporter textfile
// format. An empty path is a no-op.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(path, prometheus.DefaultGatherer)
}

// WriteTextfileFrom exports g to path. An empty path is a no-op.
func WriteTextfileFrom(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
