// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package ledger

import (
	"context"
	"time"
)

// CategoryStats holds the counts for one record category of a run.
type CategoryStats struct {
	Files       int           `json:"files"`
	Read        int64         `json:"read"`
	Kept        int64         `json:"kept"`
	Train       int64         `json:"train"`
	Test        int64         `json:"test"`
	TrainShards int           `json:"train_shards"`
	TestShards  int           `json:"test_shards"`
	Duration    time.Duration `json:"duration_ns"`
}

// RunSummary is the ledger record of one run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	SourceDir     string  `json:"source_dir"`
	OutputDir     string  `json:"output_dir"`
	TestFraction  float64 `json:"test_fraction"`
	SplitStrategy string  `json:"split_strategy"`
	ShardSize     int     `json:"shard_size"`
	Compression   string  `json:"compression"`

	NumOracles int                      `json:"num_oracles"`
	Categories map[string]CategoryStats `json:"categories"`

	// Error is set when the run aborted.
	Error string `json:"error,omitempty"`
}

// Duration returns how long the run took.
func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Succeeded reports whether the run completed.
func (s *RunSummary) Succeeded() bool {
	return s.Error == ""
}

// Store persists run summaries.
type Store interface {
	// Save records a summary. Saving the same run twice overwrites it.
	Save(ctx context.Context, s *RunSummary) error

	// Last returns the most recent summary, or nil, nil if there is none.
	Last(ctx context.Context) (*RunSummary, error)

	// List returns up to limit summaries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*RunSummary, error)
}
