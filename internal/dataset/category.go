// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package dataset

import (
	"path/filepath"
	"time"

	"github.com/tomtom215/draftset/internal/ledger"
	"github.com/tomtom215/draftset/internal/metrics"
	"github.com/tomtom215/draftset/internal/shard"
	"github.com/tomtom215/draftset/internal/split"
)

// Split names used in paths, logs and metric labels.
const (
	SplitTrain = "train"
	SplitTest  = "test"
)

// category describes one record kind: where its source files are, how they
// decode (S) and how a decoded record becomes an emitted one (R).
type category[S, R any] struct {
	kind      string
	files     []string
	strategy  split.Strategy
	read      func(path string) ([]S, error)
	normalize func(S, int) (R, bool)

	// observe, if set, sees every kept record before the split.
	observe func(R)
}

// runCategory streams every source file of c through normalization and the
// splitter into one train and one test shard writer. Both writers are closed
// on every return path.
func runCategory[S, R any](p *Pipeline, c category[S, R]) error {
	start := time.Now()
	logger := p.logger.With().Str("category", c.kind).Logger()
	splitter, err := split.New(p.cfg.Split.TestFraction, c.strategy)
	if err != nil {
		return err
	}
	logger.Info().
		Int("files", len(c.files)).
		Str("strategy", string(splitter.Strategy())).
		Msg("Processing category")

	train, err := openWriter[R](p, SplitTrain, c.kind)
	if err != nil {
		return err
	}
	defer train.Close()

	test, err := openWriter[R](p, SplitTest, c.kind)
	if err != nil {
		return err
	}
	defer test.Close()

	stats := ledger.CategoryStats{Files: len(c.files)}
	for i, path := range c.files {
		records, err := c.read(path)
		if err != nil {
			return err
		}

		kept := make([]R, 0, len(records))
		for _, src := range records {
			rec, ok := c.normalize(src, p.numOracles)
			if !ok {
				continue
			}
			if c.observe != nil {
				c.observe(rec)
			}
			kept = append(kept, rec)
		}

		toTrain, toTest := split.Route(splitter, kept)
		if err := writeAll(train, toTrain); err != nil {
			return err
		}
		if err := writeAll(test, toTest); err != nil {
			return err
		}

		stats.Read += int64(len(records))
		stats.Kept += int64(len(kept))
		metrics.RecordSourceFile(c.kind, len(records), len(kept))
		metrics.RecordWritten(c.kind, SplitTrain, len(toTrain))
		metrics.RecordWritten(c.kind, SplitTest, len(toTest))

		logger.Info().
			Str("file", filepath.Base(path)).
			Int("index", i+1).
			Int("total", len(c.files)).
			Int("read", len(records)).
			Int("kept", len(kept)).
			Int("train", len(toTrain)).
			Int("test", len(toTest)).
			Msg("Processed source file")
	}

	if err := train.Close(); err != nil {
		return destination(err)
	}
	if err := test.Close(); err != nil {
		return destination(err)
	}

	stats.Train = train.Total()
	stats.Test = test.Total()
	stats.TrainShards = len(train.Paths())
	stats.TestShards = len(test.Paths())
	stats.Duration = time.Since(start)

	metrics.RecordShards(c.kind, SplitTrain, stats.TrainShards)
	metrics.RecordShards(c.kind, SplitTest, stats.TestShards)
	metrics.RecordCategory(c.kind, stats.Duration)

	p.summary.Categories[c.kind] = stats
	p.meta.Set(c.kind, stats.Train)

	logger.Info().
		Int64("read", stats.Read).
		Int64("kept", stats.Kept).
		Int64("train", stats.Train).
		Int64("test", stats.Test).
		Int("train_shards", stats.TrainShards).
		Int("test_shards", stats.TestShards).
		Dur("duration", stats.Duration).
		Msg("Category complete")
	return nil
}

// openWriter removes shards left by an earlier run and returns a writer for
// <output>/<split>/<kind>.
func openWriter[R any](p *Pipeline, splitName, kind string) (*shard.Writer[R], error) {
	dir := filepath.Join(p.cfg.Output.Dir, splitName, kind)

	removed, err := shard.Clean(dir)
	if err != nil {
		return nil, destination(err)
	}
	if removed > 0 {
		p.logger.Debug().Str("dir", dir).Int("removed", removed).Msg("Removed stale shards")
	}

	w, err := shard.NewWriter[R](dir, shard.Options{
		MaxRecords:  p.cfg.Output.ShardSize,
		BatchSize:   p.cfg.Output.BatchSize,
		NameWidth:   p.cfg.Output.NameWidth,
		Compression: p.cfg.Output.Compression,
	})
	if err != nil {
		return nil, destination(err)
	}
	return w, nil
}

func writeAll[R any](w *shard.Writer[R], records []R) error {
	for i := range records {
		if err := w.Write(records[i]); err != nil {
			return destination(err)
		}
	}
	return nil
}
