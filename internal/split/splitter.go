// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package split routes normalized records to the train or test split.
//
// Routing is deterministic: the same source files in the same order with
// the same fraction always produce the same split. There is no randomness;
// callers wanting an unbiased sample across source files must shuffle the
// files before the run.
//
// Two strategies are available and they are not interchangeable:
//
//   - Prefix: each source file is cut in two. The first
//     floor(len*(1-p)) records go to train, the rest to test.
//   - File: each source file goes entirely to one side. File i (0-based, in
//     processing order) goes to test iff floor((i+1)*p) > floor(i*p), which
//     spreads test files evenly and converges to p.
//
// Either way only the current source file is ever held in memory.
package split

import (
	"fmt"
	"math"
)

// Strategy selects how records are divided.
type Strategy string

// Strategies.
const (
	Prefix Strategy = "prefix"
	File   Strategy = "file"
)

// epsilon absorbs float error in products such as 10*0.7 = 6.999...
const epsilon = 1e-9

// Splitter routes the files of one record category.
// Use a fresh Splitter per category so file numbering starts at zero.
type Splitter struct {
	testFraction float64
	strategy     Strategy
	files        int
}

// New returns a Splitter for test fraction p in [0, 1).
func New(p float64, strategy Strategy) (*Splitter, error) {
	if p < 0 || p >= 1 || math.IsNaN(p) {
		return nil, fmt.Errorf("split: test fraction must be in [0, 1), got %v", p)
	}
	switch strategy {
	case Prefix, File:
	default:
		return nil, fmt.Errorf("split: unknown strategy %q", strategy)
	}
	return &Splitter{testFraction: p, strategy: strategy}, nil
}

// Strategy returns the configured strategy.
func (s *Splitter) Strategy() Strategy {
	return s.strategy
}

// Files returns the number of source files routed so far.
func (s *Splitter) Files() int {
	return s.files
}

// Next consumes the next source file of n records and returns how many of
// its leading records belong to train. The remaining n-k belong to test.
func (s *Splitter) Next(n int) int {
	idx := s.files
	s.files++

	if s.strategy == File {
		if floor(float64(idx+1)*s.testFraction) > floor(float64(idx)*s.testFraction) {
			return 0
		}
		return n
	}
	return int(floor(float64(n) * (1 - s.testFraction)))
}

func floor(v float64) float64 {
	return math.Floor(v + epsilon)
}

// Route splits one source file's records into train and test.
// The returned slices share records' backing array.
func Route[T any](s *Splitter, records []T) (train, test []T) {
	k := s.Next(len(records))
	return records[:k], records[k:]
}
