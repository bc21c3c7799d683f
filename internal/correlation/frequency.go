// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package correlation

import (
	"io"

	"github.com/tomtom215/draftset/internal/jsonstream"
)

// Frequency counts how many times each oracle appears across cube lists.
// Unlike Matrix, repeated cards in one list are each counted.
type Frequency struct {
	counts []int64
}

// NewFrequency returns a zeroed counter for numOracles oracles.
func NewFrequency(numOracles int) *Frequency {
	return &Frequency{counts: make([]int64, max(numOracles, 0))}
}

// AddCube counts every in-range card of one cube.
func (f *Frequency) AddCube(cards []int) {
	for _, c := range cards {
		if c >= 0 && c < len(f.counts) {
			f.counts[c]++
		}
	}
}

// Counts returns the backing slice.
func (f *Frequency) Counts() []int64 {
	return f.counts
}

// WriteJSON streams the counts as a flat JSON array.
func (f *Frequency) WriteJSON(w io.Writer, batchSize int) error {
	return jsonstream.WriteInts(w, f.counts, batchSize)
}
