// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package correlation builds the card co-occurrence matrix over deck mainboards.
//
// The matrix is dense, symmetric and row-major:
//
//	cells[i*N+j] == cells[j*N+i] == number of mainboards containing both i and j
//
// The diagonal is never incremented. Counters are int32; a single pair
// appearing together in more than 2^31-1 mainboards overflows and is not
// detected. Building is O(sum of mainboard size squared), which dominates
// the run for realistic inputs.
//
// Frequency is the companion per-oracle counter over cube lists.
package correlation

import (
	"fmt"
	"io"
	"slices"

	"github.com/tomtom215/draftset/internal/jsonstream"
)

// Matrix accumulates co-occurrence counts for N oracles.
// It is owned by a single goroutine for its whole life.
type Matrix struct {
	n     int
	cells []int32

	mainboards int64
	pairs      int64
}

// New allocates an N x N zero matrix.
func New(numOracles int) *Matrix {
	if numOracles < 0 {
		numOracles = 0
	}
	return &Matrix{
		n:     numOracles,
		cells: make([]int32, numOracles*numOracles),
	}
}

// AddMainboard counts every unordered pair of distinct cards in one mainboard.
// Repeated copies of a card count once, and indices outside [0, N) are ignored.
func (m *Matrix) AddMainboard(mainboard []int) {
	cards := make([]int, 0, len(mainboard))
	for _, c := range mainboard {
		if c >= 0 && c < m.n {
			cards = append(cards, c)
		}
	}
	slices.Sort(cards)
	cards = slices.Compact(cards)

	m.mainboards++
	for a := 0; a < len(cards); a++ {
		rowA := cards[a] * m.n
		for b := a + 1; b < len(cards); b++ {
			m.cells[rowA+cards[b]]++
			m.cells[cards[b]*m.n+cards[a]]++
			m.pairs++
		}
	}
}

// N returns the matrix dimension.
func (m *Matrix) N() int {
	return m.n
}

// At returns the count for the pair (i, j).
func (m *Matrix) At(i, j int) int32 {
	return m.cells[i*m.n+j]
}

// Cells exposes the flat row-major counters.
func (m *Matrix) Cells() []int32 {
	return m.cells
}

// Mainboards returns the number of mainboards observed.
func (m *Matrix) Mainboards() int64 {
	return m.mainboards
}

// Pairs returns the number of unordered pair increments performed.
func (m *Matrix) Pairs() int64 {
	return m.pairs
}

// WriteJSON serializes the matrix as one flat JSON array of N*N integers,
// batchSize counters at a time.
func (m *Matrix) WriteJSON(w io.Writer, batchSize int) error {
	if err := jsonstream.WriteInts(w, m.cells, batchSize); err != nil {
		return fmt.Errorf("write correlations: %w", err)
	}
	return nil
}
