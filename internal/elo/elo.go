// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package elo derives the per-oracle rating feature written to elos.json.
//
// For every oracle the raw rating r (or the default when the rating table has
// no usable value) becomes ln(r/base). The vector is then divided by its
// maximum so the largest entry is exactly 1.0.
package elo

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/draftset/internal/jsonstream"
)

// Defaults used when the caller passes zero values.
const (
	DefaultRating = 1200.0
	BaseRating    = 600.0
)

// Params controls the transform.
type Params struct {
	DefaultRating float64
	BaseRating    float64
}

func (p Params) withDefaults() Params {
	if p.DefaultRating <= 0 {
		p.DefaultRating = DefaultRating
	}
	if p.BaseRating <= 0 {
		p.BaseRating = BaseRating
	}
	return p
}

// Vector is the normalized feature vector, indexed by oracle.
type Vector struct {
	Values []float64

	// Max is the largest raw feature before scaling.
	Max float64

	// Defaulted counts oracles that fell back to the default rating.
	Defaulted int

	// Scaled is false when Max was not positive and Values holds raw features.
	Scaled bool
}

// Compute builds the vector for oracles in index order. ratings maps an
// oracle identifier to its raw rating; missing, non-positive, NaN or
// infinite ratings use the default.
func Compute(oracles []string, ratings map[string]float64, params Params) Vector {
	params = params.withDefaults()

	v := Vector{Values: make([]float64, len(oracles))}
	for i, id := range oracles {
		r, ok := ratings[id]
		if !ok || !usable(r) {
			r = params.DefaultRating
			v.Defaulted++
		}
		v.Values[i] = math.Log(r / params.BaseRating)
	}

	if len(v.Values) == 0 {
		return v
	}

	v.Max = floats.Max(v.Values)
	if v.Max <= 0 {
		return v
	}
	// Divide rather than multiply by 1/Max so the maximum lands on exactly 1.0.
	for i := range v.Values {
		v.Values[i] /= v.Max
	}
	v.Scaled = true
	return v
}

func usable(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// WriteJSON writes the values as a flat JSON array.
func (v Vector) WriteJSON(w io.Writer, batchSize int) error {
	if err := jsonstream.WriteFloats(w, v.Values, batchSize); err != nil {
		return fmt.Errorf("write elo vector: %w", err)
	}
	return nil
}
