// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package source

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/draftset/internal/models"
)

// ReadOracleMap reads indexToOracleMap.json and returns the oracle
// identifiers in index order.
//
// Keys that are canonical non-negative integers come first in numeric order,
// followed by all other keys in byte order. For the usual "0".."N-1" keyed
// map this is simply the index order.
func ReadOracleMap(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read oracle map: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Path: path, Record: -1, Err: err}
	}
	if raw == nil {
		return nil, &FormatError{Path: path, Record: -1, Err: fmt.Errorf("expected a JSON object, got null")}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	oracles := make([]string, len(keys))
	for i, k := range keys {
		oracles[i] = raw[k]
	}
	return oracles, nil
}

func compareKeys(a, b string) int {
	ai, aok := indexKey(a)
	bi, bok := indexKey(b)
	switch {
	case aok && bok:
		return cmp.Compare(ai, bi)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// indexKey reports whether k is a canonical decimal integer such as "12"
// (no sign, no leading zeros).
func indexKey(k string) (uint64, bool) {
	v, err := strconv.ParseUint(k, 10, 64)
	if err != nil || strconv.FormatUint(v, 10) != k {
		return 0, false
	}
	return v, true
}

// ReadRatings reads the rating table and returns the usable ratings keyed by
// oracle identifier. Entries without an elo value are omitted. An empty path
// means no table is configured and yields an empty map.
func ReadRatings(path string) (map[string]float64, error) {
	if path == "" {
		return map[string]float64{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratings: %w", err)
	}

	var raw map[string]models.SourceRating
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Path: path, Record: -1, Err: err}
	}

	ratings := make(map[string]float64, len(raw))
	for id, r := range raw {
		if r.Elo != nil {
			ratings[id] = *r.Elo
		}
	}
	return ratings, nil
}
