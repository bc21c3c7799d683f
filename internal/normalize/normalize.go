// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package normalize filters and cleans source records before they are written.
//
// Every function is pure. A record that fails a rule is reported with
// ok == false and is simply not emitted; source data carries natural noise
// (incomplete submissions, corrupted picks), so a rejected record is never
// an error.
//
// An index is valid when it lies in [0, numOracles). JSON nulls and any
// other value (the usual -1 "unknown card" marker included) are sentinels
// and are stripped from every emitted list.
package normalize

import (
	"slices"

	"github.com/tomtom215/draftset/internal/models"
)

// Valid reports whether idx is a usable oracle index.
func Valid(idx, numOracles int) bool {
	return idx >= 0 && idx < numOracles
}

// Cube keeps the valid indices of a cube's card list, in order.
// Duplicates are kept. The cube is dropped when nothing valid remains.
func Cube(src models.SourceCube, numOracles int) (models.Cube, bool) {
	if src.Cards == nil {
		return nil, false
	}
	cards := filterIndices(*src.Cards, numOracles, nil)
	if len(cards) == 0 {
		return nil, false
	}
	return models.Cube(cards), true
}

// Deck removes the deck's own basics from both boards.
// The deck is dropped when both boards end up empty.
func Deck(src models.SourceDeck, numOracles int) (models.Deck, bool) {
	basics := make(map[int]struct{}, len(src.Basics))
	for _, b := range src.Basics {
		if b != nil {
			basics[*b] = struct{}{}
		}
	}
	isBasic := func(idx int) bool {
		_, ok := basics[idx]
		return ok
	}

	var deck models.Deck
	if src.Mainboard != nil {
		deck.Mainboard = filterIndices(*src.Mainboard, numOracles, isBasic)
	} else {
		deck.Mainboard = []int{}
	}
	if src.Sideboard != nil {
		deck.Sideboard = filterIndices(*src.Sideboard, numOracles, isBasic)
	} else {
		deck.Sideboard = []int{}
	}

	if len(deck.Mainboard) == 0 && len(deck.Sideboard) == 0 {
		return models.Deck{}, false
	}
	return deck, true
}

// Pick validates one draft decision. It is dropped when the picked card is
// missing or invalid, when fewer than two valid cards remain in the pack, or
// when the picked card is not in the pack. Every copy of the picked card is
// removed from the pool.
func Pick(src models.SourcePick, numOracles int) (models.Pick, bool) {
	if src.Picked == nil || !Valid(*src.Picked, numOracles) || src.Pack == nil {
		return models.Pick{}, false
	}
	picked := *src.Picked

	pack := filterIndices(*src.Pack, numOracles, nil)
	if len(pack) < 2 || !slices.Contains(pack, picked) {
		return models.Pick{}, false
	}

	pool := []int{}
	if src.Pool != nil {
		pool = filterIndices(*src.Pool, numOracles, func(idx int) bool { return idx == picked })
	}

	return models.Pick{Pack: pack, Pool: pool, Pick: picked}, true
}

// filterIndices returns the valid entries of list not rejected by exclude.
// The result is never nil so it serializes as [] rather than null.
func filterIndices(list models.RawIndexList, numOracles int, exclude func(int) bool) []int {
	out := make([]int, 0, len(list))
	for _, p := range list {
		if p == nil || !Valid(*p, numOracles) {
			continue
		}
		if exclude != nil && exclude(*p) {
			continue
		}
		out = append(out, *p)
	}
	return out
}
