// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package models

// Record kinds. Each kind gets its own shard directory under train/ and test/.
const (
	KindCubes = "cubes"
	KindDecks = "decks"
	KindPicks = "picks"
)

// Kinds lists the record kinds in processing order.
var Kinds = []string{KindCubes, KindDecks, KindPicks}

// RawIndexList is a card list as found in source files.
// JSON null entries decode as nil and are treated as sentinels.
type RawIndexList []*int

// SourceCube is one element of cubes.json.
// A nil Cards pointer means the key was absent or null.
type SourceCube struct {
	Cards *RawIndexList `json:"cards"`
}

// SourceDeck is one element of a decks/*.json file.
type SourceDeck struct {
	Mainboard *RawIndexList `json:"mainboard"`
	Sideboard *RawIndexList `json:"sideboard"`
	Basics    RawIndexList  `json:"basics,omitempty"`
}

// SourcePick is one element of a picks/*.json file.
type SourcePick struct {
	Pack   *RawIndexList `json:"pack"`
	Pool   *RawIndexList `json:"pool"`
	Picked *int          `json:"picked"`
}

// SourceRating is one value of the per-oracle rating table.
type SourceRating struct {
	Elo *float64 `json:"elo,omitempty"`
}

// Cube is an emitted cube record: the oracle indices of one cube's pool.
// Serialized as a bare JSON array.
type Cube []int

// Deck is an emitted deck record with basics removed.
type Deck struct {
	Mainboard []int `json:"mainboard"`
	Sideboard []int `json:"sideboard"`
}

// Pick is an emitted draft decision. Pick is always a member of Pack and
// never a member of Pool.
type Pick struct {
	Pack []int `json:"pack"`
	Pool []int `json:"pool"`
	Pick int   `json:"pick"`
}
