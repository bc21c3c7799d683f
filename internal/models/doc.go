// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

/*
Package models defines the record shapes shared by the pipeline stages.

Source shapes (SourceCube, SourceDeck, SourcePick, SourceRating) mirror the
raw input files. Pointer fields distinguish an absent or null key from an
empty list, so readers can reject records missing a required key while
normalizers still see null entries inside a list.

Emitted shapes (Cube, Deck, Pick) are what the shards contain. Every index
in an emitted record lies in [0, numOracles).
*/
package models
