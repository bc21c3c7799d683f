// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

/*
Package source reads the raw input tree of a dataset run.

Expected layout under the source directory:

	indexToOracleMap.json   object: key -> oracle identifier
	cubes.json              array of {"cards": [...]}
	decks/*.json            arrays of {"mainboard", "sideboard", "basics"?}
	picks/*.json            arrays of {"pack", "pool", "picked"}
	<ratings file>          object: oracle identifier -> {"elo"?} (optional)

Every reader returns *FormatError when a file is not valid JSON or a record
lacks a required key. A missing or null required key is a format error; a
bad value inside a present list is not, and is left to the normalizers.

Deck and pick directories are enumerated in file-name order. Downstream
split membership depends on this order.
*/
package source
