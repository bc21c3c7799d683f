// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package jsonstream writes arbitrarily long JSON arrays with bounded memory.
//
// An Encoder emits only the array body: elements separated by commas. The
// caller owns the enclosing brackets, which lets one array span several
// calls (and several producers) while the Encoder keeps separators right.
// Serialized elements accumulate in a batch buffer that is written to the
// destination every BatchSize elements, so at most one batch of encoded
// text is resident regardless of array length.
//
//	f.WriteString("[")
//	enc := jsonstream.NewEncoder(f, jsonstream.DefaultBatchSize)
//	for _, deck := range decks {
//	    if err := enc.Encode(deck); err != nil {
//	        return err
//	    }
//	}
//	if err := enc.Flush(); err != nil {
//	    return err
//	}
//	f.WriteString("]")
//
// WriteArray and WriteInts wrap that sequence for whole slices.
package jsonstream
