// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package jsonstream

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
)

// DefaultBatchSize is the number of elements buffered before a write.
const DefaultBatchSize = 10000

// Encoder writes JSON array elements to an io.Writer in batches.
// It is not safe for concurrent use.
type Encoder struct {
	w         io.Writer
	batchSize int

	buf     bytes.Buffer
	pending int
	count   int64
}

// NewEncoder returns an Encoder writing to w. A batchSize below 1 uses
// DefaultBatchSize.
func NewEncoder(w io.Writer, batchSize int) *Encoder {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Encoder{w: w, batchSize: batchSize}
}

// Count returns the number of elements encoded so far, flushed or not.
func (e *Encoder) Count() int64 {
	return e.count
}

// Encode appends v as the next array element. Strings are written without
// HTML escaping so identifiers keep their source bytes.
func (e *Encoder) Encode(v any) error {
	b, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("encode element %d: %w", e.count, err)
	}
	e.separate()
	e.buf.Write(b)
	return e.advance()
}

// EncodeInt appends an integer element without going through reflection.
func (e *Encoder) EncodeInt(v int64) error {
	e.separate()
	e.buf.Write(strconv.AppendInt(e.buf.AvailableBuffer(), v, 10))
	return e.advance()
}

// EncodeFloat appends a float element using the shortest representation
// that round-trips.
func (e *Encoder) EncodeFloat(v float64) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode element %d: %w", e.count, err)
	}
	e.separate()
	e.buf.Write(b)
	return e.advance()
}

// Flush writes any buffered elements to the destination.
func (e *Encoder) Flush() error {
	if e.buf.Len() == 0 {
		return nil
	}
	if _, err := e.w.Write(e.buf.Bytes()); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	e.buf.Reset()
	e.pending = 0
	return nil
}

func (e *Encoder) separate() {
	if e.count > 0 {
		e.buf.WriteByte(',')
	}
}

func (e *Encoder) advance() error {
	e.count++
	e.pending++
	if e.pending >= e.batchSize {
		return e.Flush()
	}
	return nil
}

// EncodeSeq encodes every element of seq, stopping at the first error.
// The sequence is consumed lazily; nothing beyond the current batch is held.
func EncodeSeq[T any](e *Encoder, seq iter.Seq[T]) error {
	for v := range seq {
		if err := e.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// WriteArray writes records to w as one complete JSON array.
func WriteArray[T any](w io.Writer, records []T, batchSize int) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return fmt.Errorf("write array open: %w", err)
	}
	enc := NewEncoder(w, batchSize)
	if err := EncodeSeq(enc, slices.Values(records)); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "]"); err != nil {
		return fmt.Errorf("write array close: %w", err)
	}
	return nil
}

// Integer is the set of counter element types WriteInts accepts.
type Integer interface {
	~int | ~int32 | ~int64
}

// WriteInts writes a flat integer slice as one complete JSON array.
func WriteInts[T Integer](w io.Writer, values []T, batchSize int) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return fmt.Errorf("write array open: %w", err)
	}
	enc := NewEncoder(w, batchSize)
	for _, v := range values {
		if err := enc.EncodeInt(int64(v)); err != nil {
			return err
		}
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "]"); err != nil {
		return fmt.Errorf("write array close: %w", err)
	}
	return nil
}

// WriteFloats writes a flat float slice as one complete JSON array.
func WriteFloats(w io.Writer, values []float64, batchSize int) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return fmt.Errorf("write array open: %w", err)
	}
	enc := NewEncoder(w, batchSize)
	for _, v := range values {
		if err := enc.EncodeFloat(v); err != nil {
			return err
		}
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "]"); err != nil {
		return fmt.Errorf("write array close: %w", err)
	}
	return nil
}
