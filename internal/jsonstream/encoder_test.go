// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package jsonstream

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

type deck struct {
	Mainboard []int `json:"mainboard"`
	Sideboard []int `json:"sideboard"`
}

// recordingWriter captures each Write call separately.
type recordingWriter struct {
	writes []string
	err    error
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func (w *recordingWriter) String() string {
	return strings.Join(w.writes, "")
}

func TestWriteArray(t *testing.T) {
	tests := []struct {
		name      string
		records   []deck
		batchSize int
		want      string
	}{
		{
			name:      "empty sequence",
			records:   nil,
			batchSize: 2,
			want:      "[]",
		},
		{
			name:      "single record",
			records:   []deck{{Mainboard: []int{1}, Sideboard: []int{}}},
			batchSize: 2,
			want:      `[{"mainboard":[1],"sideboard":[]}]`,
		},
		{
			name: "exact multiple of batch size",
			records: []deck{
				{Mainboard: []int{1}, Sideboard: []int{}},
				{Mainboard: []int{2}, Sideboard: []int{3}},
			},
			batchSize: 1,
			want:      `[{"mainboard":[1],"sideboard":[]},{"mainboard":[2],"sideboard":[3]}]`,
		},
		{
			name: "partial final batch",
			records: []deck{
				{Mainboard: []int{1}, Sideboard: []int{}},
				{Mainboard: []int{2}, Sideboard: []int{}},
				{Mainboard: []int{3}, Sideboard: []int{}},
			},
			batchSize: 2,
			want:      `[{"mainboard":[1],"sideboard":[]},{"mainboard":[2],"sideboard":[]},{"mainboard":[3],"sideboard":[]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteArray(&buf, tt.records, tt.batchSize); err != nil {
				t.Fatalf("WriteArray() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteArray() = %s, want %s", got, tt.want)
			}

			var decoded []deck
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if len(decoded) != len(tt.records) {
				t.Errorf("decoded %d records, want %d", len(decoded), len(tt.records))
			}
		})
	}
}

func TestEncoderBatchesWrites(t *testing.T) {
	w := &recordingWriter{}
	enc := NewEncoder(w, 3)

	for i := 0; i < 7; i++ {
		if err := enc.EncodeInt(int64(i)); err != nil {
			t.Fatalf("EncodeInt(%d) error = %v", i, err)
		}
	}

	// Two full batches written, one element pending.
	if len(w.writes) != 2 {
		t.Fatalf("expected 2 writes before flush, got %d: %q", len(w.writes), w.writes)
	}

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	wantWrites := []string{"0,1,2", ",3,4,5", ",6"}
	if !slices.Equal(w.writes, wantWrites) {
		t.Errorf("writes = %q, want %q", w.writes, wantWrites)
	}
	if enc.Count() != 7 {
		t.Errorf("Count() = %d, want 7", enc.Count())
	}
}

func TestEncoderFlushEmptyIsNoop(t *testing.T) {
	w := &recordingWriter{}
	enc := NewEncoder(w, 10)

	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(w.writes) != 0 {
		t.Errorf("expected no writes, got %q", w.writes)
	}
}

func TestEncoderBodySpansCallers(t *testing.T) {
	// Two producers share one array body; separators stay correct.
	w := &recordingWriter{}
	enc := NewEncoder(w, 100)

	if err := EncodeSeq(enc, slices.Values([]string{"a", "b"})); err != nil {
		t.Fatalf("EncodeSeq() error = %v", err)
	}
	if err := EncodeSeq(enc, slices.Values([]string{"c"})); err != nil {
		t.Fatalf("EncodeSeq() error = %v", err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := w.String(); got != `"a","b","c"` {
		t.Errorf("body = %s, want \"a\",\"b\",\"c\"", got)
	}
}

func TestEncoderDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArray(&buf, []string{"<b>&", "Fire // Ice"}, 10); err != nil {
		t.Fatalf("WriteArray() error = %v", err)
	}
	if got := buf.String(); got != `["<b>&","Fire // Ice"]` {
		t.Errorf("WriteArray() = %s", got)
	}

	type named struct {
		Name string `json:"name"`
	}
	buf.Reset()
	enc := NewEncoder(&buf, 10)
	if err := enc.Encode(named{Name: "R&D's <Secret>"}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf.String(); got != `{"name":"R&D's <Secret>"}` {
		t.Errorf("Encode() = %s", got)
	}
}

func TestEncoderStringsWithBrackets(t *testing.T) {
	var buf bytes.Buffer
	in := []string{"[", "]", "],["}
	if err := WriteArray(&buf, in, 1); err != nil {
		t.Fatalf("WriteArray() error = %v", err)
	}

	var out []string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %s: %v", buf.String(), err)
	}
	if !slices.Equal(in, out) {
		t.Errorf("round trip = %q, want %q", out, in)
	}
}

func TestWriteInts(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInts(&buf, []int32{0, -1, 2147483647}, 2); err != nil {
		t.Fatalf("WriteInts() error = %v", err)
	}
	if got := buf.String(); got != "[0,-1,2147483647]" {
		t.Errorf("WriteInts() = %s", got)
	}
}

func TestWriteFloats(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFloats(&buf, []float64{1, 0.5}, 1); err != nil {
		t.Fatalf("WriteFloats() error = %v", err)
	}
	if got := buf.String(); got != "[1,0.5]" {
		t.Errorf("WriteFloats() = %s", got)
	}
}

func TestEncoderWriteError(t *testing.T) {
	boom := errors.New("disk full")
	enc := NewEncoder(&recordingWriter{err: boom}, 1)

	err := enc.EncodeInt(1)
	if !errors.Is(err, boom) {
		t.Errorf("EncodeInt() error = %v, want wrapped %v", err, boom)
	}
}

func TestNewEncoderDefaultBatchSize(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{}, 0)
	if enc.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want %d", enc.batchSize, DefaultBatchSize)
	}
}
