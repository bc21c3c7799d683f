// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package shard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/tomtom215/draftset/internal/jsonstream"
	"github.com/tomtom215/draftset/internal/logging"
)

// Compression modes.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// ErrClosed is returned by Write after Close or after a failed write.
var ErrClosed = errors.New("shard writer closed")

// IOError reports a failed shard file operation.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("shard %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Options configures a Writer.
type Options struct {
	// MaxRecords is the maximum number of records per shard.
	MaxRecords int

	// BatchSize is passed to the jsonstream.Encoder of each shard.
	BatchSize int

	// NameWidth is the zero-padded width of shard names. Default 4.
	NameWidth int

	// Compression is CompressionNone or CompressionZstd.
	Compression string
}

// Name returns the file name of shard index under opts.
func (o Options) Name(index int) string {
	width := o.NameWidth
	if width < 1 {
		width = 4
	}
	name := fmt.Sprintf("%0*d.json", width, index)
	if o.Compression == CompressionZstd {
		name += ".zst"
	}
	return name
}

// Writer produces the shard files for one (split, kind) pair.
type Writer[T any] struct {
	dir    string
	opts   Options
	logger zerolog.Logger

	index   int
	inShard int
	total   int64
	paths   []string

	file *os.File
	zw   *zstd.Encoder
	enc  *jsonstream.Encoder
	path string

	closed bool
}

// NewWriter creates dir if needed and returns a Writer that shards into it.
// No shard file is created until the first Write.
func NewWriter[T any](dir string, opts Options) (*Writer[T], error) {
	if opts.MaxRecords < 1 {
		return nil, fmt.Errorf("shard: max records must be at least 1, got %d", opts.MaxRecords)
	}
	if opts.Compression == "" {
		opts.Compression = CompressionNone
	}
	if opts.Compression != CompressionNone && opts.Compression != CompressionZstd {
		return nil, fmt.Errorf("shard: unknown compression %q", opts.Compression)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Path: dir, Op: "mkdir", Err: err}
	}

	return &Writer[T]{
		dir:    dir,
		opts:   opts,
		logger: logging.WithComponent("shard").With().Str("dir", dir).Logger(),
	}, nil
}

// Write appends rec to the current shard, opening one if necessary.
func (w *Writer[T]) Write(rec T) error {
	if w.closed {
		return ErrClosed
	}
	if w.file == nil {
		if err := w.open(); err != nil {
			w.closed = true
			return err
		}
	}

	if err := w.enc.Encode(rec); err != nil {
		w.fail()
		return &IOError{Path: w.path, Op: "write", Err: err}
	}
	w.inShard++
	w.total++

	if w.inShard == w.opts.MaxRecords {
		return w.closeShard()
	}
	return nil
}

// Close finalizes the open shard, if any. It is idempotent.
func (w *Writer[T]) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.file == nil {
		return nil
	}
	return w.closeShard()
}

// Total returns the number of records written across all shards.
func (w *Writer[T]) Total() int64 {
	return w.total
}

// Paths returns the completed shard files in index order.
func (w *Writer[T]) Paths() []string {
	return w.paths
}

func (w *Writer[T]) open() error {
	path := filepath.Join(w.dir, w.opts.Name(w.index))
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Op: "create", Err: err}
	}

	var out io.Writer = f
	if w.opts.Compression == CompressionZstd {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return &IOError{Path: path, Op: "create", Err: err}
		}
		w.zw = zw
		out = zw
	}

	w.file = f
	w.path = path
	if _, err := io.WriteString(out, "["); err != nil {
		w.fail()
		return &IOError{Path: path, Op: "write", Err: err}
	}
	w.enc = jsonstream.NewEncoder(out, w.opts.BatchSize)
	return nil
}

func (w *Writer[T]) closeShard() error {
	path := w.path
	records := w.inShard

	err := w.enc.Flush()
	if err == nil {
		var out io.Writer = w.file
		if w.zw != nil {
			out = w.zw
		}
		_, err = io.WriteString(out, "]")
	}
	if err == nil && w.zw != nil {
		err = w.zw.Close()
	}
	if closeErr := w.file.Close(); err == nil {
		err = closeErr
	}
	w.release()

	if err != nil {
		w.closed = true
		return &IOError{Path: path, Op: "close", Err: err}
	}

	w.paths = append(w.paths, path)
	w.index++
	w.inShard = 0
	w.logger.Debug().Str("shard", filepath.Base(path)).Int("records", records).Msg("Shard closed")
	return nil
}

// fail releases the open file after a write error.
func (w *Writer[T]) fail() {
	if w.zw != nil {
		_ = w.zw.Close()
	}
	if w.file != nil {
		_ = w.file.Close()
	}
	w.release()
	w.closed = true
}

func (w *Writer[T]) release() {
	w.file = nil
	w.zw = nil
	w.enc = nil
	w.path = ""
}
