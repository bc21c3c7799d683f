// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package shard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

var shardNamePattern = regexp.MustCompile(`^[0-9]+\.json(\.zst)?$`)

// List returns the shard files in dir in name order.
// A missing directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list shards in %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !shardNamePattern.MatchString(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Open opens a shard for reading, decompressing .zst shards transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shard %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open shard %s: %w", path, err)
	}
	return &zstdReadCloser{Decoder: zr, file: f}, nil
}

type zstdReadCloser struct {
	*zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}

// ReadAll decodes every record of one shard.
func ReadAll[T any](path string) ([]T, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var records []T
	if err := json.NewDecoder(rc).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode shard %s: %w", path, err)
	}
	return records, nil
}

// Count returns the number of records in one shard without decoding them.
func Count(path string) (int, error) {
	records, err := ReadAll[json.RawMessage](path)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Clean removes the shard files left in dir by an earlier run and returns how
// many were removed. Other files are left alone.
func Clean(dir string) (int, error) {
	paths, err := List(dir)
	if err != nil {
		return 0, err
	}
	for i, p := range paths {
		if err := os.Remove(p); err != nil {
			return i, &IOError{Path: p, Op: "remove", Err: err}
		}
	}
	return len(paths), nil
}
