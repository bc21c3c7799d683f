// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package shard splits a record stream into numbered JSON array files.
//
// # Shard Lifecycle
//
// Each shard moves through three states:
//
//	Open     file created, "[" written
//	Filling  records appended through a jsonstream.Encoder
//	Closed   "]" written, file handle released
//
// A shard closes as soon as it holds MaxRecords records, or when the
// Writer is closed. The next shard is opened lazily by the next record, so
// an empty stream produces no files and every shard except the last holds
// exactly MaxRecords records; the last holds between 1 and MaxRecords.
//
// # Naming
//
// Shards are named with a fixed-width zero-padded index (0000.json,
// 0001.json, ...) so lexicographic and numeric order agree. Concatenating
// shards in name order reproduces the input order exactly. With zstd
// compression the suffix is .json.zst.
//
// # Failure
//
// Any write failure closes the open file before returning an *IOError, and
// the Writer refuses further records. Close is idempotent and safe to defer.
package shard
