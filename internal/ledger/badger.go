// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package ledger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// runKeyPrefix prefixes every summary key. The rest of the key is the
// zero-padded start time in nanoseconds and the run ID.
const runKeyPrefix = "ledger:run:"

// BadgerStore implements Store on a BadgerDB instance.
type BadgerStore struct {
	db    *badger.DB
	owned bool
}

// NewBadgerStore wraps an already open database. Close does not close db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a ledger database in dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", dir, err)
	}
	store := NewBadgerStore(db)
	store.owned = true
	return store, nil
}

// Close releases the database if this store opened it.
func (b *BadgerStore) Close() error {
	if !b.owned {
		return nil
	}
	return b.db.Close()
}

func runKey(s *RunSummary) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", runKeyPrefix, s.StartedAt.UnixNano(), s.RunID))
}

// Save persists s.
func (b *BadgerStore) Save(ctx context.Context, s *RunSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(s), data)
	})
}

// Last returns the newest summary.
func (b *BadgerStore) Last(ctx context.Context) (*RunSummary, error) {
	runs, err := b.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// List returns summaries newest first.
func (b *BadgerStore) List(ctx context.Context, limit int) ([]*RunSummary, error) {
	var runs []*RunSummary

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(runKeyPrefix)
		seek := append([]byte(runKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var s RunSummary
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			runs = append(runs, &s)

			if limit > 0 && len(runs) >= limit {
				break
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
