// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package ledger

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore implements Store in memory. Useful for tests and for runs
// without a configured ledger path.
type MemoryStore struct {
	mu   sync.Mutex
	runs map[string]*RunSummary
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*RunSummary)}
}

// Save stores a copy of s.
func (m *MemoryStore) Save(ctx context.Context, s *RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *s
	m.runs[string(runKey(s))] = &c
	return nil
}

// Last returns the newest summary.
func (m *MemoryStore) Last(ctx context.Context) (*RunSummary, error) {
	runs, _ := m.List(ctx, 1)
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// List returns summaries newest first.
func (m *MemoryStore) List(ctx context.Context, limit int) ([]*RunSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.runs))
	for k := range m.runs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int { return cmp.Compare(b, a) })

	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	runs := make([]*RunSummary, len(keys))
	for i, k := range keys {
		c := *m.runs[k]
		runs[i] = &c
	}
	return runs, nil
}
