// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package logging

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type runIDKey struct{}

// active holds the ID of the run in progress, nil between runs.
var active atomic.Pointer[string]

// GenerateRunID returns a new time-ordered run ID (UUIDv7), so ledger
// entries and log lines sort by start time.
func GenerateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ContextWithRunID returns a copy of ctx carrying id. BeginRun uses it
// instead of generating a fresh ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run ID carried by ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// BeginRun makes the run carried by ctx the active run, generating an ID
// when ctx has none. Until end is called every event from the process
// logger and its children carries a run_id field.
//
//	ctx, end := logging.BeginRun(ctx)
//	defer end()
func BeginRun(ctx context.Context) (runCtx context.Context, end func()) {
	id := RunIDFromContext(ctx)
	if id == "" {
		id = GenerateRunID()
		ctx = ContextWithRunID(ctx, id)
	}

	p := &id
	active.Store(p)
	// A later BeginRun owns the slot; ending this run must not clear it.
	return ctx, func() { active.CompareAndSwap(p, nil) }
}

// activeRunID returns the ID of the run in progress, or "".
func activeRunID() string {
	if p := active.Load(); p != nil {
		return *p
	}
	return ""
}

// runHook stamps the active run ID on each event.
type runHook struct{}

func (runHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := activeRunID(); id != "" {
		e.Str("run_id", id)
	}
}
