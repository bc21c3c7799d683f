// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package source

import (
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by FormatError when a required key is absent or null.
var ErrMissingField = errors.New("missing required field")

// FormatError reports a source file that is not valid JSON or does not have
// the expected shape. It is always fatal to a run.
type FormatError struct {
	Path string

	// Record is the zero-based array position of the offending record,
	// or -1 when the file as a whole is malformed.
	Record int

	Err error
}

func (e *FormatError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("malformed source file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed source file %s: record %d: %v", e.Path, e.Record, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return fmt.Errorf("%w %q", ErrMissingField, field)
}
