// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package dataset

import (
	"errors"
	"fmt"

	"github.com/tomtom215/draftset/internal/shard"
	"github.com/tomtom215/draftset/internal/source"
)

// DestinationError reports a failed write to the output tree.
type DestinationError struct {
	Path string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

// destination wraps shard write failures as *DestinationError and passes
// everything else through.
func destination(err error) error {
	if err == nil {
		return nil
	}
	var de *DestinationError
	if errors.As(err, &de) {
		return err
	}
	var ioErr *shard.IOError
	if errors.As(err, &ioErr) {
		return &DestinationError{Path: ioErr.Path, Err: err}
	}
	return err
}

// Error types used for the run_errors metric label.
const (
	ErrorTypeSourceFormat  = "source_format"
	ErrorTypeDestinationIO = "destination_io"
	ErrorTypeOther         = "other"
)

// ErrorType classifies a run error.
func ErrorType(err error) string {
	var fe *source.FormatError
	var de *DestinationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return ErrorTypeSourceFormat
	case errors.As(err, &de):
		return ErrorTypeDestinationIO
	default:
		return ErrorTypeOther
	}
}
