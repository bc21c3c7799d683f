// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. Field names in error
// messages come from koanf struct tags, so a failure on
//
//	type OutputConfig struct {
//	    ShardSize int `koanf:"shard_size" validate:"gte=1"`
//	}
//
// is reported as "output.shard_size must be greater than or equal to 1".
package validation
