// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package dataset

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tomtom215/draftset/internal/metrics"
)

// Side file names.
const (
	OracleDictFile      = "oracleDict.json"
	ElosFile            = "elos.json"
	CorrelationsFile    = "correlations.json"
	OracleFrequencyFile = "oracleFrequency.json"
)

// writeSideFile writes name into every directory in dirs using write.
func writeSideFile(name string, dirs []string, write func(io.Writer) error) error {
	for _, dir := range dirs {
		if err := writeFile(filepath.Join(dir, name), write); err != nil {
			return err
		}
		metrics.RecordSideFile(name)
	}
	return nil
}

// removeSideFile deletes name from every directory in dirs. A file that
// does not exist is not an error.
func removeSideFile(name string, dirs []string) error {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &DestinationError{Path: path, Err: err}
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &DestinationError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = &DestinationError{Path: path, Err: closeErr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return &DestinationError{Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &DestinationError{Path: path, Err: err}
	}
	return nil
}
