// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/draftset/internal/models"
)

// ReadCubes reads cubes.json.
func ReadCubes(path string) ([]models.SourceCube, error) {
	return readArray(path, func(c *models.SourceCube) error {
		if c.Cards == nil {
			return missing("cards")
		}
		return nil
	})
}

// ReadDecks reads one decks/*.json file.
func ReadDecks(path string) ([]models.SourceDeck, error) {
	return readArray(path, func(d *models.SourceDeck) error {
		if d.Mainboard == nil {
			return missing("mainboard")
		}
		if d.Sideboard == nil {
			return missing("sideboard")
		}
		return nil
	})
}

// ReadPicks reads one picks/*.json file. A null or absent "picked" is not a
// format error; the pick is dropped during normalization.
func ReadPicks(path string) ([]models.SourcePick, error) {
	return readArray(path, func(p *models.SourcePick) error {
		if p.Pack == nil {
			return missing("pack")
		}
		if p.Pool == nil {
			return missing("pool")
		}
		return nil
	})
}

// ListFiles returns the .json files directly inside dir, sorted by name.
// Subdirectories and other files are ignored.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list source directory: %w", err)
	}

	// os.ReadDir sorts by file name.
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func readArray[T any](path string, check func(*T) error) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &FormatError{Path: path, Record: -1, Err: err}
	}
	if records == nil {
		return nil, &FormatError{Path: path, Record: -1, Err: fmt.Errorf("expected a JSON array, got null")}
	}

	for i := range records {
		if err := check(&records[i]); err != nil {
			return nil, &FormatError{Path: path, Record: i, Err: err}
		}
	}
	return records, nil
}
