// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/draftset/internal/dataset"
	"github.com/tomtom215/draftset/internal/ledger"
	"github.com/tomtom215/draftset/internal/logging"
)

func newPrepareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Build the train/test dataset from a raw source tree",
		Long: `Build the train/test dataset from a raw source tree.

Categories are processed in order: oracle dictionary, elo vector, cubes,
decks (feeding the correlation matrix), picks. The metadata summary is
printed to stdout when the run completes.

Examples:
  draftset prepare
  draftset prepare --source raw_data --output data --shard-size 5000
  draftset prepare --test-fraction 0.2 --split-strategy file --compression zstd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPrepare(cmd)
		},
	}

	f := cmd.Flags()
	f.StringP("source", "s", "", "raw source directory")
	f.String("ratings", "", "rating table, relative to the source directory unless absolute")
	f.StringP("output", "o", "", "output directory receiving train/ and test/")
	f.Int("shard-size", 0, "maximum records per shard file")
	f.Int("batch-size", 0, "records serialized per write")
	f.Float64("test-fraction", 0, "held-out fraction in [0, 1)")
	f.String("split-strategy", "", "prefix or file")
	f.String("compression", "", "shard compression: none or zstd")
	f.String("metrics-textfile", "", "write Prometheus metrics to this textfile")
	f.String("ledger", "", "BadgerDB directory recording run summaries")
	return cmd
}

func (a *app) runPrepare(cmd *cobra.Command) error {
	cfg, err := a.load(cmd)
	if err != nil {
		return err
	}

	var store ledger.Store
	if cfg.Ledger.Path != "" {
		bs, err := ledger.OpenBadgerStore(cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := bs.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing run ledger")
			}
		}()
		store = bs
	}

	res, err := dataset.NewPipeline(cfg, store).Run(context.Background())
	if err != nil {
		return err
	}

	out, err := json.Marshal(res.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
