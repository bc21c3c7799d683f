// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/draftset/internal/logging"
	"github.com/tomtom215/draftset/internal/metadata"
)

func newRecountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recount",
		Short: "Rebuild train/metadata.json from existing shards",
		Long: `Rebuild train/metadata.json by counting the records of every training
shard and the length of train/oracleDict.json. Useful after shards were
edited or copied by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRecount(cmd)
		},
	}
	cmd.Flags().StringP("output", "o", "", "output directory containing train/")
	return cmd
}

func (a *app) runRecount(cmd *cobra.Command) error {
	cfg, err := a.load(cmd)
	if err != nil {
		return err
	}

	trainDir := cfg.Output.TrainDir()
	m, err := metadata.Recount(trainDir)
	if err != nil {
		return err
	}
	if err := metadata.Write(trainDir, m); err != nil {
		return err
	}

	logging.Info().
		Str("dir", trainDir).
		Int("num_oracles", m.NumOracles).
		Int64("num_cubes", m.NumCubes).
		Int64("num_decks", m.NumDecks).
		Int64("num_picks", m.NumPicks).
		Msg("Metadata rebuilt")

	out, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
