// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/draftset/internal/ledger"
	"github.com/tomtom215/draftset/internal/models"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Long: `List the runs recorded in the run ledger, newest first.

Examples:
  draftset history --ledger .draftset/ledger
  draftset history --limit 1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHistory(cmd)
		},
	}
	f := cmd.Flags()
	f.String("ledger", "", "BadgerDB directory recording run summaries")
	f.IntP("limit", "n", 10, "maximum runs to show (0 for all)")
	f.Bool("json", false, "print summaries as JSON lines")
	return cmd
}

func (a *app) runHistory(cmd *cobra.Command) error {
	cfg, err := a.load(cmd)
	if err != nil {
		return err
	}
	if cfg.Ledger.Path == "" {
		return errors.New("no run ledger configured (set --ledger or ledger.path)")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := ledger.OpenBadgerStore(cfg.Ledger.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printRunsJSON(out, runs)
	}
	return printRunsTable(out, runs)
}

func printRunsJSON(w io.Writer, runs []*ledger.RunSummary) error {
	for _, r := range runs {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal run %s: %w", r.RunID, err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func printRunsTable(w io.Writer, runs []*ledger.RunSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tSTATUS\tORACLES\tCUBES\tDECKS\tPICKS")
	for _, r := range runs {
		status := "ok"
		if !r.Succeeded() {
			status = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.RunID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration().Round(time.Millisecond),
			status,
			r.NumOracles,
			splitCounts(r, models.KindCubes),
			splitCounts(r, models.KindDecks),
			splitCounts(r, models.KindPicks),
		)
	}
	return tw.Flush()
}

// splitCounts formats train/test counts of one category.
func splitCounts(r *ledger.RunSummary, kind string) string {
	c, ok := r.Categories[kind]
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d/%d", c.Train, c.Test)
}
