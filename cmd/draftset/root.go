// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/draftset/internal/config"
	"github.com/tomtom215/draftset/internal/logging"
	"github.com/tomtom215/draftset/internal/validation"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "draftset",
		Short: "Prepare sharded card-draft training datasets",
		Long: `Draftset reads raw cube, deck and draft-pick exports and writes
deterministic, sharded train/test datasets plus the side files the
trainer needs (oracle dictionary, elo vector, correlation matrix,
metadata).`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default draftset.yaml, or $"+config.ConfigPathEnvVar+")")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: json or console")

	root.AddCommand(
		newPrepareCmd(a),
		newRecountCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return root
}

// load builds the effective configuration for cmd: defaults, file, env,
// then any flags set on the command line. Logging is initialized from the
// result.
func (a *app) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithKoanf(a.configPath)
	if err != nil {
		reportInvalid(cmd.ErrOrStderr(), err)
		return nil, err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		reportInvalid(cmd.ErrOrStderr(), err)
		return nil, err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	return cfg, nil
}

// reportInvalid lists each rejected configuration key with the value it
// had, one per line. Errors other than validation failures are left to
// cobra.
func reportInvalid(w io.Writer, err error) {
	var verrs *validation.Errors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs.Fields() {
		fmt.Fprintf(w, "  %s = %v (%s)\n", fe.Path(), fe.Value(), fe.Error())
	}
}

// flagBinding copies one command-line flag into the configuration when the
// user set it explicitly.
type flagBinding struct {
	name  string
	apply func(cmd *cobra.Command, cfg *config.Config) error
}

var flagBindings = []flagBinding{
	{"source", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Source.Dir, err = cmd.Flags().GetString("source")
		return err
	}},
	{"ratings", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Source.RatingsFile, err = cmd.Flags().GetString("ratings")
		return err
	}},
	{"output", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Output.Dir, err = cmd.Flags().GetString("output")
		return err
	}},
	{"shard-size", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Output.ShardSize, err = cmd.Flags().GetInt("shard-size")
		return err
	}},
	{"batch-size", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Output.BatchSize, err = cmd.Flags().GetInt("batch-size")
		return err
	}},
	{"compression", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Output.Compression, err = cmd.Flags().GetString("compression")
		return err
	}},
	{"test-fraction", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Split.TestFraction, err = cmd.Flags().GetFloat64("test-fraction")
		return err
	}},
	{"split-strategy", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Split.Strategy, err = cmd.Flags().GetString("split-strategy")
		return err
	}},
	{"metrics-textfile", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Metrics.TextfilePath, err = cmd.Flags().GetString("metrics-textfile")
		return err
	}},
	{"ledger", func(cmd *cobra.Command, cfg *config.Config) (err error) {
		cfg.Ledger.Path, err = cmd.Flags().GetString("ledger")
		return err
	}},
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	for _, b := range flagBindings {
		f := cmd.Flags().Lookup(b.name)
		if f == nil || !f.Changed {
			continue
		}
		if err := b.apply(cmd, cfg); err != nil {
			return fmt.Errorf("flag --%s: %w", b.name, err)
		}
	}
	return nil
}
