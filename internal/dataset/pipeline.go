// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package dataset

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/draftset/internal/config"
	"github.com/tomtom215/draftset/internal/correlation"
	"github.com/tomtom215/draftset/internal/elo"
	"github.com/tomtom215/draftset/internal/jsonstream"
	"github.com/tomtom215/draftset/internal/ledger"
	"github.com/tomtom215/draftset/internal/logging"
	"github.com/tomtom215/draftset/internal/metadata"
	"github.com/tomtom215/draftset/internal/metrics"
	"github.com/tomtom215/draftset/internal/models"
	"github.com/tomtom215/draftset/internal/normalize"
	"github.com/tomtom215/draftset/internal/source"
	"github.com/tomtom215/draftset/internal/split"
)

// Result is what a completed run produced.
type Result struct {
	Summary  *ledger.RunSummary
	Metadata metadata.Metadata
}

// Pipeline holds the state of a single run.
type Pipeline struct {
	cfg    *config.Config
	store  ledger.Store
	logger zerolog.Logger

	trainDir string
	testDir  string

	numOracles int
	matrix     *correlation.Matrix
	frequency  *correlation.Frequency
	meta       metadata.Metadata
	summary    *ledger.RunSummary
}

// NewPipeline returns a pipeline for cfg. store may be nil, in which case
// the run is not recorded.
func NewPipeline(cfg *config.Config, store ledger.Store) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		trainDir: cfg.Output.TrainDir(),
		testDir:  cfg.Output.TestDir(),
	}
}

// Run executes every stage in order and returns on the first fatal error.
// A Pipeline must not be reused.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx, end := logging.BeginRun(ctx)
	defer end()
	p.logger = logging.WithComponent("dataset")

	p.summary = &ledger.RunSummary{
		RunID:         logging.RunIDFromContext(ctx),
		StartedAt:     time.Now().UTC(),
		SourceDir:     p.cfg.Source.Dir,
		OutputDir:     p.cfg.Output.Dir,
		TestFraction:  p.cfg.Split.TestFraction,
		SplitStrategy: p.cfg.Split.Strategy,
		ShardSize:     p.cfg.Output.ShardSize,
		Compression:   p.cfg.Output.Compression,
		Categories:    make(map[string]ledger.CategoryStats, len(models.Kinds)),
	}

	p.logger.Info().
		Str("source", p.cfg.Source.Dir).
		Str("output", p.cfg.Output.Dir).
		Float64("test_fraction", p.cfg.Split.TestFraction).
		Str("split_strategy", p.cfg.Split.Strategy).
		Int("shard_size", p.cfg.Output.ShardSize).
		Str("compression", p.cfg.Output.Compression).
		Msg("Starting dataset run")

	err := p.run()
	p.finish(ctx, err)
	if err != nil {
		return nil, err
	}
	return &Result{Summary: p.summary, Metadata: p.meta}, nil
}

func (p *Pipeline) run() error {
	for _, dir := range []string{p.trainDir, p.testDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &DestinationError{Path: dir, Err: err}
		}
	}

	oracles, err := p.processOracleDict()
	if err != nil {
		return err
	}
	if err := p.processElos(oracles); err != nil {
		return err
	}

	if err := p.processCubes(); err != nil {
		return err
	}
	if err := p.processDecks(); err != nil {
		return err
	}
	if err := p.processPicks(); err != nil {
		return err
	}

	p.meta.NumOracles = p.numOracles
	if err := metadata.Write(p.trainDir, p.meta); err != nil {
		return &DestinationError{Path: p.trainDir, Err: err}
	}
	metrics.RecordSideFile(metadata.FileName)
	return nil
}

func (p *Pipeline) finish(ctx context.Context, err error) {
	p.summary.FinishedAt = time.Now().UTC()
	p.summary.NumOracles = p.numOracles
	duration := p.summary.Duration()

	errType := ErrorType(err)
	metrics.RecordRun(duration, errType, err)

	if err != nil {
		p.summary.Error = err.Error()
		p.logger.Error().Err(err).Str("error_type", errType).Dur("duration", duration).Msg("Dataset run failed")
	} else {
		p.logger.Info().
			Int("num_oracles", p.meta.NumOracles).
			Int64("num_cubes", p.meta.NumCubes).
			Int64("num_decks", p.meta.NumDecks).
			Int64("num_picks", p.meta.NumPicks).
			Dur("duration", duration).
			Msg("Dataset run completed")
	}

	if p.store != nil {
		if saveErr := p.store.Save(ctx, p.summary); saveErr != nil {
			p.logger.Warn().Err(saveErr).Msg("Failed to record run in ledger")
		}
	}
	if mErr := metrics.WriteTextfile(p.cfg.Metrics.TextfilePath); mErr != nil {
		p.logger.Warn().Err(mErr).Msg("Failed to export metrics")
	}
}

func (p *Pipeline) bothSplits() []string {
	return []string{p.trainDir, p.testDir}
}

func (p *Pipeline) processOracleDict() ([]string, error) {
	path := p.cfg.Source.OracleMapPath()
	oracles, err := source.ReadOracleMap(path)
	if err != nil {
		return nil, err
	}
	p.numOracles = len(oracles)
	metrics.Oracles.Set(float64(p.numOracles))

	err = writeSideFile(OracleDictFile, p.bothSplits(), func(w io.Writer) error {
		return jsonstream.WriteArray(w, oracles, p.cfg.Output.BatchSize)
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info().Str("file", path).Int("num_oracles", p.numOracles).Msg("Loaded oracle dictionary")
	return oracles, nil
}

func (p *Pipeline) processElos(oracles []string) error {
	ratings, err := source.ReadRatings(p.cfg.Source.RatingsPath())
	if err != nil {
		return err
	}

	vec := elo.Compute(oracles, ratings, elo.Params{
		DefaultRating: p.cfg.Elo.DefaultRating,
		BaseRating:    p.cfg.Elo.BaseRating,
	})
	metrics.EloDefaulted.Set(float64(vec.Defaulted))

	if len(vec.Values) > 0 && !vec.Scaled {
		p.logger.Warn().
			Float64("max_feature", vec.Max).
			Msg("No rating above the base rating; elo vector written unscaled")
	}

	err = writeSideFile(ElosFile, p.bothSplits(), func(w io.Writer) error {
		return vec.WriteJSON(w, p.cfg.Output.BatchSize)
	})
	if err != nil {
		return err
	}

	p.logger.Info().
		Int("rated", len(ratings)).
		Int("defaulted", vec.Defaulted).
		Msg("Wrote elo vector")
	return nil
}

func (p *Pipeline) processCubes() error {
	p.frequency = correlation.NewFrequency(p.numOracles)

	// cubes.json is one file, so a file-granular split would put every cube
	// on one side. It always uses the prefix policy.
	err := runCategory(p, category[models.SourceCube, models.Cube]{
		kind:      models.KindCubes,
		files:     []string{p.cfg.Source.CubesPath()},
		strategy:  split.Prefix,
		read:      source.ReadCubes,
		normalize: normalize.Cube,
		observe:   func(c models.Cube) { p.frequency.AddCube(c) },
	})
	if err != nil {
		return err
	}

	if !p.cfg.Output.OracleFrequency {
		return removeSideFile(OracleFrequencyFile, []string{p.trainDir})
	}
	return writeSideFile(OracleFrequencyFile, []string{p.trainDir}, func(w io.Writer) error {
		return p.frequency.WriteJSON(w, p.cfg.Output.BatchSize)
	})
}

func (p *Pipeline) processDecks() error {
	files, err := source.ListFiles(p.cfg.Source.DecksPath())
	if err != nil {
		return err
	}

	p.matrix = correlation.New(p.numOracles)
	err = runCategory(p, category[models.SourceDeck, models.Deck]{
		kind:      models.KindDecks,
		files:     files,
		strategy:  split.Strategy(p.cfg.Split.Strategy),
		read:      source.ReadDecks,
		normalize: normalize.Deck,
		observe:   func(d models.Deck) { p.matrix.AddMainboard(d.Mainboard) },
	})
	if err != nil {
		return err
	}

	metrics.RecordCorrelation(p.matrix.Mainboards(), p.matrix.Pairs())
	err = writeSideFile(CorrelationsFile, []string{p.trainDir}, func(w io.Writer) error {
		return p.matrix.WriteJSON(w, p.cfg.Output.BatchSize)
	})
	if err != nil {
		return err
	}

	p.logger.Info().
		Int("dimension", p.matrix.N()).
		Int64("mainboards", p.matrix.Mainboards()).
		Int64("pairs", p.matrix.Pairs()).
		Msg("Wrote correlation matrix")

	// The matrix is the largest allocation of the run.
	p.matrix = nil
	return nil
}

func (p *Pipeline) processPicks() error {
	files, err := source.ListFiles(p.cfg.Source.PicksPath())
	if err != nil {
		return err
	}

	return runCategory(p, category[models.SourcePick, models.Pick]{
		kind:      models.KindPicks,
		files:     files,
		strategy:  split.Strategy(p.cfg.Split.Strategy),
		read:      source.ReadPicks,
		normalize: normalize.Pick,
	})
}

