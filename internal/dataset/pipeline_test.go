// Draftset - Card Draft Training Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/draftset

package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/draftset/internal/config"
	"github.com/tomtom215/draftset/internal/ledger"
	"github.com/tomtom215/draftset/internal/logging"
	"github.com/tomtom215/draftset/internal/metadata"
	"github.com/tomtom215/draftset/internal/models"
	"github.com/tomtom215/draftset/internal/shard"
	"github.com/tomtom215/draftset/internal/source"
)

func init() {
	logging.Init(logging.Config{Level: "info", Output: io.Discard})
}

var fixture = map[string]string{
	"indexToOracleMap.json": `{"0":"o0","1":"o1","2":"o2","3":"o3","4":"o4","5":"o5","6":"o6","7":"o7","8":"o8","9":"o9"}`,
	"ratings.json":          `{"o0":{"elo":2400},"o1":{}}`,
	"cubes.json":            `[{"cards":[1,2,3]},{"cards":[]},{"cards":[4,5]},{"cards":[1,null,9]}]`,
	"decks/a.json": `[
		{"mainboard":[1,2,3],"sideboard":[],"basics":[]},
		{"mainboard":[0],"sideboard":[0],"basics":[0]}
	]`,
	"decks/b.json": `[{"mainboard":[2,3,4],"sideboard":[5]}]`,
	"picks/p1.json": `[
		{"pack":[5,6,7],"pool":[5,7],"picked":6},
		{"pack":[-1,8],"pool":[],"picked":8},
		{"pack":[1,2,3],"pool":[2],"picked":2}
	]`,
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func testConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "raw_data")
	writeTree(t, src, files)

	cfg := config.Default()
	cfg.Source.Dir = src
	cfg.Source.RatingsFile = "ratings.json"
	cfg.Output.Dir = filepath.Join(root, "data")
	cfg.Output.ShardSize = 2
	cfg.Output.BatchSize = 1
	cfg.Split.TestFraction = 0
	return cfg
}

func run(t *testing.T, cfg *config.Config, store ledger.Store) *Result {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	res, err := NewPipeline(cfg, store).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func readJSON[T any](t *testing.T, path string) T {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v\n%s", path, err, data)
	}
	return v
}

func readShards[T any](t *testing.T, dir string) []T {
	t.Helper()
	paths, err := shard.List(dir)
	if err != nil {
		t.Fatalf("list %s: %v", dir, err)
	}
	var all []T
	for _, p := range paths {
		recs, err := shard.ReadAll[T](p)
		if err != nil {
			t.Fatalf("read shard %s: %v", p, err)
		}
		all = append(all, recs...)
	}
	return all
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t, fixture)
	store := ledger.NewMemoryStore()

	res := run(t, cfg, store)
	train := cfg.Output.TrainDir()
	test := cfg.Output.TestDir()

	t.Run("metadata", func(t *testing.T) {
		want := metadata.Metadata{NumOracles: 10, NumCubes: 3, NumDecks: 2, NumPicks: 2}
		if res.Metadata != want {
			t.Errorf("Result.Metadata = %+v, want %+v", res.Metadata, want)
		}
		onDisk, err := metadata.Read(train)
		if err != nil {
			t.Fatalf("metadata.Read() error = %v", err)
		}
		if onDisk != want {
			t.Errorf("metadata.json = %+v, want %+v", onDisk, want)
		}
	})

	t.Run("oracle dict in both splits", func(t *testing.T) {
		want := []string{"o0", "o1", "o2", "o3", "o4", "o5", "o6", "o7", "o8", "o9"}
		for _, dir := range []string{train, test} {
			if got := readJSON[[]string](t, filepath.Join(dir, OracleDictFile)); !slices.Equal(got, want) {
				t.Errorf("%s oracleDict = %v", dir, got)
			}
		}
	})

	t.Run("elos in both splits", func(t *testing.T) {
		for _, dir := range []string{train, test} {
			elos := readJSON[[]float64](t, filepath.Join(dir, ElosFile))
			if len(elos) != 10 {
				t.Fatalf("len(elos) = %d, want 10", len(elos))
			}
			if elos[0] != 1.0 {
				t.Errorf("elos[0] = %v, want 1", elos[0])
			}
			for i := 1; i < len(elos); i++ {
				if math.Abs(elos[i]-0.5) > 1e-12 {
					t.Errorf("elos[%d] = %v, want 0.5", i, elos[i])
				}
			}
		}
	})

	t.Run("cube shards", func(t *testing.T) {
		paths, _ := shard.List(filepath.Join(train, models.KindCubes))
		if len(paths) != 2 {
			t.Fatalf("cube shards = %d, want 2", len(paths))
		}
		if filepath.Base(paths[0]) != "0000.json" || filepath.Base(paths[1]) != "0001.json" {
			t.Errorf("shard names = %v", paths)
		}

		first, err := os.ReadFile(paths[0])
		if err != nil {
			t.Fatal(err)
		}
		if string(first) != "[[1,2,3],[4,5]]" {
			t.Errorf("0000.json = %s", first)
		}
		second, err := os.ReadFile(paths[1])
		if err != nil {
			t.Fatal(err)
		}
		if string(second) != "[[1,9]]" {
			t.Errorf("0001.json = %s", second)
		}
	})

	t.Run("oracle frequency", func(t *testing.T) {
		got := readJSON[[]int](t, filepath.Join(train, OracleFrequencyFile))
		want := []int{0, 2, 1, 1, 1, 1, 0, 0, 0, 1}
		if !slices.Equal(got, want) {
			t.Errorf("oracleFrequency = %v, want %v", got, want)
		}
		if _, err := os.Stat(filepath.Join(test, OracleFrequencyFile)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("oracleFrequency.json should only be in train")
		}
	})

	t.Run("correlations", func(t *testing.T) {
		c := readJSON[[]int](t, filepath.Join(train, CorrelationsFile))
		const n = 10
		if len(c) != n*n {
			t.Fatalf("len(correlations) = %d, want %d", len(c), n*n)
		}
		checks := []struct{ i, j, want int }{
			{1, 2, 1}, {2, 1, 1},
			{2, 3, 2}, {3, 2, 2},
			{1, 4, 0}, {4, 1, 0},
			{0, 0, 0}, {2, 2, 0},
		}
		for _, ch := range checks {
			if got := c[ch.i*n+ch.j]; got != ch.want {
				t.Errorf("correlations[%d*N+%d] = %d, want %d", ch.i, ch.j, got, ch.want)
			}
		}
	})

	t.Run("decks", func(t *testing.T) {
		decks := readShards[models.Deck](t, filepath.Join(train, models.KindDecks))
		want := []models.Deck{
			{Mainboard: []int{1, 2, 3}, Sideboard: []int{}},
			{Mainboard: []int{2, 3, 4}, Sideboard: []int{5}},
		}
		if len(decks) != len(want) {
			t.Fatalf("decks = %+v", decks)
		}
		for i := range want {
			if !slices.Equal(decks[i].Mainboard, want[i].Mainboard) || !slices.Equal(decks[i].Sideboard, want[i].Sideboard) {
				t.Errorf("deck %d = %+v, want %+v", i, decks[i], want[i])
			}
		}
	})

	t.Run("picks", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(train, models.KindPicks, "0000.json"))
		if err != nil {
			t.Fatal(err)
		}
		want := `[{"pack":[5,6,7],"pool":[5,7],"pick":6},{"pack":[1,2,3],"pool":[],"pick":2}]`
		if string(data) != want {
			t.Errorf("picks shard = %s, want %s", data, want)
		}
	})

	t.Run("test split empty", func(t *testing.T) {
		for _, kind := range models.Kinds {
			paths, err := shard.List(filepath.Join(test, kind))
			if err != nil {
				t.Fatal(err)
			}
			if len(paths) != 0 {
				t.Errorf("test/%s has shards %v with zero test fraction", kind, paths)
			}
		}
	})

	t.Run("ledger", func(t *testing.T) {
		last, err := store.Last(context.Background())
		if err != nil || last == nil {
			t.Fatalf("Last() = %v, %v", last, err)
		}
		if !last.Succeeded() {
			t.Errorf("run recorded as failed: %s", last.Error)
		}
		if _, err := uuid.Parse(last.RunID); err != nil || last.RunID != res.Summary.RunID {
			t.Errorf("RunID = %q", last.RunID)
		}
		decks := last.Categories[models.KindDecks]
		if decks.Files != 2 || decks.Read != 3 || decks.Kept != 2 || decks.Train != 2 {
			t.Errorf("deck stats = %+v", decks)
		}
		picks := last.Categories[models.KindPicks]
		if picks.Read != 3 || picks.Kept != 2 || picks.TrainShards != 1 {
			t.Errorf("pick stats = %+v", picks)
		}
	})
}

func TestRunPrefixSplit(t *testing.T) {
	cfg := testConfig(t, fixture)
	cfg.Split.TestFraction = 0.5

	res := run(t, cfg, nil)

	// cubes: 3 kept, floor(1.5) = 1 to train.
	// decks: one kept per file, floor(0.5) = 0 to train from each.
	// picks: 2 kept, 1 to train.
	want := metadata.Metadata{NumOracles: 10, NumCubes: 1, NumDecks: 0, NumPicks: 1}
	if res.Metadata != want {
		t.Errorf("Metadata = %+v, want %+v", res.Metadata, want)
	}

	testCubes := readShards[models.Cube](t, filepath.Join(cfg.Output.TestDir(), models.KindCubes))
	if len(testCubes) != 2 || !slices.Equal(testCubes[0], models.Cube{4, 5}) {
		t.Errorf("test cubes = %v", testCubes)
	}

	// The matrix sees every deck regardless of split.
	c := readJSON[[]int](t, filepath.Join(cfg.Output.TrainDir(), CorrelationsFile))
	if c[2*10+3] != 2 {
		t.Errorf("correlations[2][3] = %d, want 2", c[2*10+3])
	}

	testPicks := readShards[models.Pick](t, filepath.Join(cfg.Output.TestDir(), models.KindPicks))
	if len(testPicks) != 1 || testPicks[0].Pick != 2 {
		t.Errorf("test picks = %+v", testPicks)
	}
}

func TestRunFileSplit(t *testing.T) {
	cfg := testConfig(t, fixture)
	cfg.Split.TestFraction = 0.5
	cfg.Split.Strategy = config.SplitFile

	run(t, cfg, nil)

	// decks/a.json is file 0 (train), decks/b.json is file 1 (test).
	trainDecks := readShards[models.Deck](t, filepath.Join(cfg.Output.TrainDir(), models.KindDecks))
	testDecks := readShards[models.Deck](t, filepath.Join(cfg.Output.TestDir(), models.KindDecks))
	if len(trainDecks) != 1 || !slices.Equal(trainDecks[0].Mainboard, []int{1, 2, 3}) {
		t.Errorf("train decks = %+v", trainDecks)
	}
	if len(testDecks) != 1 || !slices.Equal(testDecks[0].Mainboard, []int{2, 3, 4}) {
		t.Errorf("test decks = %+v", testDecks)
	}

	// cubes.json always uses the prefix policy.
	trainCubes := readShards[models.Cube](t, filepath.Join(cfg.Output.TrainDir(), models.KindCubes))
	if len(trainCubes) != 1 {
		t.Errorf("train cubes = %v, want 1 cube", trainCubes)
	}
}

func snapshot(t *testing.T, root string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[rel] = data
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t, fixture)
	cfg.Split.TestFraction = 0.3

	run(t, cfg, nil)
	first := snapshot(t, cfg.Output.Dir)

	run(t, cfg, nil)
	second := snapshot(t, cfg.Output.Dir)

	if len(first) != len(second) {
		t.Fatalf("file count changed: %d -> %d", len(first), len(second))
	}
	for name, data := range first {
		if !bytes.Equal(data, second[name]) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestRunRemovesStaleShards(t *testing.T) {
	cfg := testConfig(t, fixture)
	cfg.Output.ShardSize = 1
	run(t, cfg, nil)

	cfg.Output.ShardSize = 100
	run(t, cfg, nil)

	paths, _ := shard.List(filepath.Join(cfg.Output.TrainDir(), models.KindCubes))
	if len(paths) != 1 {
		t.Errorf("cube shards after rerun = %v, want one", paths)
	}

	recount, err := metadata.Recount(cfg.Output.TrainDir())
	if err != nil {
		t.Fatalf("Recount() error = %v", err)
	}
	if recount.NumCubes != 3 || recount.NumDecks != 2 || recount.NumPicks != 2 {
		t.Errorf("Recount() = %+v", recount)
	}
}

func TestRunZstd(t *testing.T) {
	cfg := testConfig(t, fixture)
	cfg.Output.Compression = config.CompressionZstd

	res := run(t, cfg, nil)

	paths, _ := shard.List(filepath.Join(cfg.Output.TrainDir(), models.KindPicks))
	if len(paths) != 1 || !strings.HasSuffix(paths[0], ".json.zst") {
		t.Fatalf("pick shards = %v", paths)
	}
	picks, err := shard.ReadAll[models.Pick](paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(picks) != 2 || picks[0].Pick != 6 {
		t.Errorf("picks = %+v", picks)
	}

	recount, err := metadata.Recount(cfg.Output.TrainDir())
	if err != nil {
		t.Fatalf("Recount() error = %v", err)
	}
	if recount != res.Metadata {
		t.Errorf("Recount() = %+v, want %+v", recount, res.Metadata)
	}
}

func TestRunWithoutOracleFrequency(t *testing.T) {
	cfg := testConfig(t, fixture)
	cfg.Output.OracleFrequency = false

	run(t, cfg, nil)

	if _, err := os.Stat(filepath.Join(cfg.Output.TrainDir(), OracleFrequencyFile)); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("oracleFrequency.json written while disabled")
	}
}

func TestRunDisablingOracleFrequencyMatchesCleanRun(t *testing.T) {
	cfg := testConfig(t, fixture)
	run(t, cfg, nil)

	cfg.Output.OracleFrequency = false
	run(t, cfg, nil)
	rerun := snapshot(t, cfg.Output.Dir)

	clean := *cfg
	clean.Output.Dir = t.TempDir()
	run(t, &clean, nil)
	fresh := snapshot(t, clean.Output.Dir)

	if _, ok := rerun[filepath.Join("train", OracleFrequencyFile)]; ok {
		t.Errorf("stale %s left in train/", OracleFrequencyFile)
	}
	if len(rerun) != len(fresh) {
		t.Fatalf("rerun has %d files, clean run has %d", len(rerun), len(fresh))
	}
	for name, data := range fresh {
		if !bytes.Equal(data, rerun[name]) {
			t.Errorf("%s differs from a clean run", name)
		}
	}
}

func TestRunSourceFormatError(t *testing.T) {
	files := map[string]string{}
	for k, v := range fixture {
		files[k] = v
	}
	files["decks/c.json"] = `[{"sideboard":[1]}]`

	cfg := testConfig(t, files)
	store := ledger.NewMemoryStore()

	_, err := NewPipeline(cfg, store).Run(context.Background())

	var fe *source.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Run() error = %v, want *source.FormatError", err)
	}
	if filepath.Base(fe.Path) != "c.json" || fe.Record != 0 {
		t.Errorf("FormatError = %+v", fe)
	}
	if got := ErrorType(err); got != ErrorTypeSourceFormat {
		t.Errorf("ErrorType() = %q", got)
	}

	last, _ := store.Last(context.Background())
	if last == nil || last.Succeeded() {
		t.Errorf("ledger should record the failed run, got %+v", last)
	}

	// Cubes finished before decks failed; their shards are complete files.
	cubes := readShards[models.Cube](t, filepath.Join(cfg.Output.TrainDir(), models.KindCubes))
	if len(cubes) != 3 {
		t.Errorf("cubes written before failure = %d, want 3", len(cubes))
	}
	if _, err := os.Stat(filepath.Join(cfg.Output.TrainDir(), metadata.FileName)); !errors.Is(err, fs.ErrNotExist) {
		t.Error("metadata.json must not be written by a failed run")
	}
}

func TestRunMissingSource(t *testing.T) {
	files := map[string]string{}
	for k, v := range fixture {
		if !strings.HasPrefix(k, "picks/") {
			files[k] = v
		}
	}
	cfg := testConfig(t, files)

	_, err := NewPipeline(cfg, nil).Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error for missing picks directory")
	}
	if got := ErrorType(err); got != ErrorTypeOther {
		t.Errorf("ErrorType() = %q, want %q", got, ErrorTypeOther)
	}
}

func TestRunDestinationError(t *testing.T) {
	cfg := testConfig(t, fixture)
	// A regular file where the output directory should be.
	if err := os.WriteFile(cfg.Output.Dir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewPipeline(cfg, nil).Run(context.Background())

	var de *DestinationError
	if !errors.As(err, &de) {
		t.Fatalf("Run() error = %v, want *DestinationError", err)
	}
	if got := ErrorType(err); got != ErrorTypeDestinationIO {
		t.Errorf("ErrorType() = %q", got)
	}
}

func TestRunUsesContextRunID(t *testing.T) {
	cfg := testConfig(t, fixture)
	ctx := logging.ContextWithRunID(context.Background(), "feedbeef")

	var logs bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &logs})
	defer logging.Init(logging.Config{Level: "info", Output: io.Discard})

	res, err := NewPipeline(cfg, nil).Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Summary.RunID != "feedbeef" {
		t.Errorf("RunID = %q, want feedbeef", res.Summary.RunID)
	}

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected run logs, got %q", logs.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"run_id":"feedbeef"`) {
			t.Errorf("log line without run_id: %s", line)
		}
	}
	if !strings.Contains(logs.String(), `"component":"shard"`) {
		t.Errorf("expected shard component logs, got %s", logs.String())
	}
}

func TestDestinationWrapsShardErrors(t *testing.T) {
	ioErr := &shard.IOError{Path: "/x/0000.json", Op: "write", Err: errors.New("disk full")}

	err := destination(ioErr)

	var de *DestinationError
	if !errors.As(err, &de) || de.Path != "/x/0000.json" {
		t.Fatalf("destination() = %v", err)
	}
	if !errors.Is(err, ioErr) {
		t.Error("DestinationError should unwrap to the shard error")
	}
	if destination(nil) != nil {
		t.Error("destination(nil) != nil")
	}
	plain := errors.New("other")
	if destination(plain) != plain {
		t.Error("destination() should pass unrelated errors through")
	}
}
