package cli

// This file contains the run command: it expands the configured
// selection into a schedule of (subject, operation, size) tuples,
// executes them, renders the report and records the run in history.

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/seqbench/seqbench/bench"
	"github.com/seqbench/seqbench/config"
	"github.com/seqbench/seqbench/model"
	"github.com/seqbench/seqbench/report"
	"github.com/seqbench/seqbench/subjects"
)

func (a *App) run(ctx *cli.Context) error {
	startTime := time.Now()

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	// Generate random 16-byte run ID
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}
	runID := hex.EncodeToString(idBytes)

	run := &model.Run{
		ID:        runID,
		Timestamp: startTime,
		Args:      os.Args,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Selection: model.Selection{
			Subjects:           cfg.Subjects,
			Operations:         cfg.Operations,
			Sizes:              cfg.Sizes,
			ElementKind:        cfg.ElementKind,
			WarmupIterations:   cfg.WarmupIterations,
			MeasuredIterations: cfg.MeasuredIterations,
			Seed:               cfg.Seed,
		},
	}
	if cwd, err := os.Getwd(); err == nil {
		run.WorkDir = cwd
	}

	// Register subjects and validate the selection before anything is
	// measured. Configuration errors are fatal here; nothing below can
	// raise one.
	registry := bench.NewRegistry()
	if err := subjects.RegisterAll(registry, cfg.Kind()); err != nil {
		return fmt.Errorf("failed to register subjects: %w", err)
	}
	plan, err := registry.Plan(cfg.Subjects, cfg.Ops(), cfg.Sizes)
	if err != nil {
		var cfgErr *bench.ConfigurationError
		if errors.As(err, &cfgErr) {
			a.logger.Error().Err(err).Msg("Invalid benchmark selection")
		}
		return err
	}
	run.Tuples = len(plan)

	// Create the history directory early so artifacts can be written
	// directly to it.
	runDir, err := a.prepareRunDir(run)
	if err != nil {
		return fmt.Errorf("failed to prepare history directory: %w", err)
	}

	opts := bench.Options{
		WarmupIterations:    cfg.WarmupIterations,
		MeasuredIterations:  cfg.MeasuredIterations,
		Seed:                cfg.Seed,
		GCBetweenIterations: cfg.GCBetweenIterations,
	}
	if cfg.TimeoutDuration() > 0 {
		opts.Deadline = startTime.Add(cfg.TimeoutDuration())
	}

	a.logger.Info().
		Int("tuples", len(plan)).
		Str("kind", cfg.ElementKind).
		Ints("sizes", cfg.Sizes).
		Int("warmup", cfg.WarmupIterations).
		Int("iterations", cfg.MeasuredIterations).
		Msg("Starting benchmark run")

	var stopProfile func() error
	if cfg.Profile {
		profilePath := filepath.Join(runDir, cpuProfileFile)
		stopProfile, err = startCPUProfile(profilePath)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}

	runner := bench.NewRunner(a.logger, registry, bench.NewAggregator(), opts)
	outcomes := runner.RunAll(plan)

	if stopProfile != nil {
		if err := stopProfile(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to stop CPU profile")
		} else {
			a.summarizeProfile(filepath.Join(runDir, cpuProfileFile))
		}
	}

	for _, o := range outcomes {
		if o.Failed() {
			run.Failures++
		}
	}
	run.Duration = time.Since(startTime)

	rep := report.New(outcomes)

	var tables bytes.Buffer
	if err := rep.WriteTables(&tables); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	var records bytes.Buffer
	if err := rep.WriteJSON(&records); err != nil {
		return fmt.Errorf("failed to render result records: %w", err)
	}

	if ctx.Bool("json") {
		if _, err := os.Stdout.Write(records.Bytes()); err != nil {
			return err
		}
	} else {
		if _, err := os.Stdout.Write(tables.Bytes()); err != nil {
			return err
		}
	}

	// Record the run (non-fatal if it fails)
	if err := a.recordRun(run, runDir, tables.Bytes(), records.Bytes()); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record run history")
	}

	a.logger.Info().
		Dur("duration", run.Duration).
		Int("tuples", run.Tuples).
		Int("failures", run.Failures).
		Str("id", runID[:8]).
		Msg("Benchmark run complete")
	return nil
}

// loadConfig builds the effective configuration: defaults, then the
// config file, then command-line flags.
func (a *App) loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		a.logger.Debug().Str("config", path).Msg("Loaded config file")
	}

	if ctx.IsSet("subject") {
		cfg.Subjects = ctx.StringSlice("subject")
	}
	if ctx.IsSet("operation") {
		cfg.Operations = ctx.StringSlice("operation")
	}
	if ctx.IsSet("size") {
		cfg.Sizes = ctx.IntSlice("size")
	}
	if ctx.IsSet("kind") {
		cfg.ElementKind = ctx.String("kind")
	}
	if ctx.IsSet("warmup") {
		cfg.WarmupIterations = ctx.Int("warmup")
	}
	if ctx.IsSet("iterations") {
		cfg.MeasuredIterations = ctx.Int("iterations")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("gc-between-iterations") {
		cfg.GCBetweenIterations = ctx.Bool("gc-between-iterations")
	}
	if ctx.IsSet("timeout") {
		cfg.Timeout = ctx.String("timeout")
	}
	if ctx.IsSet("profile") {
		cfg.Profile = ctx.Bool("profile")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
