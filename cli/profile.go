package cli

// This file contains CPU profile capture for benchmark runs. The
// profile spans the whole run so the relative weight of the measured
// operations can be inspected afterwards.

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/google/pprof/profile"
)

// startCPUProfile begins writing a CPU profile to path and returns the
// stop function.
func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}

// summarizeProfile parses the captured profile and logs what it holds.
// Failures are non-fatal; the artifact is still recorded.
func (a *App) summarizeProfile(path string) {
	f, err := os.Open(path)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Failed to open CPU profile")
		return
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Failed to parse CPU profile")
		return
	}
	if err := prof.CheckValid(); err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("CPU profile is invalid")
		return
	}

	a.logger.Info().
		Str("profile", path).
		Int("samples", len(prof.Sample)).
		Int("functions", len(prof.Function)).
		Int64("duration_ns", prof.DurationNanos).
		Msg("CPU profile captured")
}
