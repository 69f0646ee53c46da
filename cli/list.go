package cli

// This file contains the list command for displaying previous
// benchmark runs.

import (
	"fmt"
	"sort"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"

	"github.com/seqbench/seqbench/history"
	"github.com/seqbench/seqbench/model"
)

func (a *App) list(ctx *cli.Context) error {
	limit := ctx.Int("limit")

	root, err := history.ExistingRoot()
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No benchmark runs found")
		return nil
	}

	// Sort by timestamp (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Run.Timestamp.After(entries[j].Run.Timestamp)
	})

	displayRuns := entries
	if limit > 0 && limit < len(displayRuns) {
		displayRuns = displayRuns[:limit]
	}

	fmt.Printf("\n=== Benchmark runs (%d total) ===\n\n", len(entries))

	for _, entry := range displayRuns {
		run := entry.Run
		timestamp := run.Timestamp.Format("2006-01-02 15:04:05")
		duration := run.Duration.Round(time.Millisecond)

		status := "✓"
		if run.Failures > 0 {
			status = "✗"
		}

		shortID := run.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Printf("%s  %s  [%s]  tuples=%d failures=%d  id=%s\n",
			status, timestamp, duration, run.Tuples, run.Failures, shortID)
		fmt.Printf("   Kind: %s  Sizes: %v  (warmup=%d, iterations=%d, seed=%d)\n",
			run.Selection.ElementKind, run.Selection.Sizes,
			run.Selection.WarmupIterations, run.Selection.MeasuredIterations,
			run.Selection.Seed)
		if len(run.Args) > 0 {
			fmt.Printf("   Rerun: %s\n", shellescape.QuoteCommand(run.Args))
		}
		if run.OS != "" && run.Arch != "" {
			fmt.Printf("   Host: %s/%s\n", run.OS, run.Arch)
		}
		for _, artifact := range run.Artifacts {
			var typeName string
			switch artifact.Type {
			case model.ArtifactTypeReport:
				typeName = "report"
			case model.ArtifactTypeResults:
				typeName = "results"
			case model.ArtifactTypeCPUProfile:
				typeName = "profile"
			}
			if typeName != "" {
				fmt.Printf("   %s: %s (%.1f KB)\n", typeName, artifact.File, float64(artifact.Size)/1024)
			}
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	fmt.Println("\nView a run: seqbench view <ID>")

	return nil
}
