package cli

// This file contains the view command for displaying recorded runs
// from history.

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/seqbench/seqbench/history"
	"github.com/seqbench/seqbench/model"
)

func removeFirstDashDash(in []string) []string {
	if len(in) > 0 && in[0] == "--" {
		return in[1:]
	}
	return in
}

func parseViewArgs(in []string) (idArg string, pprofArgs []string) {
	if len(in) == 0 {
		return "0", nil
	}

	// If first arg is "--", use default "0" and rest are pprof args
	if in[0] == "--" {
		return "0", in[1:]
	}

	// Check if first arg looks like a pprof flag instead of an ID.
	// A negative index is "-" followed by only digits (e.g., "-1");
	// a pprof flag is "-" followed by non-digits (e.g., "-top").
	if len(in[0]) > 1 && in[0][0] == '-' {
		if _, err := strconv.ParseInt(in[0], 10, 64); err != nil {
			return "0", in
		}
	}

	return in[0], removeFirstDashDash(in[1:])
}

func (a *App) view(ctx *cli.Context) error {
	arg, pprofArgs := parseViewArgs(ctx.Args().Slice())

	root, err := history.ExistingRoot()
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no history entries found")
	}

	// Sort by timestamp (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Run.Timestamp.After(entries[j].Run.Timestamp)
	})

	var target *history.Entry
	if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if parsed > 0 {
			return fmt.Errorf("invalid index: %s (use 0 for last, -1 for second-to-last, etc.)", arg)
		}
		index := int(-parsed)
		if index >= len(entries) {
			return fmt.Errorf("index %s out of range (only %d history entries)", arg, len(entries))
		}
		target = &entries[index]
	} else {
		hexID := strings.ToLower(arg)
		found := false
		for i := range entries {
			if strings.HasPrefix(strings.ToLower(entries[i].Run.ID), hexID) {
				target = &entries[i]
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no history entry found matching ID: %s", arg)
		}
	}

	return a.displayEntry(target, pprofArgs)
}

func (a *App) displayEntry(entry *history.Entry, pprofArgs []string) error {
	run := entry.Run

	fmt.Printf("=== Benchmark Run: %s ===\n", run.ID[:8])
	fmt.Printf("Time: %s\n", run.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", run.Duration)
	fmt.Printf("Tuples: %d (failures: %d)\n", run.Tuples, run.Failures)
	fmt.Printf("Kind: %s  Sizes: %v  Seed: %d\n",
		run.Selection.ElementKind, run.Selection.Sizes, run.Selection.Seed)
	fmt.Println()

	var reportArtifact *model.Artifact
	var profileArtifact *model.Artifact
	for i := range run.Artifacts {
		artifact := &run.Artifacts[i]
		switch artifact.Type {
		case model.ArtifactTypeReport:
			reportArtifact = artifact
		case model.ArtifactTypeCPUProfile:
			profileArtifact = artifact
		}
	}

	// With pprof args the user wants the profile; otherwise the report.
	if len(pprofArgs) > 0 {
		if profileArtifact == nil {
			return fmt.Errorf("run %s has no CPU profile artifact", run.ID[:8])
		}
		return a.displayProfile(entry.FullPath, profileArtifact, pprofArgs)
	}

	if reportArtifact != nil {
		return a.displayReport(entry.FullPath, reportArtifact)
	}

	fmt.Println("No displayable artifacts found")
	fmt.Printf("History directory: %s\n", entry.FullPath)
	return nil
}

func (a *App) displayReport(runDir string, artifact *model.Artifact) error {
	reportPath := filepath.Join(runDir, artifact.File)
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func (a *App) displayProfile(runDir string, artifact *model.Artifact, pprofArgs []string) error {
	profilePath := filepath.Join(runDir, artifact.File)
	fmt.Printf("Profile: %s (%.1f KB)\n", profilePath, float64(artifact.Size)/1024)

	args := []string{"tool", "pprof"}
	args = append(args, pprofArgs...)
	args = append(args, profilePath)

	cmd := exec.Command("go", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = runDir

	return cmd.Run()
}
