package cli

// This file contains run recording functionality for saving benchmark
// run metadata and artifacts to the history directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seqbench/seqbench/history"
	"github.com/seqbench/seqbench/model"
)

const (
	reportFile     = "report.txt"
	resultsFile    = "results.json"
	cpuProfileFile = "cpu.pprof"
	metadataFile   = "history.json"
)

// prepareRunDir creates .seqbench/history/<timestamp>-<id> for the run.
func (a *App) prepareRunDir(run *model.Run) (string, error) {
	root, err := history.Root()
	if err != nil {
		return "", err
	}

	timestamp := run.Timestamp.Format("20060102-150405")
	shortID := run.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	runDir := filepath.Join(root, "history", fmt.Sprintf("%s-%s", timestamp, shortID))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return runDir, nil
}

// recordRun writes the report artifacts and run metadata.
func (a *App) recordRun(run *model.Run, runDir string, reportText, records []byte) error {
	if err := a.saveArtifact(run, runDir, reportFile, model.ArtifactTypeReport, reportText); err != nil {
		return err
	}
	if err := a.saveArtifact(run, runDir, resultsFile, model.ArtifactTypeResults, records); err != nil {
		return err
	}

	// The profile is written directly to the run directory while the
	// run executes; only register it.
	profilePath := filepath.Join(runDir, cpuProfileFile)
	if info, err := os.Stat(profilePath); err == nil {
		run.Artifacts = append(run.Artifacts, model.Artifact{
			Type: model.ArtifactTypeCPUProfile,
			Size: uint64(info.Size()),
			File: cpuProfileFile,
		})
	}

	metadataJSON, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run metadata: %w", err)
	}
	metadataPath := filepath.Join(runDir, metadataFile)
	if err := os.WriteFile(metadataPath, metadataJSON, 0644); err != nil {
		return fmt.Errorf("failed to write run metadata: %w", err)
	}

	a.logger.Debug().Str("dir", runDir).Str("id", run.ID).Msg("Recorded benchmark run")
	return nil
}

func (a *App) saveArtifact(run *model.Run, runDir, name string, typ model.ArtifactType, data []byte) error {
	path := filepath.Join(runDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	run.Artifacts = append(run.Artifacts, model.Artifact{
		Type: typ,
		Size: uint64(len(data)),
		File: name,
	})
	return nil
}
