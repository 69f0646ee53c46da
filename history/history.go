package history

// This file contains shared history utilities for loading and parsing
// benchmark run history.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seqbench/seqbench/model"
)

type Entry struct {
	Run      model.Run
	FullPath string
}

// Root returns the directory run history lives under: .seqbench at the
// git repository root when inside one, otherwise at the working
// directory.
func Root() (string, error) {
	base, err := repoRoot()
	if err != nil {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
	}
	return filepath.Join(base, ".seqbench"), nil
}

// ExistingRoot is Root, but errors when no history has been recorded
// yet.
func ExistingRoot() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return "", fmt.Errorf("no benchmark runs found in %s", root)
	}
	return root, nil
}

func repoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// LoadEntries loads all run entries from the .seqbench directory.
func LoadEntries(logger zerolog.Logger, root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			runPath := filepath.Join(path, "history.json")
			if _, err := os.Stat(runPath); err == nil {
				run, err := parseRunJSON(runPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", runPath).Msg("Failed to parse history.json")
					return nil
				}

				entries = append(entries, Entry{
					Run:      run,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk .seqbench directory: %w", err)
	}

	return entries, nil
}

// parseRunJSON parses a history.json file.
func parseRunJSON(path string) (model.Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Run{}, err
	}

	var run model.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return model.Run{}, err
	}

	return run, nil
}
