package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/seqbench/seqbench/model"
)

func writeRun(t *testing.T, root, dir string, run model.Run) {
	t.Helper()
	full := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(full, 0o755))
	data, err := json.Marshal(run)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(full, "history.json"), data, 0o644))
}

func TestLoadEntries(t *testing.T) {
	root := t.TempDir()
	writeRun(t, root, "history/20260101-000000-aaaaaaaa", model.Run{
		ID:        "aaaaaaaa00000000",
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Tuples:    12,
	})
	writeRun(t, root, "history/20260102-000000-bbbbbbbb", model.Run{
		ID:        "bbbbbbbb00000000",
		Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Tuples:    6,
		Failures:  1,
	})

	entries, err := LoadEntries(zerolog.Nop(), root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := make(map[string]Entry)
	for _, e := range entries {
		byID[e.Run.ID] = e
	}
	require.Contains(t, byID, "aaaaaaaa00000000")
	require.Contains(t, byID, "bbbbbbbb00000000")
	require.Equal(t, 1, byID["bbbbbbbb00000000"].Run.Failures)
	require.DirExists(t, byID["aaaaaaaa00000000"].FullPath)
}

func TestLoadEntries_SkipsMalformedRuns(t *testing.T) {
	root := t.TempDir()
	writeRun(t, root, "history/20260101-000000-aaaaaaaa", model.Run{ID: "aaaaaaaa00000000"})

	broken := filepath.Join(root, "history", "20260103-000000-cccccccc")
	require.NoError(t, os.MkdirAll(broken, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(broken, "history.json"), []byte("{not json"), 0o644))

	entries, err := LoadEntries(zerolog.Nop(), root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "aaaaaaaa00000000", entries[0].Run.ID)
}

func TestLoadEntries_EmptyRoot(t *testing.T) {
	entries, err := LoadEntries(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, entries)
}
