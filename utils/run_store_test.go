package utils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := OpenRunStore(filepath.Join(t.TempDir(), "history", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Minute).UTC().Truncate(time.Second)
	require.NoError(t, store.Record(RunRecord{
		Database:   "pfam",
		InputPath:  "/data/hits.tsv",
		RowsIn:     120,
		RowsOut:    80,
		DurationMS: 42,
		Status:     "completed",
		StartedAt:  base,
	}))
	require.NoError(t, store.Record(RunRecord{
		Database:  "cath",
		InputPath: "/data/cath.tsv",
		Status:    "failed",
		Error:     "required reference file missing: cath/model2family.tsv",
		StartedAt: base.Add(30 * time.Second),
	}))

	recent, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "cath", recent[0].Database, "newest first")
	assert.Equal(t, "failed", recent[0].Status)
	assert.Contains(t, recent[0].Error, "model2family")
	assert.NotEmpty(t, recent[0].ID, "missing id is generated")

	assert.Equal(t, "pfam", recent[1].Database)
	assert.Equal(t, 120, recent[1].RowsIn)
	assert.Equal(t, 80, recent[1].RowsOut)
	assert.Equal(t, int64(42), recent[1].DurationMS)
}

func TestRunStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(RunRecord{
			Database:  "antifam",
			InputPath: "/data/hits.tsv",
			Status:    "pass-through",
			StartedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestRunStore_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := OpenRunStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(RunRecord{
		Database: "pfam", InputPath: "a.tsv", Status: "completed",
	}))
	require.NoError(t, store.Close())

	reopened, err := OpenRunStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	recent, err := reopened.Recent(10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
