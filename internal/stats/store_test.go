package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(total int) model.RunSummary {
	return model.RunSummary{
		Metadata: model.Metadata{
			TeamName:    "Engineering",
			TeamID:      "t1",
			Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			TotalIssues: total,
			Schedule:    constants.DefaultSchedule,
		},
		Statistics: model.StatusTally{Todo: total},
	}
}

func TestAppendAndRecent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "history.jsonl"))

	got, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Append(summary(42)))
	require.NoError(t, s.Append(summary(50)))

	got, err = s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 42, got[0].Metadata.TotalIssues)
	assert.Equal(t, 50, got[1].Metadata.TotalIssues)
	assert.Equal(t, summary(50), got[1])
}

func TestRecentLimitsResults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))

	for i := range 10 {
		require.NoError(t, s.Append(summary(i)))
	}

	got, err := s.Recent(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 7, got[0].Metadata.TotalIssues)
	assert.Equal(t, 9, got[2].Metadata.TotalIssues)
}

func TestPrune(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))

	for i := range constants.MaxHistoryRecords + 5 {
		require.NoError(t, s.Append(summary(i)))
	}

	got, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, constants.MaxHistoryRecords)
	assert.Equal(t, 5, got[0].Metadata.TotalIssues)
}

func TestMalformedLinesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n\n"), 0o644))
	s := NewStore(path)

	require.NoError(t, s.Append(summary(1)))

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Metadata.TotalIssues)
}

func TestNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "history.jsonl"))

	require.NoError(t, s.Append(summary(1)))

	_, err := os.Stat(filepath.Join(dir, "history.jsonl.tmp"))
	assert.True(t, os.IsNotExist(err))
}
