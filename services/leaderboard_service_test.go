package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEntriesOrdering(t *testing.T) {
	early := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	entries := RankEntries([]LeaderboardEntry{
		{Name: "carol", CompletedLevels: 2, TotalAttempts: 8, StartTime: &early},
		{Name: "alice", CompletedLevels: 5, TotalAttempts: 12, StartTime: &late},
		{Name: "bob", CompletedLevels: 5, TotalAttempts: 7, StartTime: &late},
		{Name: "dave", CompletedLevels: 5, TotalAttempts: 7, StartTime: &early},
	})

	require.Len(t, entries, 4)
	// Completed levels desc, then attempts asc, then start time asc
	assert.Equal(t, "dave", entries[0].Name)
	assert.Equal(t, "bob", entries[1].Name)
	assert.Equal(t, "alice", entries[2].Name)
	assert.Equal(t, "carol", entries[3].Name)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRankEntriesNilStartTimeSortsLast(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	entries := RankEntries([]LeaderboardEntry{
		{Name: "never-started", CompletedLevels: 3, TotalAttempts: 4},
		{Name: "started", CompletedLevels: 3, TotalAttempts: 4, StartTime: &start},
	})

	assert.Equal(t, "started", entries[0].Name)
	assert.Equal(t, "never-started", entries[1].Name)
}

func TestTruncate(t *testing.T) {
	entries := []LeaderboardEntry{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, truncate(entries, 2), 2)
	assert.Len(t, truncate(entries, 0), 3)
	assert.Len(t, truncate(entries, 10), 3)
}
