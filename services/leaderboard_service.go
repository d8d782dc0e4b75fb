package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"ctfapi/database"
	"ctfapi/metrics"
	"ctfapi/models"
	"ctfapi/utils"
)

const (
	leaderboardCacheKey = "leaderboard:snapshot"
	leaderboardCacheTTL = 30 * time.Second
)

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank            int        `json:"rank"`
	Name            string     `json:"name"`
	CompletedLevels int        `json:"completed_levels"`
	TotalAttempts   int        `json:"total_attempts"`
	Score           int        `json:"score"`
	StartTime       *time.Time `json:"challenge_start_time,omitempty"`
	CompletionTime  *time.Time `json:"completion_time,omitempty"`
}

// RankEntries sorts entries by completed-level count (desc), tie-broken by
// attempt count (asc) then start time (asc), and assigns 1-indexed ranks.
func RankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CompletedLevels != entries[j].CompletedLevels {
			return entries[i].CompletedLevels > entries[j].CompletedLevels
		}
		if entries[i].TotalAttempts != entries[j].TotalAttempts {
			return entries[i].TotalAttempts < entries[j].TotalAttempts
		}
		switch {
		case entries[i].StartTime == nil:
			return false
		case entries[j].StartTime == nil:
			return true
		default:
			return entries[i].StartTime.Before(*entries[j].StartTime)
		}
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// GetLeaderboard returns the ranked leaderboard, served from a short-lived
// redis cache when available.
func GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if cached, err := database.RDB.Get(ctx, leaderboardCacheKey).Result(); err == nil {
		var entries []LeaderboardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return truncate(entries, limit), nil
		}
	}

	var progresses []models.Progress
	queryStart := time.Now()
	if err := database.DB.
		Where("challenge_start_time IS NOT NULL").
		Preload("User").
		Find(&progresses).Error; err != nil {
		return nil, err
	}
	metrics.RecordDBOperation("select", "progresses", queryStart)

	// Points per level for the informational score
	pointsByLevel := make(map[int]int)
	var challenges []models.Challenge
	if err := database.DB.Find(&challenges).Error; err == nil {
		for _, ch := range challenges {
			pointsByLevel[ch.Level] = ch.Points
		}
	}

	entries := make([]LeaderboardEntry, 0, len(progresses))
	for _, p := range progresses {
		name := "unknown"
		if p.User != nil {
			name = p.User.Name
		}
		points := 0
		for _, level := range p.CompletedLevels {
			points += pointsByLevel[level]
		}
		var timeSpent time.Duration
		if p.ChallengeStartTime != nil && p.CompletionTime != nil {
			timeSpent = p.CompletionTime.Sub(*p.ChallengeStartTime)
		}
		entries = append(entries, LeaderboardEntry{
			Name:            name,
			CompletedLevels: len(p.CompletedLevels),
			TotalAttempts:   p.TotalAttempts,
			Score:           utils.CalculateScore(points, p.TotalAttempts, timeSpent),
			StartTime:       p.ChallengeStartTime,
			CompletionTime:  p.CompletionTime,
		})
	}

	entries = RankEntries(entries)

	if payload, err := json.Marshal(entries); err == nil {
		if err := database.RDB.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache leaderboard: %v", err)
		}
	}

	return truncate(entries, limit), nil
}

func truncate(entries []LeaderboardEntry, limit int) []LeaderboardEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
