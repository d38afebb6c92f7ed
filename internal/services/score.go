package services

import (
	"sort"
	"time"

	"icebreaker-backend/internal/models"
	"icebreaker-backend/internal/ws"

	"gorm.io/gorm"
)

type ScoreService struct {
	db  *gorm.DB
	hub *ws.Hub
}

func NewScoreService(db *gorm.DB, hub *ws.Hub) *ScoreService {
	return &ScoreService{db: db, hub: hub}
}

// SumDeltas is the score aggregate: the sum of all ledger deltas. An empty
// ledger sums to zero; negative totals are possible and not clamped here.
func SumDeltas(entries []models.ScoreEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Score
	}
	return total
}

// TeamTotal recomputes a team's gold from its ledger rows. No cached total
// exists anywhere; callers re-run this after every mutating action.
func (s *ScoreService) TeamTotal(teamID uint) (int, error) {
	var entries []models.ScoreEntry
	if err := s.db.Where("team_id = ?", teamID).Find(&entries).Error; err != nil {
		return 0, err
	}
	return SumDeltas(entries), nil
}

// TotalsByTeam aggregates the whole ledger into per-team totals. Teams with
// no entries are absent from the map.
func (s *ScoreService) TotalsByTeam() (map[uint]int, error) {
	var entries []models.ScoreEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, err
	}

	totals := make(map[uint]int)
	for _, e := range entries {
		totals[e.TeamID] += e.Score
	}
	return totals, nil
}

// AddEntry appends one ledger row and broadcasts it with its exact delta.
func (s *ScoreService) AddEntry(teamID uint, delta int, remarks string, isAdmin bool) (*models.ScoreEntry, error) {
	entry := models.ScoreEntry{
		TeamID:  teamID,
		Score:   delta,
		Remarks: remarks,
		IsAdmin: isAdmin,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	s.hub.BroadcastScore(ws.ScoreEvent{
		TeamID:    entry.TeamID,
		Delta:     entry.Score,
		Remarks:   entry.Remarks,
		IsAdmin:   entry.IsAdmin,
		CreatedAt: entry.CreatedAt,
	})
	return &entry, nil
}

type LeaderboardRow struct {
	Position int    `json:"position"`
	TeamID   uint   `json:"team_id"`
	TeamName string `json:"team_name"`
	Color    string `json:"color"`
	Gold     int    `json:"gold"`
}

// BuildLeaderboard ranks every registered team by summed gold, descending.
// When cutoff is set (leaderboard frozen) only entries created at or before
// the cutoff count; teams without entries still appear at zero.
func BuildLeaderboard(teams []models.Team, entries []models.ScoreEntry, cutoff *time.Time) []LeaderboardRow {
	totals := make(map[uint]int)
	for _, e := range entries {
		if cutoff != nil && e.CreatedAt.After(*cutoff) {
			continue
		}
		totals[e.TeamID] += e.Score
	}

	rows := make([]LeaderboardRow, len(teams))
	for i, t := range teams {
		rows[i] = LeaderboardRow{
			TeamID:   t.ID,
			TeamName: t.TeamName,
			Color:    t.Color,
			Gold:     totals[t.ID],
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Gold != rows[b].Gold {
			return rows[a].Gold > rows[b].Gold
		}
		return rows[a].TeamName < rows[b].TeamName
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// Leaderboard returns the freeze-aware ranking. While the freeze flag is set,
// the freeze row's time_updated is the snapshot moment.
func (s *ScoreService) Leaderboard() ([]LeaderboardRow, error) {
	var teams []models.Team
	if err := s.db.Order("team_name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}

	var entries []models.ScoreEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, err
	}

	var cutoff *time.Time
	var freeze models.GlobalState
	if err := s.db.Where("key = ?", models.StateKeyFreeze).First(&freeze).Error; err == nil {
		if freeze.BoolValue() {
			t := freeze.TimeUpdated
			cutoff = &t
		}
	}

	return BuildLeaderboard(teams, entries, cutoff), nil
}
