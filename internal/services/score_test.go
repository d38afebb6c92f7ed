package services

import (
	"testing"
	"time"

	"icebreaker-backend/internal/models"
	"icebreaker-backend/internal/ws"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumDeltas(t *testing.T) {
	entries := []models.ScoreEntry{
		{Score: 5},
		{Score: -2},
		{Score: 10},
	}
	assert.Equal(t, 13, SumDeltas(entries))
	assert.Equal(t, 0, SumDeltas(nil))
	assert.Equal(t, -7, SumDeltas([]models.ScoreEntry{{Score: -7}}))
}

func TestTeamTotal(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewScoreService(db, ws.NewHub())

	rows := sqlmock.NewRows([]string{"id", "team_id", "score", "remarks", "isAdmin", "created_at"}).
		AddRow(1, 3, 5, "Question 1", false, time.Now()).
		AddRow(2, 3, -2, "Thief", true, time.Now()).
		AddRow(3, 3, 10, "Question 9", false, time.Now())

	mock.ExpectQuery(`SELECT \* FROM "zo_banfoo_25_score" WHERE team_id = \$1`).
		WithArgs(uint(3)).
		WillReturnRows(rows)

	total, err := svc.TeamTotal(3)
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamTotalEmptyLedger(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewScoreService(db, ws.NewHub())

	mock.ExpectQuery(`SELECT \* FROM "zo_banfoo_25_score" WHERE team_id = \$1`).
		WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "score"}))

	total, err := svc.TeamTotal(9)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestBuildLeaderboard(t *testing.T) {
	teams := []models.Team{
		{ID: 1, TeamName: "Group 01", Color: "#ff0000"},
		{ID: 2, TeamName: "Group 02", Color: "#00ff00"},
		{ID: 3, TeamName: "Group 03", Color: "#0000ff"},
	}
	entries := []models.ScoreEntry{
		{TeamID: 1, Score: 5},
		{TeamID: 1, Score: 10},
		{TeamID: 2, Score: 40},
	}

	rows := BuildLeaderboard(teams, entries, nil)
	require.Len(t, rows, 3)

	assert.Equal(t, uint(2), rows[0].TeamID)
	assert.Equal(t, 40, rows[0].Gold)
	assert.Equal(t, 1, rows[0].Position)

	assert.Equal(t, uint(1), rows[1].TeamID)
	assert.Equal(t, 15, rows[1].Gold)

	// Teams without entries still appear, at zero.
	assert.Equal(t, uint(3), rows[2].TeamID)
	assert.Equal(t, 0, rows[2].Gold)
	assert.Equal(t, 3, rows[2].Position)
}

func TestBuildLeaderboardFrozen(t *testing.T) {
	freezeAt := time.Date(2025, 11, 14, 20, 0, 0, 0, time.UTC)

	teams := []models.Team{
		{ID: 1, TeamName: "Group 01"},
		{ID: 2, TeamName: "Group 02"},
	}
	entries := []models.ScoreEntry{
		{TeamID: 1, Score: 10, CreatedAt: freezeAt.Add(-time.Hour)},
		{TeamID: 2, Score: 5, CreatedAt: freezeAt.Add(-time.Minute)},
		// Scored after the freeze moment: must not move the board.
		{TeamID: 2, Score: 100, CreatedAt: freezeAt.Add(time.Minute)},
	}

	rows := BuildLeaderboard(teams, entries, &freezeAt)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(1), rows[0].TeamID)
	assert.Equal(t, 10, rows[0].Gold)
	assert.Equal(t, 5, rows[1].Gold)

	// Unfrozen, the late entry counts.
	rows = BuildLeaderboard(teams, entries, nil)
	assert.Equal(t, uint(2), rows[0].TeamID)
	assert.Equal(t, 105, rows[0].Gold)
}

func TestBuildLeaderboardEntryAtFreezeMoment(t *testing.T) {
	freezeAt := time.Date(2025, 11, 14, 20, 0, 0, 0, time.UTC)

	teams := []models.Team{{ID: 1, TeamName: "Group 01"}}
	entries := []models.ScoreEntry{{TeamID: 1, Score: 7, CreatedAt: freezeAt}}

	rows := BuildLeaderboard(teams, entries, &freezeAt)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].Gold)
}
