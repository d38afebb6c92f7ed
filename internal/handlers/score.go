package handlers

import (
	"net/http"
	"strconv"

	"icebreaker-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
	teamService  *services.TeamService
}

func NewScoreHandler(scoreService *services.ScoreService, teamService *services.TeamService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService, teamService: teamService}
}

type GoldResponse struct {
	TeamID uint `json:"team_id"`
	Gold   int  `json:"gold"`
}

// GetTeamGold godoc
// @Summary      Current gold of one team (sum of its ledger)
// @Tags         scores
// @Produce      json
// @Param        id path int true "Team ID"
// @Success      200 {object} GoldResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/teams/{id}/gold [get]
func (h *ScoreHandler) GetTeamGold(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	gold, err := h.scoreService.TeamTotal(uint(teamID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get score"})
		return
	}

	c.JSON(http.StatusOK, GoldResponse{TeamID: uint(teamID), Gold: gold})
}

// GetLeaderboard godoc
// @Summary      Freeze-aware team ranking
// @Tags         scores
// @Produce      json
// @Success      200 {array} services.LeaderboardRow
// @Router       /api/v1/leaderboard [get]
func (h *ScoreHandler) GetLeaderboard(c *gin.Context) {
	rows, err := h.scoreService.Leaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build leaderboard"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type AddScoreRequest struct {
	TeamID  uint   `json:"team_id" binding:"required"`
	Score   int    `json:"score" binding:"required"`
	Remarks string `json:"remarks"`
}

// AddScore godoc
// @Summary      Append a signed ledger entry for a team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddScoreRequest true "Score adjustment"
// @Success      201 {object} ScoreEntry
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/scores [post]
func (h *ScoreHandler) AddScore(c *gin.Context) {
	var req AddScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.teamService.GetTeam(req.TeamID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.scoreService.AddEntry(req.TeamID, req.Score, req.Remarks, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to add score"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ScoreOverview godoc
// @Summary      Per-team gold totals for the admin panel
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} GoldResponse
// @Router       /api/v1/admin/scores/overview [get]
func (h *ScoreHandler) ScoreOverview(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list teams"})
		return
	}

	totals, err := h.scoreService.TotalsByTeam()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to aggregate scores"})
		return
	}

	overview := make([]GoldResponse, len(teams))
	for i, t := range teams {
		overview[i] = GoldResponse{TeamID: t.ID, Gold: totals[t.ID]}
	}
	c.JSON(http.StatusOK, overview)
}
