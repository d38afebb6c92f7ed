package handlers

import (
	"net/http"

	"icebreaker-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListTeams godoc
// @Summary      List all teams
// @Tags         teams
// @Produce      json
// @Success      200 {array} Team
// @Router       /api/v1/teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list teams"})
		return
	}
	c.JSON(http.StatusOK, teams)
}

type CreateTeamRequest struct {
	TeamName string `json:"team_name" binding:"required,min=1,max=100"`
	Color    string `json:"color"`
}

// CreateTeam godoc
// @Summary      Register a team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTeamRequest true "Team data"
// @Success      201 {object} Team
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(req.TeamName, req.Color)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, team)
}
