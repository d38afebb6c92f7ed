package handlers

import (
	"net/http"

	"icebreaker-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.GameEventService
}

func NewEventHandler(eventService *services.GameEventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ToggleFreeze godoc
// @Summary      Freeze or unfreeze the leaderboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} GlobalState
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/freeze [post]
func (h *EventHandler) ToggleFreeze(c *gin.Context) {
	state, err := h.eventService.ToggleFreeze()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update freeze state"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// TriggerDisaster godoc
// @Summary      Trigger a natural disaster (every team loses half its gold)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/disaster [post]
func (h *EventHandler) TriggerDisaster(c *gin.Context) {
	deltas, err := h.eventService.TriggerNaturalDisaster()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to trigger natural disaster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "natural disaster triggered", "deltas": deltas})
}

// TriggerPeace godoc
// @Summary      Trigger world peace (every team's gold is doubled)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/peace [post]
func (h *EventHandler) TriggerPeace(c *gin.Context) {
	deltas, err := h.eventService.TriggerWorldPeace()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to trigger world peace"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "world peace triggered", "deltas": deltas})
}

type StartAidRequest struct {
	Goal int `json:"goal" binding:"required,min=1"`
}

// StartAid godoc
// @Summary      Open a disaster aid donation round
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StartAidRequest true "Donation goal"
// @Success      200 {object} services.AidRound
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/aid/start [post]
func (h *EventHandler) StartAid(c *gin.Context) {
	var req StartAidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	round, err := h.eventService.StartDisasterAid(req.Goal)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, round)
}

// EndAid godoc
// @Summary      Close the disaster aid round and report the pool
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/aid/end [post]
func (h *EventHandler) EndAid(c *gin.Context) {
	pool, err := h.eventService.EndDisasterAid()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pool": pool})
}

type DonateRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	Amount int  `json:"amount" binding:"required,min=1"`
}

// Donate godoc
// @Summary      Donate gold to the open disaster aid round
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body DonateRequest true "Donation"
// @Success      201 {object} ScoreEntry
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/aid/donate [post]
func (h *EventHandler) Donate(c *gin.Context) {
	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.eventService.Donate(req.TeamID, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

type ThiefRequest struct {
	VictimTeamID      uint `json:"victim_team_id" binding:"required"`
	BeneficiaryTeamID uint `json:"beneficiary_team_id" binding:"required"`
	Amount            int  `json:"amount" binding:"required,min=1"`
}

// TriggerThief godoc
// @Summary      Move gold from a victim team to a beneficiary team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ThiefRequest true "Thief event"
// @Success      200 {object} services.ThiefEvent
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/thief [post]
func (h *EventHandler) TriggerThief(c *gin.Context) {
	var req ThiefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event, err := h.eventService.TriggerThief(req.VictimTeamID, req.BeneficiaryTeamID, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}
