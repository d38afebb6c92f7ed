package handlers

import (
	"net/http"

	"icebreaker-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StateHandler struct {
	stateService *services.StateService
}

func NewStateHandler(stateService *services.StateService) *StateHandler {
	return &StateHandler{stateService: stateService}
}

// ListState godoc
// @Summary      All global state rows
// @Tags         state
// @Produce      json
// @Success      200 {array} GlobalState
// @Router       /api/v1/state [get]
func (h *StateHandler) ListState(c *gin.Context) {
	states, err := h.stateService.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read state"})
		return
	}
	c.JSON(http.StatusOK, states)
}

// GetState godoc
// @Summary      One global state row
// @Tags         state
// @Produce      json
// @Param        key path string true "State key"
// @Success      200 {object} GlobalState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/state/{key} [get]
func (h *StateHandler) GetState(c *gin.Context) {
	state, err := h.stateService.Get(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}
