package handlers

import (
	"log"
	"net/http"
	"strconv"

	"icebreaker-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleState godoc
// @Summary      Subscribe to global state changes
// @Tags         websocket
// @Router       /ws/state [get]
func (h *WSHandler) HandleState(c *gin.Context) {
	h.serve(c, ws.TopicState)
}

// HandleLeaderboard godoc
// @Summary      Subscribe to all score ledger inserts
// @Tags         websocket
// @Router       /ws/leaderboard [get]
func (h *WSHandler) HandleLeaderboard(c *gin.Context) {
	h.serve(c, ws.TopicLeaderboard)
}

// HandleTeam godoc
// @Summary      Subscribe to one team's score ledger inserts
// @Tags         websocket
// @Param        id path int true "Team ID"
// @Router       /ws/teams/{id} [get]
func (h *WSHandler) HandleTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}
	h.serve(c, ws.TeamTopic(uint(teamID)))
}

func (h *WSHandler) serve(c *gin.Context, topic string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(topic, conn)
	defer h.hub.RemoveConnection(topic, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
