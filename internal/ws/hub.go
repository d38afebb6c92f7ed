package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Topics clients can subscribe to. Team-scoped score feeds use TeamTopic.
const (
	TopicState       = "state"
	TopicLeaderboard = "leaderboard"
)

func TeamTopic(teamID uint) string {
	return fmt.Sprintf("team:%d", teamID)
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// StateEvent notifies clients that a global state row changed. Deltas, when
// present, carries the exact per-team gold change the event applied so
// clients never have to infer it from before/after snapshots.
type StateEvent struct {
	Key       string       `json:"key"`
	Value     string       `json:"value"`
	UpdatedAt time.Time    `json:"time_updated"`
	Deltas    map[uint]int `json:"deltas,omitempty"`
}

// ScoreEvent notifies clients of a single ledger insert.
type ScoreEvent struct {
	TeamID    uint      `json:"team_id"`
	Delta     int       `json:"score"`
	Remarks   string    `json:"remarks"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
}

// client wraps a connection with the last state-event stamp it has seen per
// key, so replays of the same row (reconnects, pulse reverts that lost the
// race) are delivered at most once.
type client struct {
	conn *websocket.Conn
	seen map[string]time.Time
}

type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*websocket.Conn]*client),
	}
}

func (h *Hub) AddConnection(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*websocket.Conn]*client)
	}
	h.topics[topic][conn] = &client{conn: conn, seen: make(map[string]time.Time)}
	log.Printf("ws: client subscribed to %s (total: %d)", topic, len(h.topics[topic]))
}

func (h *Hub) RemoveConnection(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[topic]; ok {
		delete(clients, conn)
		conn.Close()
		if len(clients) == 0 {
			delete(h.topics, topic)
		}
		log.Printf("ws: client unsubscribed from %s", topic)
	}
}

// Broadcast sends a message to every connection on a topic.
func (h *Hub) Broadcast(topic string, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.topics[topic] {
		h.write(topic, conn, data)
	}
}

// BroadcastState fans out a state event on the state topic, skipping
// connections that already saw this key at this stamp.
func (h *Hub) BroadcastState(event StateEvent) {
	data, err := json.Marshal(WSMessage{Type: "state_changed", Data: event})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, c := range h.topics[TopicState] {
		if !event.UpdatedAt.IsZero() {
			if last, ok := c.seen[event.Key]; ok && last.Equal(event.UpdatedAt) {
				continue
			}
			c.seen[event.Key] = event.UpdatedAt
		}
		h.write(TopicState, conn, data)
	}
}

// BroadcastScore fans out a ledger insert to the leaderboard topic and the
// owning team's topic.
func (h *Hub) BroadcastScore(event ScoreEvent) {
	msg := WSMessage{Type: "score_added", Data: event}
	h.Broadcast(TopicLeaderboard, msg)
	h.Broadcast(TeamTopic(event.TeamID), msg)
}

// write must be called with h.mu held.
func (h *Hub) write(topic string, conn *websocket.Conn, data []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("ws: write error on %s: %v", topic, err)
		conn.Close()
		delete(h.topics[topic], conn)
	}
}
