package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub upgrades a test connection and registers it on the hub, returning
// the client side once the server side is subscribed.
func dialHub(t *testing.T, hub *Hub, topic string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	ready := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.AddConnection(topic, conn)
		close(ready)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription never registered")
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// expectSilence must be the last read on conn: gorilla fails the reader
// permanently once the deadline expires.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "expected no message")
}

func TestTeamTopic(t *testing.T) {
	assert.Equal(t, "team:7", TeamTopic(7))
}

func TestBroadcastState(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, TopicState)

	stamp := time.Now()
	hub.BroadcastState(StateEvent{Key: "freeze", Value: "true", UpdatedAt: stamp})

	msg := readMessage(t, conn)
	assert.Equal(t, "state_changed", msg.Type)

	payload := msg.Data.(map[string]interface{})
	assert.Equal(t, "freeze", payload["key"])
	assert.Equal(t, "true", payload["value"])
}

func TestBroadcastStateDedupesByStamp(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, TopicState)

	stamp := time.Now()
	hub.BroadcastState(StateEvent{Key: "freeze", Value: "true", UpdatedAt: stamp})
	readMessage(t, conn)

	// The replay at the same stamp is skipped, so the next message on the
	// wire is the fresh-stamp broadcast. Both halves of the contract hang on
	// this one read: were the replay delivered, it would arrive first and
	// carry "true".
	hub.BroadcastState(StateEvent{Key: "freeze", Value: "true", UpdatedAt: stamp})
	hub.BroadcastState(StateEvent{Key: "freeze", Value: "false", UpdatedAt: stamp.Add(time.Second)})

	msg := readMessage(t, conn)
	payload := msg.Data.(map[string]interface{})
	assert.Equal(t, "false", payload["value"])
	expectSilence(t, conn)
}

func TestBroadcastStateDedupeIsPerKey(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, TopicState)

	stamp := time.Now()
	hub.BroadcastState(StateEvent{Key: "freeze", Value: "true", UpdatedAt: stamp})
	readMessage(t, conn)

	// A different key at the same stamp is not a replay.
	hub.BroadcastState(StateEvent{Key: "worldPeace", Value: "true", UpdatedAt: stamp})
	msg := readMessage(t, conn)
	payload := msg.Data.(map[string]interface{})
	assert.Equal(t, "worldPeace", payload["key"])
}

func TestBroadcastScore(t *testing.T) {
	hub := NewHub()
	leaderboard := dialHub(t, hub, TopicLeaderboard)
	team := dialHub(t, hub, TeamTopic(3))
	other := dialHub(t, hub, TeamTopic(4))

	hub.BroadcastScore(ScoreEvent{TeamID: 3, Delta: 10, Remarks: "Question 7", CreatedAt: time.Now()})

	msg := readMessage(t, leaderboard)
	assert.Equal(t, "score_added", msg.Type)

	msg = readMessage(t, team)
	payload := msg.Data.(map[string]interface{})
	assert.Equal(t, float64(3), payload["team_id"])
	assert.Equal(t, float64(10), payload["score"])
	assert.Equal(t, "Question 7", payload["remarks"])

	expectSilence(t, other)
}

func TestBroadcastToEmptyTopic(t *testing.T) {
	hub := NewHub()
	// Nothing to deliver to; must not panic.
	hub.Broadcast(TopicLeaderboard, WSMessage{Type: "score_added"})
}
