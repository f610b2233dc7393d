package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"campus-board-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// wsClient implements realtime.Client by wrapping a websocket connection.
// writeMu guards WriteMessage: gorilla/websocket supports at most one
// concurrent writer, and the handshake/replay writes here can race the
// hub's broadcast path.
type wsClient struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// WebSocketHandler upgrades the connection, admits it to the hub under the
// identity the JWT middleware resolved, replays recent history, and keeps
// the connection alive until the reader loop exits.
func WebSocketHandler(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
			return
		}
		displayName := c.GetString("full_name")
		if displayName == "" {
			displayName = authorName(userID)
		}

		// Upgrade HTTP connection to WebSocket
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "error", err)
			return
		}

		client := &wsClient{conn: conn}
		connID, err := hub.Admit(client, userID, displayName)
		if err != nil {
			// Duplicate handshake on the same transport; reject the second one
			deadline := time.Now().Add(time.Second)
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "duplicate connection")
			_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
			client.Close()
			return
		}

		// Tell the client its assigned connection id; chat POSTs echo it back
		// in X-Connection-Id so the sender is excluded from its own broadcast.
		ack, _ := json.Marshal(map[string]any{
			"type": "connected",
			"data": map[string]string{"connectionId": connID},
		})
		if !client.Send(ack) {
			hub.Evict(connID)
			client.Close()
			return
		}

		// Replay buffered broadcasts for this late joiner
		for _, frame := range hub.History().Snapshot() {
			if !client.Send(frame) {
				break
			}
		}

		// Heartbeat: send periodic pings; close on error
		pingTicker := time.NewTicker(30 * time.Second)
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case <-pingTicker.C:
					if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
						// ping failed; reader loop will exit on next error
						return
					}
				}
			}
		}()
		defer func() {
			close(done)
			pingTicker.Stop()
			hub.Evict(connID)
			client.Close()
		}()

		// Reader loop: drain messages and keep connection alive via pong handler
		conn.SetReadLimit(1024)
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				// Normal close or error; exit loop
				return
			}
		}
	}
}
