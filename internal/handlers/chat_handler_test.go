package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"campus-board-api/internal/auth"
	"campus-board-api/internal/database"
	"campus-board-api/internal/middleware"
	"campus-board-api/internal/models"
	"campus-board-api/internal/realtime"
	"campus-board-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// recClient implements realtime.Client and records delivered frames.
type recClient struct {
	mu     sync.Mutex
	frames [][]byte
}

func (c *recClient) Send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := append([]byte(nil), message...)
	c.frames = append(c.frames, cp)
	return true
}

func (c *recClient) Close() {}

func (c *recClient) countKind(t *testing.T, kind string) int {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, frame := range c.frames {
		var decoded struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(frame, &decoded))
		if decoded.Type == kind {
			n++
		}
	}
	return n
}

func TestCreateChatMessage_BroadcastsExcludingOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	hub := realtime.NewHub(0)
	senderConn, otherConn := &recClient{}, &recClient{}
	originID, err := hub.Admit(senderConn, "u-chat-1", "Ann Chu")
	require.NoError(t, err)
	_, err = hub.Admit(otherConn, "u-chat-2", "Bob")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/chat", CreateChatMessage(hub))

	token, err := auth.GenerateToken("u-chat-1", "Ann Chu")
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"message": "  hello board  "})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Connection-Id", originID)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "hello board", created.Message)
	require.Equal(t, "Ann Chu", created.AuthorName)

	require.Equal(t, 0, senderConn.countKind(t, "chat"))
	require.Equal(t, 1, otherConn.countKind(t, "chat"))
	require.Equal(t, 1, hub.History().Len())

	// Persisted too, not just broadcast
	var stored models.ChatMessage
	require.NoError(t, db.Where("id = ?", created.ID).First(&stored).Error)
	require.Equal(t, "hello board", stored.Message)
}

func TestCreateChatMessage_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	hub := realtime.NewHub(0)
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/chat", CreateChatMessage(hub))

	token, err := auth.GenerateToken("u-chat-1", "Ann Chu")
	require.NoError(t, err)

	send := func(message string) int {
		body, _ := json.Marshal(map[string]string{"message": message})
		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusBadRequest, send("   "))
	require.Equal(t, http.StatusBadRequest, send(string(bytes.Repeat([]byte("x"), models.MaxChatMessageLength+1))))
	require.Equal(t, http.StatusBadRequest, send(strings.Repeat("é", models.MaxChatMessageLength+1)))
	require.Equal(t, 0, hub.History().Len())

	// The limit is characters, not bytes: 500 two-byte runes is a legal message
	require.Equal(t, http.StatusCreated, send(strings.Repeat("é", models.MaxChatMessageLength)))
	require.Equal(t, 1, hub.History().Len())
}

func TestGetChatMessages_ChronologicalWithAuthors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	author := models.User{ID: "u-hist-1", Email: "bob@unilag.edu.ng", StudentID: "202411111", FullName: "Bob", PasswordHash: "x"}
	require.NoError(t, db.Create(&author).Error)

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"first", "second", "third"} {
		msg := models.ChatMessage{ID: models.NewID(), Message: text, AuthorID: author.ID}
		msg.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&msg).Error)
	}

	r := gin.New()
	r.GET("/api/chat", GetChatMessages)

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []models.ChatMessage `json:"messages"`
		Count    int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	require.Equal(t, "first", resp.Messages[0].Message)
	require.Equal(t, "third", resp.Messages[2].Message)
	require.Equal(t, "Bob", resp.Messages[0].AuthorName)
}
