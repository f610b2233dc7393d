package handlers

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"campus-board-api/internal/database"
	"campus-board-api/internal/models"
	"campus-board-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// ChatHistoryLimit caps how many persisted messages GET /api/chat returns.
const ChatHistoryLimit = 100

// CreateChatMessageRequest represents the request payload for sending a message
type CreateChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// GetChatMessages handles GET /api/chat
// Returns the most recent messages in chronological order.
func GetChatMessages(c *gin.Context) {
	var messages []models.ChatMessage
	result := database.GetDB().Order("created_at desc").Limit(ChatHistoryLimit).Find(&messages)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	// Fetched newest-first for the limit; flip for display order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	for i := range messages {
		messages[i].AuthorName = authorName(messages[i].AuthorID)
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// CreateChatMessage handles POST /api/chat
// Persists the message, then broadcasts it to every connection except the
// sender's own (named by the X-Connection-Id header); the sender already
// rendered an optimistic copy.
func CreateChatMessage(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
			return
		}

		var req CreateChatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
			return
		}
		if utf8.RuneCountInString(message) > models.MaxChatMessageLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message too long (max 500 characters)"})
			return
		}

		record := models.ChatMessage{
			ID:       models.NewID(),
			Message:  message,
			AuthorID: userID,
		}
		if err := database.GetDB().Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		name := c.GetString("full_name")
		if name == "" {
			name = authorName(userID)
		}
		record.AuthorName = name

		hub.Publish(realtime.NewChatEvent(realtime.ChatPayload{
			ID:         record.ID,
			Message:    record.Message,
			AuthorName: name,
			CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
		}, c.GetHeader("X-Connection-Id")))

		c.JSON(http.StatusCreated, record)
	}
}
