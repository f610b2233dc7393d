package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campus-board-api/internal/database"
	"campus-board-api/internal/models"
	"campus-board-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateNoticeRequest represents the request payload for posting a notice
type CreateNoticeRequest struct {
	Title     string                `json:"title" binding:"required"`
	Content   string                `json:"content" binding:"required"`
	Category  string                `json:"category"`
	Priority  models.NoticePriority `json:"priority"`
	ExpiresAt string                `json:"expiresAt"`
}

// UpdateNoticeRequest represents the request payload for editing a notice
type UpdateNoticeRequest struct {
	Title     *string                `json:"title"`
	Content   *string                `json:"content"`
	Category  *string                `json:"category"`
	Priority  *models.NoticePriority `json:"priority"`
	ExpiresAt *string                `json:"expiresAt"`
}

// PinNoticeRequest represents the pin toggle payload
type PinNoticeRequest struct {
	IsPinned *bool `json:"isPinned" binding:"required"`
}

func validPriority(p models.NoticePriority) bool {
	switch p {
	case models.PriorityNormal, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

/*
*
GetNotices handles GET /api/notices
Returns unexpired notices, pinned first then newest first.
Optional query params: category, search (title/content substring), limit.
*/
func GetNotices(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	db := database.GetDB()
	query := db.Model(&models.Notice{}).Where("expires_at > ?", time.Now())

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var notices []models.Notice
	result := query.Order("is_pinned desc, created_at desc").Limit(limit).Find(&notices)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notices"})
		return
	}

	for i := range notices {
		notices[i].AuthorName = authorName(notices[i].AuthorID)
	}

	c.JSON(http.StatusOK, gin.H{
		"notices": notices,
		"count":   len(notices),
	})
}

/*
*
CreateNotice handles POST /api/notices
Persists the notice and broadcasts it to every connection, including the
creator's own sessions.
*/
func CreateNotice(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
			return
		}

		var req CreateNoticeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
			return
		}

		category := strings.TrimSpace(req.Category)
		if category == "" {
			category = "general"
		}
		priority := req.Priority
		if priority == "" {
			priority = models.PriorityNormal
		}
		if !validPriority(priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}

		expiresAt := time.Now().Add(models.DefaultNoticeTTL)
		if req.ExpiresAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiresAt, expected RFC3339"})
				return
			}
			expiresAt = parsed
		}

		notice := models.Notice{
			ID:        models.NewID(),
			Title:     req.Title,
			Content:   req.Content,
			AuthorID:  userID,
			Category:  category,
			Priority:  priority,
			ExpiresAt: expiresAt,
		}
		if err := database.GetDB().Create(&notice).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notice"})
			return
		}

		name := c.GetString("full_name")
		if name == "" {
			name = authorName(userID)
		}
		notice.AuthorName = name

		hub.Publish(realtime.NewNoticeEvent(realtime.NoticePayload{
			ID:         notice.ID,
			Title:      notice.Title,
			Content:    notice.Content,
			Category:   notice.Category,
			Priority:   string(notice.Priority),
			IsPinned:   notice.IsPinned,
			AuthorName: name,
			CreatedAt:  notice.CreatedAt.UTC().Format(time.RFC3339),
			ExpiresAt:  notice.ExpiresAt.UTC().Format(time.RFC3339),
		}))

		c.JSON(http.StatusCreated, notice)
	}
}

// UpdateNotice handles PUT /api/notices/:id
// Edits a notice owned by the authenticated user
func UpdateNotice(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	noticeID := c.Param("id")
	var notice models.Notice
	result := database.GetDB().Where("id = ? AND author_id = ?", noticeID, userID).First(&notice)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notice"})
		}
		return
	}

	var req UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = *req.Content
	}
	if req.Category != nil {
		notice.Category = *req.Category
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		notice.Priority = *req.Priority
	}
	if req.ExpiresAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiresAt, expected RFC3339"})
			return
		}
		notice.ExpiresAt = parsed
	}

	if err := database.GetDB().Save(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notice"})
		return
	}

	notice.AuthorName = authorName(notice.AuthorID)
	c.JSON(http.StatusOK, notice)
}

// DeleteNotice handles DELETE /api/notices/:id
// Removes a notice owned by the authenticated user
func DeleteNotice(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	noticeID := c.Param("id")
	result := database.GetDB().Where("id = ? AND author_id = ?", noticeID, userID).Delete(&models.Notice{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notice"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted"})
}

// PinNotice handles PATCH /api/notices/:id/pin
func PinNotice(c *gin.Context) {
	noticeID := c.Param("id")

	var req PinNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isPinned is required"})
		return
	}

	var notice models.Notice
	if err := database.GetDB().Where("id = ?", noticeID).First(&notice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	if err := database.GetDB().Model(&notice).Update("is_pinned", *req.IsPinned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notice"})
		return
	}

	notice.IsPinned = *req.IsPinned
	notice.AuthorName = authorName(notice.AuthorID)
	c.JSON(http.StatusOK, notice)
}

// GetNoticeStats handles GET /api/notices/stats
// Returns the total plus per-category and per-priority counts.
func GetNoticeStats(c *gin.Context) {
	db := database.GetDB()

	var total int64
	if err := db.Model(&models.Notice{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byCategory []bucket
	if err := db.Model(&models.Notice{}).
		Select("category as key, count(*) as count").
		Group("category").Scan(&byCategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	var byPriority []bucket
	if err := db.Model(&models.Notice{}).
		Select("priority as key, count(*) as count").
		Group("priority").Scan(&byPriority).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	categories := make(map[string]int64, len(byCategory))
	for _, b := range byCategory {
		categories[b.Key] = b.Count
	}
	priorities := make(map[string]int64, len(byPriority))
	for _, b := range byPriority {
		priorities[b.Key] = b.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"byCategory": categories,
		"byPriority": priorities,
	})
}
