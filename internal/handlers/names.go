package handlers

import (
	"time"

	"campus-board-api/internal/cache"
	"campus-board-api/internal/database"
	"campus-board-api/internal/models"
)

const unknownUser = "Unknown User"

// nameCache avoids a users-table read per enriched row and per websocket
// admission.
var nameCache = cache.New[string, string]()

const nameCacheTTL = 5 * time.Minute

// authorName resolves a user's full name through the cache.
func authorName(userID string) string {
	if userID == "" {
		return unknownUser
	}
	if name, ok := nameCache.Get(userID); ok {
		return name
	}
	var u models.User
	if err := database.GetDB().Where("id = ?", userID).First(&u).Error; err != nil {
		return unknownUser
	}
	nameCache.Set(userID, u.FullName, nameCacheTTL)
	return u.FullName
}
