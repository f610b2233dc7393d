package handlers

import (
	"net/http"

	"campus-board-api/internal/database"
	"campus-board-api/internal/models"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	StudentID string `json:"studentId"`
}

// GetAllUsers returns all users (protected)
// GET /api/users
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	// Map to safe response payload
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:        u.ID,
			FullName:  u.FullName,
			StudentID: u.StudentID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
