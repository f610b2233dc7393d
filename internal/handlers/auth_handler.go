package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"campus-board-api/internal/auth"
	"campus-board-api/internal/database"
	"campus-board-api/internal/mail"
	"campus-board-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
	FullName  string `json:"fullName" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// VerifyRequest represents the email verification payload
type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Message  string `json:"message"`
}

// Register handles POST /api/auth/register
// Creates an unverified account and sends the verification email.
func Register(sender mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		// Stored lowercased, so the duplicate check must compare the same form
		email := strings.ToLower(strings.TrimSpace(req.Email))

		if !auth.IsValidEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please use your university email address"})
			return
		}
		if !auth.IsValidStudentID(req.StudentID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Matric Number format"})
			return
		}
		if len(req.Password) < auth.MinPasswordLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long"})
			return
		}

		db := database.GetDB()
		var existing models.User
		err := db.Where("email = ? OR student_id = ?", email, req.StudentID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
			return
		}

		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
			return
		}

		user := models.User{
			ID:                uuid.NewString(),
			Email:             email,
			StudentID:         req.StudentID,
			FullName:          strings.TrimSpace(req.FullName),
			PasswordHash:      passwordHash,
			IsVerified:        false,
			VerificationToken: auth.NewVerificationToken(),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
			return
		}

		if err := sender.SendVerification(user.Email, user.FullName, user.VerificationToken); err != nil {
			slog.Error("verification email failed", "userId", user.ID, "error", err)
			// Roll the account back so a retry re-registers cleanly instead
			// of hitting the duplicate check with no token ever delivered.
			// Unscoped: a soft-deleted row would still hold the unique email.
			if delErr := db.Unscoped().Delete(&user).Error; delErr != nil {
				slog.Error("rollback of unverified account failed", "userId", user.ID, "error", delErr)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Registration successful. Please check your email for verification.",
			"userId":  user.ID,
		})
	}
}

// Verify handles POST /api/auth/verify
// Marks the matching account verified and burns the token.
func Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification token is required"})
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("verification_token = ?", req.Token).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}

	updates := map[string]any{"is_verified": true, "verification_token": ""}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Login handles POST /api/auth/login
// Verified accounts exchange credentials for a JWT.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please verify your email address first"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		FullName: user.FullName,
		Message:  "Login successful",
	})
}
