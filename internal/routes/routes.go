package routes

import (
	"campus-board-api/internal/handlers"
	"campus-board-api/internal/mail"
	"campus-board-api/internal/middleware"
	"campus-board-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(hub *realtime.Hub, sender mail.Sender) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Connection-Id")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Campus Board API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/register", handlers.Register(sender))
		api.POST("/auth/verify", handlers.Verify)
		api.POST("/auth/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Notice endpoints
		protectedRoutes.GET("/notices", handlers.GetNotices)
		protectedRoutes.GET("/notices/stats", handlers.GetNoticeStats)
		protectedRoutes.POST("/notices", handlers.CreateNotice(hub))
		protectedRoutes.PUT("/notices/:id", handlers.UpdateNotice)
		protectedRoutes.PATCH("/notices/:id/pin", handlers.PinNotice)
		protectedRoutes.DELETE("/notices/:id", handlers.DeleteNotice)
		// Chat endpoints
		protectedRoutes.GET("/chat", handlers.GetChatMessages)
		protectedRoutes.POST("/chat", handlers.CreateChatMessage(hub))
		// Users endpoint
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		// Live updates
		protectedRoutes.GET("/ws", handlers.WebSocketHandler(hub))
	}

	return ginRouter
}
