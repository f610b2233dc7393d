package main

import (
	"log"
	"log/slog"
	"os"

	"campus-board-api/internal/database"
	"campus-board-api/internal/mail"
	"campus-board-api/internal/realtime"
	"campus-board-api/internal/routes"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	// Init database
	database.InitDB()

	// One hub per process; handed to the routes that accept connections
	// and to the handlers that publish events.
	hub := realtime.NewHub(realtime.DefaultHistorySize)
	sender := mail.NewFromEnv()

	ginRoutes := routes.SetupRoutes(hub, sender)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}
	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/register")
	log.Println("  POST   /api/auth/verify")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/notices")
	log.Println("  GET    /api/notices/stats")
	log.Println("  POST   /api/notices")
	log.Println("  PUT    /api/notices/:id")
	log.Println("  PATCH  /api/notices/:id/pin")
	log.Println("  DELETE /api/notices/:id")
	log.Println("  GET    /api/chat")
	log.Println("  POST   /api/chat")
	log.Println("  GET    /api/users")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
