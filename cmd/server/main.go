package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mikeboe/guia-procesos/pkg/archive"
	"github.com/mikeboe/guia-procesos/pkg/clients"
	"github.com/mikeboe/guia-procesos/pkg/config"
	"github.com/mikeboe/guia-procesos/pkg/database"
	"github.com/mikeboe/guia-procesos/pkg/export"
	"github.com/mikeboe/guia-procesos/pkg/generation"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
	"github.com/mikeboe/guia-procesos/pkg/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	console := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(console))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	client, err := clients.NewGenAI(ctx, cfg.GoogleApiKey)
	if err != nil {
		log.Fatalf("Failed to create genai client: %v", err)
	}
	gemini := generation.NewGemini(client, cfg.TextModel, cfg.ImageModel)

	// Search archive is optional
	var store *archive.Store
	if cfg.ArchiveEnabled() {
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		store = archive.NewStore(db.Pool)
		sessionID := uuid.New()
		slog.SetDefault(slog.New(archive.NewLogHandler(db.Pool, sessionID, console)))
		slog.Info("Search archive enabled", "session_id", sessionID)
	}

	svc := server.NewService(gemini, gemini, export.New(), store)
	handler := server.NewHandler(svc)

	tmpl, err := presentation.Templates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Web Server Setup
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// CORS Setup
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Mcp-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Mcp-Session-Id"},
		AllowCredentials: true,
	}))
	r.SetHTMLTemplate(tmpl)

	handler.RegisterRoutes(r)

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
