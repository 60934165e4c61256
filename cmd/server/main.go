package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/plinkoplay/backend/internal/api"
	"github.com/plinkoplay/backend/internal/audio"
	"github.com/plinkoplay/backend/internal/config"
	"github.com/plinkoplay/backend/internal/database"
	"github.com/plinkoplay/backend/internal/fair"
	"github.com/plinkoplay/backend/internal/game"
	"github.com/plinkoplay/backend/internal/middleware"
	"github.com/plinkoplay/backend/internal/migrations"
	"github.com/plinkoplay/backend/internal/redis"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the board manager and its expiry worker
	game.InitializeManager(ctx, db, rdb, cfg)

	// Fairness source: the seed hash is published, the seed is not
	source := fair.NewSource(cfg.ServerSeed)
	log.Printf("[FAIR] Server seed hash: %s", source.SeedHash())

	// Collision audio for kiosk deployments; headless hosts stay silent
	var sounds *audio.Pool
	if cfg.AudioEnabled {
		sounds = audio.NewPool(cfg.AudioVoices)
		if err := sounds.Initialize(); err != nil {
			log.Printf("[AUDIO] Speaker unavailable, continuing without sound: %v", err)
		}
		defer sounds.Close()
	}

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(router, db, rdb, cfg, source, sounds)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
