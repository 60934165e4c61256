package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Board / simulation settings
	SteeringGain        float64
	SpawnStaggerMinMs   int
	SpawnStaggerMaxMs   int
	CompletionPollMs    int
	FrameIntervalMs     int
	BoardExpiryMinutes  int
	MaxBallsPerDrop     int
	MinBetAmount        float64
	MaxBetAmount        float64

	// Audio feedback (local/kiosk deployments)
	AudioEnabled bool
	AudioVoices  int

	// Fairness
	ServerSeed string

	// Security
	JWTSecret         string
	SessionTimeoutMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/plinkoplay?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Board / simulation
		SteeringGain:       getEnvFloat("STEERING_GAIN", 8.0),
		SpawnStaggerMinMs:  getEnvInt("SPAWN_STAGGER_MIN_MS", 200),
		SpawnStaggerMaxMs:  getEnvInt("SPAWN_STAGGER_MAX_MS", 500),
		CompletionPollMs:   getEnvInt("COMPLETION_POLL_MS", 50),
		FrameIntervalMs:    getEnvInt("FRAME_INTERVAL_MS", 33),
		BoardExpiryMinutes: getEnvInt("BOARD_EXPIRY_MINUTES", 10),
		MaxBallsPerDrop:    getEnvInt("MAX_BALLS_PER_DROP", 10),
		MinBetAmount:       getEnvFloat("MIN_BET_AMOUNT", 1),
		MaxBetAmount:       getEnvFloat("MAX_BET_AMOUNT", 10000),

		// Audio
		AudioEnabled: getEnvBool("AUDIO_ENABLED", false),
		AudioVoices:  getEnvInt("AUDIO_VOICES", 5),

		// Fairness
		ServerSeed: getEnv("SERVER_SEED", "dev-server-seed-change-me"),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTimeoutMin: getEnvInt("SESSION_TIMEOUT_MINUTES", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
