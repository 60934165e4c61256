package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/plinkoplay/backend/internal/api/handlers"
	"github.com/plinkoplay/backend/internal/audio"
	"github.com/plinkoplay/backend/internal/config"
	"github.com/plinkoplay/backend/internal/fair"
	"github.com/plinkoplay/backend/internal/middleware"
	"github.com/plinkoplay/backend/internal/ws"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config, source *fair.Source, sounds *audio.Pool) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.Health(db, rdb))
		v1.POST("/session", handlers.CreateSession(cfg))

		v1.GET("/tables", handlers.Tables())
		v1.GET("/history", handlers.History())
		v1.GET("/leaderboard", handlers.Leaderboard(rdb))

		v1.GET("/fair/seed", handlers.SeedCommitment(source))
		v1.POST("/fair/verify", handlers.Verify())

		// Board sessions and plays require a player token.
		authed := v1.Group("")
		authed.Use(middleware.AuthRequired(cfg))
		{
			authed.POST("/board", handlers.CreateBoard(cfg, sounds))
			authed.GET("/board/:token", handlers.GetBoard())
			authed.DELETE("/board/:token", handlers.TeardownBoard())
			authed.POST("/play", handlers.Play(cfg, source, rdb))
		}

		// WebSocket upgrade carries no Authorization header from browsers;
		// the board token itself gates access.
		v1.GET("/board/:token/ws", middleware.WebSocketCORSCheck(cfg), ws.HandleBoardWebSocket)
	}
}
