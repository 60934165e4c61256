package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plinkoplay/backend/internal/game"
	"github.com/plinkoplay/backend/internal/leaderboard"
	"github.com/plinkoplay/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// History returns the most recent resolved plays.
func History() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

		plays, err := game.Manager.RecentPlays(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
			return
		}
		if plays == nil {
			plays = []models.PlayRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"plays": plays})
	}
}

// Leaderboard returns today's top sessions by total wagered and by best
// win multiplier.
func Leaderboard(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

		wagered, err := leaderboard.TopWagered(c.Request.Context(), rdb, n)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
			return
		}
		bestWins, err := leaderboard.TopBestWins(c.Request.Context(), rdb, n)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"top_wagered":   wagered,
			"top_best_wins": bestWins,
		})
	}
}
