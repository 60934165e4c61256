package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plinkoplay/backend/internal/fair"
	"github.com/plinkoplay/backend/internal/game"
)

// SeedCommitment publishes the hash of the active server seed. Clients
// record it before playing and audit paths after the seed is revealed.
func SeedCommitment(source *fair.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"server_seed_hash": source.SeedHash()})
	}
}

// VerifyRequest recomputes a path from a revealed server seed.
type VerifyRequest struct {
	ServerSeed string `json:"server_seed" binding:"required"`
	ClientSeed string `json:"client_seed" binding:"required"`
	Nonce      uint64 `json:"nonce"`
	Difficulty string `json:"difficulty" binding:"required"`
}

// Verify lets anyone audit a past drop without trusting the server.
func Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "server_seed, client_seed and difficulty are required"})
			return
		}

		difficulty, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		path := fair.Verify(req.ServerSeed, req.ClientSeed, req.Nonce, difficulty.Rows())
		c.JSON(http.StatusOK, gin.H{
			"path":   path,
			"bucket": path.FinalBucket(),
		})
	}
}
