package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plinkoplay/backend/internal/config"
	"github.com/plinkoplay/backend/internal/fair"
	"github.com/plinkoplay/backend/internal/game"
	"github.com/redis/go-redis/v9"
)

// PlayRequest drops one batch of balls on the caller's board. Difficulty
// and risk are fixed by the board session; the bet applies per ball.
type PlayRequest struct {
	BetAmount float64 `json:"bet_amount" binding:"required"`
	Balls     int     `json:"balls"`
}

// BallResult is the resolved outcome for one ball, returned before the
// animation finishes. The simulation will land the ball in Bucket.
type BallResult struct {
	BallID     uuid.UUID `json:"ball_id"`
	Nonce      uint64    `json:"nonce"`
	Path       game.Path `json:"path"`
	Bucket     int       `json:"bucket"`
	Multiplier float64   `json:"multiplier"`
	WinAmount  float64   `json:"win_amount"`
}

// fallbackNonce backs nonce allocation when Redis is down. Monotonic per
// process only, so audits across restarts need the Redis counter.
var fallbackNonce uint64

func nextNonce(ctx context.Context, rdb *redis.Client, clientSeed string, n int) uint64 {
	if rdb != nil {
		val, err := rdb.IncrBy(ctx, "fair:nonce:"+clientSeed, int64(n)).Result()
		if err == nil {
			return uint64(val) - uint64(n) + 1
		}
		log.Printf("[FAIR] Redis nonce allocation failed, using process counter: %v", err)
	}
	return atomic.AddUint64(&fallbackNonce, uint64(n)) - uint64(n) + 1
}

// Play resolves a batch of drops: derives each ball's path, settles the
// outcome from the multiplier table, and hands the tagged results to the
// board's drop manager. The response does not wait for the animation.
func Play(cfg *config.Config, source *fair.Source, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bet_amount is required"})
			return
		}
		if req.Balls <= 0 {
			req.Balls = 1
		}
		if req.Balls > cfg.MaxBallsPerDrop {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("at most %d balls per drop", cfg.MaxBallsPerDrop)})
			return
		}
		if req.BetAmount < cfg.MinBetAmount || req.BetAmount > cfg.MaxBetAmount {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("bet_amount must be between %g and %g", cfg.MinBetAmount, cfg.MaxBetAmount)})
			return
		}

		boardToken := c.GetHeader("X-Board-Token")
		session, err := game.Manager.GetSession(boardToken)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "board session not found"})
			return
		}
		session.Touch()

		clientSeed := c.GetString("client_seed")
		rows := session.Difficulty.Rows()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		firstNonce := nextNonce(ctx, rdb, clientSeed, req.Balls)

		results := make([]game.PlayResult, 0, req.Balls)
		ballResults := make([]BallResult, 0, req.Balls)
		for i := 0; i < req.Balls; i++ {
			nonce := firstNonce + uint64(i)
			path := source.GeneratePath(clientSeed, nonce, rows)
			bucket := path.FinalBucket()

			multiplier, err := game.MultiplierFor(session.Difficulty, session.Risk, bucket)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve payout"})
				return
			}

			id := uuid.New()
			win := req.BetAmount * multiplier
			results = append(results, game.PlayResult{
				BallID:     id,
				Path:       path,
				Bucket:     bucket,
				BetAmount:  req.BetAmount,
				WinAmount:  win,
				Multiplier: multiplier,
			})
			ballResults = append(ballResults, BallResult{
				BallID:     id,
				Nonce:      nonce,
				Path:       path,
				Bucket:     bucket,
				Multiplier: multiplier,
				WinAmount:  win,
			})
		}

		if err := session.Drops.Drop(results); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "board session is shutting down"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"board_token": session.Token,
			"balls":       ballResults,
		})
	}
}
