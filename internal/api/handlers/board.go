package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plinkoplay/backend/internal/audio"
	"github.com/plinkoplay/backend/internal/config"
	"github.com/plinkoplay/backend/internal/game"
	"github.com/plinkoplay/backend/internal/ws"
)

// CreateBoardRequest mounts a board with a fixed lattice. Changing the
// difficulty later means tearing this board down and mounting a new one.
type CreateBoardRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Risk       string `json:"risk" binding:"required"`
}

// CreateBoard mounts a new board session and starts its simulation clock.
func CreateBoard(cfg *config.Config, sounds *audio.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBoardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty and risk are required"})
			return
		}

		difficulty, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		risk, err := game.ParseRisk(req.Risk)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var boardToken string
		hooks := ws.SessionHooks(&boardToken)
		if sounds != nil {
			streamHit := hooks.OnPegHit
			hooks.OnPegHit = func(hit game.PegHit) {
				sounds.Trigger()
				streamHit(hit)
			}
		}

		session, err := game.Manager.CreateSession(difficulty, risk, hooks)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		boardToken = session.Token

		c.JSON(http.StatusOK, gin.H{
			"board_token": session.Token,
			"difficulty":  string(session.Difficulty),
			"risk":        string(session.Risk),
			"rows":        session.Difficulty.Rows(),
			"layout":      boardLayoutJSON(session),
		})
	}
}

// GetBoard returns the lattice geometry of a mounted board so clients can
// render pegs and buckets without duplicating layout math.
func GetBoard() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := game.Manager.GetSession(c.Param("token"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "board session not found"})
			return
		}
		session.Touch()

		c.JSON(http.StatusOK, gin.H{
			"board_token": session.Token,
			"difficulty":  string(session.Difficulty),
			"risk":        string(session.Risk),
			"rows":        session.Difficulty.Rows(),
			"layout":      boardLayoutJSON(session),
		})
	}
}

// TeardownBoard stops a board's clock and discards balls in flight.
func TeardownBoard() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if err := game.Manager.TeardownSession(token); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "board session not found"})
			return
		}
		ws.BoardHub.CloseBoard(token)
		c.JSON(http.StatusOK, gin.H{"status": "closed"})
	}
}

func boardLayoutJSON(session *game.BoardSession) gin.H {
	layout := session.World.Layout()

	pegs := make([]game.Peg, 0, len(layout.PegRows)*4)
	for _, row := range layout.PegRows {
		pegs = append(pegs, row...)
	}

	buckets := make([]float64, layout.BucketCount())
	for k := range buckets {
		buckets[k] = layout.BucketCenterX(k)
	}

	return gin.H{
		"width":          layout.Width,
		"bottom_y":       layout.BottomY(),
		"pegs":           pegs,
		"bucket_centers": buckets,
	}
}
