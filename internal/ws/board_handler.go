package ws

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plinkoplay/backend/internal/game"
)

// Message types pushed to board watchers.
type FrameMessage struct {
	Type  string           `json:"type"` // "frame"
	Balls []game.BallState `json:"balls"`
}

type PegHitMessage struct {
	Type string      `json:"type"` // "peg_hit"
	Hit  game.PegHit `json:"hit"`
}

type CompletionMessage struct {
	Type       string          `json:"type"` // "ball_complete"
	Completion game.Completion `json:"completion"`
}

// BoardHub is the single hub for all board sessions.
var BoardHub *Hub

func init() {
	BoardHub = NewHub()
	go BoardHub.Run()
}

// SessionHooks returns the hooks that stream a board session's simulation
// to its watchers. The token is read through a pointer because the board
// manager mints it during session creation; the pointee must be set before
// the first ball drops.
func SessionHooks(boardToken *string) game.SessionHooks {
	return game.SessionHooks{
		OnFrame: func(frame []game.BallState) {
			BoardHub.BroadcastToBoard(*boardToken, FrameMessage{Type: "frame", Balls: frame})
		},
		OnPegHit: func(hit game.PegHit) {
			BoardHub.BroadcastToBoard(*boardToken, PegHitMessage{Type: "peg_hit", Hit: hit})
		},
		OnComplete: func(c game.Completion) {
			BoardHub.BroadcastToBoard(*boardToken, CompletionMessage{Type: "ball_complete", Completion: c})
		},
	}
}

func generateClientID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// HandleBoardWebSocket upgrades a connection and attaches it to a board room.
func HandleBoardWebSocket(c *gin.Context) {
	boardToken := c.Param("token")

	session, err := game.Manager.GetSession(boardToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "board session not found"})
		return
	}
	session.Touch()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:       conn,
		clientID:   generateClientID(),
		boardToken: boardToken,
		send:       make(chan []byte, 256),
	}

	BoardHub.register <- client

	go client.writePump()
	go client.readPump(BoardHub)
}
