package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/plinkoplay/backend/internal/config"
	"github.com/plinkoplay/backend/internal/middleware"
)

// CreateSessionRequest opens an anonymous player session. The client seed
// feeds path derivation; an empty seed gets a server-generated one.
type CreateSessionRequest struct {
	ClientSeed string `json:"client_seed"`
}

// CreateSession issues a signed player token.
func CreateSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if req.ClientSeed == "" {
			req.ClientSeed = uuid.New().String()
		}
		if len(req.ClientSeed) > 64 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_seed too long (max 64 characters)"})
			return
		}

		playerID := uuid.New().String()
		expiresAt := time.Now().Add(time.Duration(cfg.SessionTimeoutMin) * time.Minute)

		claims := middleware.PlayerClaims{
			PlayerID:   playerID,
			ClientSeed: req.ClientSeed,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":       signed,
			"player_id":   playerID,
			"client_seed": req.ClientSeed,
			"expires_at":  expiresAt,
		})
	}
}
