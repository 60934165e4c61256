package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayRecord is a resolved play persisted to history. Amounts are the
// externally settled values; the simulation records them verbatim.
type PlayRecord struct {
	ID           int       `db:"id" json:"id"`
	BallID       uuid.UUID `db:"ball_id" json:"ball_id"`
	SessionToken string    `db:"session_token" json:"session_token"`
	Difficulty   string    `db:"difficulty" json:"difficulty"`
	Risk         string    `db:"risk" json:"risk"`
	Rows         int       `db:"rows" json:"rows"`
	Path         string    `db:"path" json:"path"`
	Bucket       int       `db:"bucket" json:"bucket"`
	LandedBucket int       `db:"landed_bucket" json:"landed_bucket"`
	BetAmount    float64   `db:"bet_amount" json:"bet_amount"`
	Multiplier   float64   `db:"multiplier" json:"multiplier"`
	WinAmount    float64   `db:"win_amount" json:"win_amount"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
