package game

import (
	"encoding/json"
	"log"

	"github.com/plinkoplay/backend/internal/models"
)

// RecordPlay persists a resolved play as a history row. Persistence is
// best-effort: a storage failure is logged and never feeds back into the
// simulation or changes a landing outcome.
func (bm *BoardManager) RecordPlay(session *BoardSession, c Completion) {
	if bm == nil || bm.db == nil {
		return
	}

	pathJSON, err := json.Marshal(c.Result.Path)
	if err != nil {
		log.Printf("[DB] Failed to marshal path for ball %s: %v", c.BallID, err)
		return
	}

	_, err = bm.db.Exec(
		`INSERT INTO plays (ball_id, session_token, difficulty, risk, rows, path, bucket, landed_bucket, bet_amount, multiplier, win_amount, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6::jsonb,$7,$8,$9,$10,$11,NOW())`,
		c.BallID, session.Token, string(session.Difficulty), string(session.Risk),
		session.Difficulty.Rows(), string(pathJSON), c.Bucket, c.LandedBucket,
		c.Result.BetAmount, c.Result.Multiplier, c.Result.WinAmount,
	)
	if err != nil {
		log.Printf("[DB] Failed to record play for ball %s: %v", c.BallID, err)
		return
	}

	_, err = bm.db.Exec(
		`INSERT INTO daily_stats (day, total_games, total_wagered, total_won)
		 VALUES (CURRENT_DATE, 1, $1, $2)
		 ON CONFLICT (day) DO UPDATE SET
		   total_games = daily_stats.total_games + 1,
		   total_wagered = daily_stats.total_wagered + EXCLUDED.total_wagered,
		   total_won = daily_stats.total_won + EXCLUDED.total_won`,
		c.Result.BetAmount, c.Result.WinAmount,
	)
	if err != nil {
		log.Printf("[DB] Failed to update daily stats: %v", err)
	}
}

// RecentPlays returns the latest resolved plays for the history API.
func (bm *BoardManager) RecentPlays(limit int) ([]models.PlayRecord, error) {
	if bm.db == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	var plays []models.PlayRecord
	err := bm.db.Select(&plays,
		`SELECT id, ball_id, session_token, difficulty, risk, rows, path, bucket, landed_bucket, bet_amount, multiplier, win_amount, created_at
		 FROM plays ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return plays, nil
}
