// Package leaderboard maintains day-keyed wagering and best-win boards in
// Redis sorted sets. Entries expire two days after their day closes.
package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const retention = 48 * time.Hour

// Entry is one resolved play attributed to a board session.
type Entry struct {
	SessionToken string
	BetAmount    float64
	WinAmount    float64
	Multiplier   float64
}

// Standing is one row of a board query.
type Standing struct {
	SessionToken string  `json:"session_token"`
	Score        float64 `json:"score"`
}

func dayKey(prefix string, t time.Time) string {
	return fmt.Sprintf("%s:%s", prefix, t.UTC().Format("2006-01-02"))
}

// RecordPlay accumulates the wagered total and tracks the best multiplier
// for today's boards.
func RecordPlay(ctx context.Context, rdb *redis.Client, e Entry) error {
	now := time.Now()
	wageredKey := dayKey("lb:wagered", now)
	bestKey := dayKey("lb:best_win", now)

	pipe := rdb.TxPipeline()
	pipe.ZIncrBy(ctx, wageredKey, e.BetAmount, e.SessionToken)
	pipe.ZAddGT(ctx, bestKey, redis.Z{Score: e.Multiplier, Member: e.SessionToken})
	pipe.Expire(ctx, wageredKey, retention)
	pipe.Expire(ctx, bestKey, retention)
	_, err := pipe.Exec(ctx)
	return err
}

// TopWagered returns today's highest-wagering sessions, best first.
func TopWagered(ctx context.Context, rdb *redis.Client, n int64) ([]Standing, error) {
	return top(ctx, rdb, dayKey("lb:wagered", time.Now()), n)
}

// TopBestWins returns today's highest multipliers, best first.
func TopBestWins(ctx context.Context, rdb *redis.Client, n int64) ([]Standing, error) {
	return top(ctx, rdb, dayKey("lb:best_win", time.Now()), n)
}

func top(ctx context.Context, rdb *redis.Client, key string, n int64) ([]Standing, error) {
	if n <= 0 {
		n = 3
	}
	zs, err := rdb.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		standings = append(standings, Standing{SessionToken: member, Score: z.Score})
	}
	return standings, nil
}
