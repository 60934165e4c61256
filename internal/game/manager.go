package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/plinkoplay/backend/internal/config"
	"github.com/plinkoplay/backend/internal/leaderboard"
	"github.com/redis/go-redis/v9"
)

// SessionHooks are the outward-facing callbacks of one board session. They
// are invoked from the simulation goroutines and must not block; external
// async work they trigger is not awaited by the tick loop.
type SessionHooks struct {
	// OnFrame receives a position snapshot of all live balls at the
	// configured frame interval.
	OnFrame func(frame []BallState)
	// OnPegHit fires once per ball↔peg contact (audio, effects).
	OnPegHit func(hit PegHit)
	// OnComplete fires exactly once per ball after its body is removed.
	OnComplete func(c Completion)
}

// BoardSession owns one mounted board: the physics world for its lattice,
// the drop manager, and the run loop stepping the simulation clock. The
// lattice depends on difficulty, so changing difficulty means tearing the
// session down and creating a new one.
type BoardSession struct {
	Token      string
	Difficulty Difficulty
	Risk       Risk
	World      *World
	Drops      *DropManager
	CreatedAt  time.Time

	hooks SessionHooks

	mu           sync.Mutex
	lastActivity time.Time
	stop         chan struct{}
	stopped      bool
}

// Touch marks the session as recently used, deferring expiry.
func (s *BoardSession) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// LastActivity returns the last time the session was used.
func (s *BoardSession) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// stepInterval is the wall-clock ticker period matching the physics
// timestep.
func stepInterval() time.Duration {
	dt := FixedTimestep
	return time.Duration(dt * float64(time.Second))
}

// run advances the world on a fixed timestep and emits frames. The physics
// dt is constant regardless of wall clock so drops replay identically.
func (s *BoardSession) run(frameInterval time.Duration) {
	stepTicker := time.NewTicker(stepInterval())
	frameTicker := time.NewTicker(frameInterval)
	defer stepTicker.Stop()
	defer frameTicker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-stepTicker.C:
			s.World.Step(FixedTimestep)
		case <-frameTicker.C:
			if s.hooks.OnFrame != nil && s.World.BallCount() > 0 {
				s.hooks.OnFrame(s.World.Snapshot())
			}
		}
	}
}

// teardown stops the clock and releases every body, timer and listener.
func (s *BoardSession) teardown() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stop)
	s.mu.Unlock()

	s.Drops.Close()
}

// BoardManager manages all mounted board sessions.
type BoardManager struct {
	sessions map[string]*BoardSession // keyed by session token
	db       *sqlx.DB                 // SQL DB for play history
	rdb      *redis.Client            // Redis client for leaderboards
	config   *config.Config
	mu       sync.RWMutex
}

var (
	// Global board manager instance
	Manager *BoardManager
)

// InitializeManager initializes the global board manager and starts the
// session expiry worker.
func InitializeManager(ctx context.Context, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = NewBoardManager(db, rdb, cfg)
	go Manager.StartExpiryChecker(ctx)
}

// NewBoardManager creates a new board manager.
func NewBoardManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *BoardManager {
	return &BoardManager{
		sessions: make(map[string]*BoardSession),
		db:       db,
		rdb:      rdb,
		config:   cfg,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// CreateSession mounts a new board for the given configuration and starts
// its simulation clock.
func (bm *BoardManager) CreateSession(difficulty Difficulty, risk Risk, hooks SessionHooks) (*BoardSession, error) {
	if difficulty.Rows() == 0 {
		return nil, errors.New("unknown difficulty")
	}
	if _, err := MultiplierTable(difficulty, risk); err != nil {
		return nil, err
	}

	layout := NewBoardLayout(difficulty.Rows())
	world := NewWorld(layout, NewSteering(bm.config.SteeringGain))

	session := &BoardSession{
		Token:        generateToken(16),
		Difficulty:   difficulty,
		Risk:         risk,
		World:        world,
		CreatedAt:    time.Now(),
		lastActivity: time.Now(),
		hooks:        hooks,
		stop:         make(chan struct{}),
	}

	if hooks.OnPegHit != nil {
		world.SetPegHitHandler(hooks.OnPegHit)
	}

	lifecycleCfg := LifecycleConfig{
		SpawnStaggerMin: time.Duration(bm.config.SpawnStaggerMinMs) * time.Millisecond,
		SpawnStaggerMax: time.Duration(bm.config.SpawnStaggerMaxMs) * time.Millisecond,
		CompletionPoll:  time.Duration(bm.config.CompletionPollMs) * time.Millisecond,
	}
	session.Drops = NewDropManager(world, lifecycleCfg, func(c Completion) {
		bm.handleCompletion(session, c)
	})

	bm.mu.Lock()
	bm.sessions[session.Token] = session
	bm.mu.Unlock()

	go session.run(time.Duration(bm.config.FrameIntervalMs) * time.Millisecond)

	log.Printf("[BOARD] Session created: %s (difficulty=%s risk=%s rows=%d)",
		session.Token, difficulty, risk, difficulty.Rows())
	return session, nil
}

// GetSession retrieves a session by token.
func (bm *BoardManager) GetSession(token string) (*BoardSession, error) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	session, exists := bm.sessions[token]
	if !exists {
		return nil, errors.New("board session not found")
	}
	return session, nil
}

// TeardownSession stops a session's clock, cancels pending spawns, clears
// all bodies and removes the session. Balls in flight are discarded without
// completion events.
func (bm *BoardManager) TeardownSession(token string) error {
	bm.mu.Lock()
	session, exists := bm.sessions[token]
	if exists {
		delete(bm.sessions, token)
	}
	bm.mu.Unlock()

	if !exists {
		return errors.New("board session not found")
	}

	session.teardown()
	log.Printf("[BOARD] Session torn down: %s", token)
	return nil
}

// SessionCount returns the number of mounted boards.
func (bm *BoardManager) SessionCount() int {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return len(bm.sessions)
}

// handleCompletion persists the resolved play, feeds the leaderboards, and
// forwards the event to the session's external consumer. Ownership of the
// bet/win amounts transfers to the history store here; the simulation never
// re-derives them.
func (bm *BoardManager) handleCompletion(session *BoardSession, c Completion) {
	session.Touch()

	bm.RecordPlay(session, c)

	if bm.rdb != nil {
		if err := leaderboard.RecordPlay(context.Background(), bm.rdb, leaderboard.Entry{
			SessionToken: session.Token,
			BetAmount:    c.Result.BetAmount,
			WinAmount:    c.Result.WinAmount,
			Multiplier:   c.Result.Multiplier,
		}); err != nil {
			log.Printf("[LEADERBOARD] Failed to record play for session %s: %v", session.Token, err)
		}
	}

	if session.hooks.OnComplete != nil {
		session.hooks.OnComplete(c)
	}
}

// StartExpiryChecker tears down sessions idle beyond the configured expiry.
func (bm *BoardManager) StartExpiryChecker(ctx context.Context) {
	interval := time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Println("[BOARD] Expiry checker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("[BOARD] Expiry checker stopping")
			return
		case <-ticker.C:
			expiry := time.Duration(bm.config.BoardExpiryMinutes) * time.Minute
			var expired []string

			bm.mu.RLock()
			for token, session := range bm.sessions {
				if time.Since(session.LastActivity()) > expiry {
					expired = append(expired, token)
				}
			}
			bm.mu.RUnlock()

			for _, token := range expired {
				log.Printf("[BOARD] Session %s expired after %v idle", token, expiry)
				if err := bm.TeardownSession(token); err != nil {
					log.Printf("[BOARD] Expiry teardown failed for %s: %v", token, err)
				}
			}
		}
	}
}
