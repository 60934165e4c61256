package game

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PlayResult is the validated, tagged form of one externally resolved play.
// The simulation steers the ball along Path; the amounts are opaque display
// values that pass through untouched to the completion consumer.
type PlayResult struct {
	BallID     uuid.UUID `json:"ball_id"`
	Path       Path      `json:"path"`
	Bucket     int       `json:"bucket"`
	BetAmount  float64   `json:"bet_amount"`
	WinAmount  float64   `json:"win_amount"`
	Multiplier float64   `json:"multiplier"`
}

// Completion is emitted exactly once per ball, after its body has been
// removed from the simulation.
type Completion struct {
	BallID       uuid.UUID  `json:"ball_id"`
	Bucket       int        `json:"bucket"`
	LandedBucket int        `json:"landed_bucket"`
	Result       PlayResult `json:"result"`
}

// LifecycleConfig carries the drop scheduling tunables.
type LifecycleConfig struct {
	SpawnStaggerMin time.Duration
	SpawnStaggerMax time.Duration
	CompletionPoll  time.Duration
}

// DefaultLifecycleConfig matches the reference cascade feel: first ball
// immediate, the rest 200-500ms apart, completions polled at 50ms.
func DefaultLifecycleConfig() LifecycleConfig {
	return LifecycleConfig{
		SpawnStaggerMin: 200 * time.Millisecond,
		SpawnStaggerMax: 500 * time.Millisecond,
		CompletionPoll:  50 * time.Millisecond,
	}
}

// DropManager spawns balls for play batches, staggers multi-ball drops,
// detects completions, and guarantees clean teardown: closing it cancels
// every pending spawn timer, stops the poller, and clears all live bodies.
type DropManager struct {
	world      *World
	cfg        LifecycleConfig
	onComplete func(Completion)

	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	pending map[uuid.UUID]PlayResult
	closed  bool
	stop    chan struct{}
}

// NewDropManager wires a manager to a world and starts the completion
// poller. onComplete may trigger external async work; the poller does not
// wait on it beyond the synchronous call.
func NewDropManager(world *World, cfg LifecycleConfig, onComplete func(Completion)) *DropManager {
	if cfg.CompletionPoll <= 0 {
		cfg.CompletionPoll = 50 * time.Millisecond
	}
	if cfg.SpawnStaggerMax < cfg.SpawnStaggerMin {
		cfg.SpawnStaggerMax = cfg.SpawnStaggerMin
	}

	m := &DropManager{
		world:      world,
		cfg:        cfg,
		onComplete: onComplete,
		timers:     make(map[uuid.UUID]*time.Timer),
		pending:    make(map[uuid.UUID]PlayResult),
		stop:       make(chan struct{}),
	}
	go m.pollCompletions()
	return m
}

// Drop schedules a batch of play results from one user action. The first
// ball spawns immediately; each subsequent ball after an independently
// randomized stagger. A malformed path is logged and the ball still drops
// (it free-falls); it never blocks the rest of the batch.
func (m *DropManager) Drop(results []PlayResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errors.New("drop manager is closed")
	}

	rows := m.world.Layout().Rows
	for i, res := range results {
		if err := res.Path.Validate(rows); err != nil {
			log.Printf("[LIFECYCLE] ball %s: malformed path (%v); ball will free-fall", res.BallID, err)
		}
		m.pending[res.BallID] = res

		if i == 0 {
			m.world.Spawn(res.BallID, res.Path)
			continue
		}

		delay := m.cfg.SpawnStaggerMin
		if jitter := m.cfg.SpawnStaggerMax - m.cfg.SpawnStaggerMin; jitter > 0 {
			delay += time.Duration(rand.Int63n(int64(jitter)))
		}

		id, path := res.BallID, res.Path
		m.timers[id] = time.AfterFunc(delay, func() {
			m.spawnDeferred(id, path)
		})
	}

	return nil
}

func (m *DropManager) spawnDeferred(id uuid.UUID, path Path) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.timers, id)
	if m.closed {
		return
	}
	m.world.Spawn(id, path)
}

// PendingTimerCount reports scheduled-but-unspawned balls.
func (m *DropManager) PendingTimerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// LiveCount reports balls currently in the simulation.
func (m *DropManager) LiveCount() int {
	return m.world.BallCount()
}

func (m *DropManager) pollCompletions() {
	ticker := time.NewTicker(m.cfg.CompletionPoll)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.checkCompletions()
		}
	}
}

// checkCompletions removes every ball observed below the board's bottom
// boundary and emits its completion event. Removal from the world happens
// before the event fires and is the idempotency gate: a second poll cannot
// re-fire for an id that is already gone.
func (m *DropManager) checkCompletions() {
	layout := m.world.Layout()
	bottom := layout.BottomY()

	for _, state := range m.world.Snapshot() {
		if state.Position.Y <= bottom {
			continue
		}
		if !m.world.Remove(state.ID) {
			continue
		}

		landed := layout.BucketIndexAt(state.Position.X)

		m.mu.Lock()
		res, known := m.pending[state.ID]
		delete(m.pending, state.ID)
		closed := m.closed
		m.mu.Unlock()

		if closed {
			return
		}
		if !known {
			log.Printf("[LIFECYCLE] completion for unknown ball %s (landed bucket %d)", state.ID, landed)
			continue
		}
		if landed != res.Bucket {
			log.Printf("[LIFECYCLE] ball %s landed in bucket %d, path dictates %d", state.ID, landed, res.Bucket)
		}

		if m.onComplete != nil {
			m.onComplete(Completion{
				BallID:       state.ID,
				Bucket:       res.Bucket,
				LandedBucket: landed,
				Result:       res,
			})
		}
	}
}

// Close cancels all pending spawn timers, stops the completion poller, and
// clears every live body. Safe to call more than once. No completion events
// fire for balls that were mid-flight at teardown.
func (m *DropManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	m.pending = make(map[uuid.UUID]PlayResult)
	close(m.stop)
	m.mu.Unlock()

	m.world.Clear()
}
