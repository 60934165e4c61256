package game

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// PegHit records one ball↔peg contact, for audio feedback and frame streams.
type PegHit struct {
	BallID uuid.UUID `json:"ball_id"`
	Row    int       `json:"row"`
	Index  int       `json:"index"`
	Speed  float64   `json:"speed"`
}

// BallState is a read-only snapshot of one live ball.
type BallState struct {
	ID         uuid.UUID `json:"id"`
	Position   Vec2      `json:"position"`
	Velocity   Vec2      `json:"velocity"`
	CurrentRow int       `json:"current_row"`
	TargetX    float64   `json:"target_x,omitempty"`
	HasTarget  bool      `json:"has_target"`
}

// ballBody is a dynamic body falling through the lattice. currentRow starts
// at -1 (above the first peg row); targetX is unset until the first contact.
type ballBody struct {
	id         uuid.UUID
	pos        Vec2
	vel        Vec2
	path       Path
	currentRow int
	targetX    float64
	hasTarget  bool
}

// World owns one rigid-body simulation per mounted board: the static lattice
// and walls come from the layout, dynamic balls are spawned per play result.
// It advances on a fixed timestep and raises labeled collision events.
// Teardown via Clear is exhaustive; no body or handler survives it.
type World struct {
	mu       sync.Mutex
	layout   *BoardLayout
	steering Steering
	balls    map[uuid.UUID]*ballBody
	order    []uuid.UUID // insertion order, for deterministic stepping
	onPegHit func(PegHit)
}

// NewWorld builds a world for one board configuration. The lattice is static
// for the world's lifetime; a difficulty change means a new world.
func NewWorld(layout *BoardLayout, steering Steering) *World {
	return &World{
		layout:   layout,
		steering: steering,
		balls:    make(map[uuid.UUID]*ballBody),
	}
}

// SetPegHitHandler registers the collision callback. The handler runs after
// the physics state of the tick is settled and must not block.
func (w *World) SetPegHitHandler(fn func(PegHit)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPegHit = fn
}

// Spawn creates a dynamic body at the board's entry point with the given
// pre-ordained path attached.
func (w *World) Spawn(id uuid.UUID, path Path) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.balls[id]; exists {
		return
	}
	w.balls[id] = &ballBody{
		id:         id,
		pos:        w.layout.EntryPoint(),
		path:       path,
		currentRow: -1,
	}
	w.order = append(w.order, id)
}

// Remove deletes a body from the simulation. Returns false if the id is
// already gone, which callers rely on for exactly-once completion.
func (w *World) Remove(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.balls[id]; !exists {
		return false
	}
	delete(w.balls, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every body and detaches the collision handler.
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balls = make(map[uuid.UUID]*ballBody)
	w.order = nil
	w.onPegHit = nil
}

// BallCount returns the number of live bodies.
func (w *World) BallCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.balls)
}

// Snapshot returns the state of all live balls in spawn order.
func (w *World) Snapshot() []BallState {
	w.mu.Lock()
	defer w.mu.Unlock()

	states := make([]BallState, 0, len(w.order))
	for _, id := range w.order {
		b := w.balls[id]
		states = append(states, BallState{
			ID:         b.id,
			Position:   b.pos,
			Velocity:   b.vel,
			CurrentRow: b.currentRow,
			TargetX:    b.targetX,
			HasTarget:  b.hasTarget,
		})
	}
	return states
}

// Layout exposes the board geometry the world was built for.
func (w *World) Layout() *BoardLayout {
	return w.layout
}

// Step advances the simulation by dt seconds: steering, gravity, integration,
// wall and peg contact resolution. Collision handlers fire after the state
// update, outside the world lock, so they may safely touch other components.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxStepSeconds {
		dt = MaxStepSeconds
	}

	w.mu.Lock()
	var hits []PegHit
	for _, id := range w.order {
		b := w.balls[id]
		w.steering.Correct(b)

		b.vel.Y = fix(b.vel.Y + Gravity*dt)
		b.pos = b.pos.Plus(b.vel.Times(dt))

		w.resolveWalls(b)
		if hit, ok := w.resolvePegContact(b); ok {
			hits = append(hits, hit)
		}
	}
	handler := w.onPegHit
	w.mu.Unlock()

	if handler != nil {
		for _, h := range hits {
			handler(h)
		}
	}
}

// resolveWalls keeps balls on the canvas; a side wall hit reflects with a
// damped horizontal velocity.
func (w *World) resolveWalls(b *ballBody) {
	minX := BallRadius
	maxX := w.layout.Width - BallRadius

	if b.pos.X < minX {
		b.pos.X = fix(minX)
		b.vel.X = fix(-b.vel.X * WallRestitution)
	} else if b.pos.X > maxX {
		b.pos.X = fix(maxX)
		b.vel.X = fix(-b.vel.X * WallRestitution)
	}
}

// resolvePegContact tests the ball against its committed peg in the next
// row. On contact the body rebounds upward, the row counter advances, and
// the next steering target is committed. A lattice miss leaves the target
// unset so the ball falls under gravity alone; never the expected case.
func (w *World) resolvePegContact(b *ballBody) (PegHit, bool) {
	nextRow := b.currentRow + 1
	if nextRow >= w.layout.Rows {
		return PegHit{}, false
	}
	if b.vel.Y <= 0 {
		// Rising after a bounce; contacts only happen on the way down.
		return PegHit{}, false
	}

	committed := b.path.PegIndexAtRow(nextRow)
	peg, found := w.layout.PegAt(nextRow, committed)
	if !found {
		return PegHit{}, false
	}

	contact := BallRadius + PegRadius
	if b.pos.Minus(NewVec2(peg.X, peg.Y)).MagnitudeSquared() > contact*contact {
		return PegHit{}, false
	}

	speed := b.vel.Magnitude()

	// Rebound: fixed upward kick, horizontal handed back to steering.
	b.pos = NewVec2(b.pos.X, peg.Y-contact)
	b.vel = NewVec2(0, -PegBounceSpeed)
	b.currentRow = nextRow

	if x, _, ok := b.path.NextTarget(w.layout, nextRow); ok {
		b.targetX = x
		b.hasTarget = true
	} else {
		b.targetX = 0
		b.hasTarget = false
		log.Printf("[PHYSICS] ball %s: no steering target after row %d (path len %d); free-falling",
			b.id, nextRow, len(b.path))
	}

	return PegHit{BallID: b.id, Row: nextRow, Index: committed, Speed: speed}, true
}
