package game

import (
	"testing"

	"github.com/google/uuid"
)

// maxDropTicks caps a simulated drop at 30 seconds of board time. A
// well-formed drop on the deepest board finishes in under 10.
const maxDropTicks = 30 * 60

// runDrop steps a fresh world until the ball passes the board's bottom
// boundary and returns its final state.
func runDrop(t *testing.T, rows int, path Path) BallState {
	t.Helper()

	layout := NewBoardLayout(rows)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))

	id := uuid.New()
	world.Spawn(id, path)

	bottom := layout.BottomY()
	for tick := 0; tick < maxDropTicks; tick++ {
		world.Step(FixedTimestep)
		states := world.Snapshot()
		if len(states) != 1 {
			t.Fatalf("tick %d: %d balls in world, want 1", tick, len(states))
		}
		if states[0].Position.Y > bottom {
			return states[0]
		}
	}
	t.Fatalf("ball did not reach the bottom within %d ticks", maxDropTicks)
	return BallState{}
}

func TestDropLandsInDictatedBucket(t *testing.T) {
	tests := []struct {
		name string
		rows int
		path Path
	}{
		{"8 rows mixed", 8, Path{1, 1, 0, 1, 0, 0, 1, 1}},
		{"8 rows all left", 8, make(Path, 8)},
		{"8 rows all right", 8, Path{1, 1, 1, 1, 1, 1, 1, 1}},
		{"12 rows mixed", 12, Path{0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0}},
		{"16 rows all left", 16, make(Path, 16)},
		{"16 rows all right", 16, Path{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"16 rows mixed", 16, Path{1, 0, 0, 1, 1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final := runDrop(t, tt.rows, tt.path)

			layout := NewBoardLayout(tt.rows)
			landed := layout.BucketIndexAt(final.Position.X)
			if want := tt.path.FinalBucket(); landed != want {
				t.Errorf("landed in bucket %d, path dictates %d (final x=%v)",
					landed, want, final.Position.X)
			}
		})
	}
}

func TestDropIsDeterministic(t *testing.T) {
	path := Path{0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0}

	a := runDrop(t, 12, path)
	b := runDrop(t, 12, path)

	if a.Position != b.Position || a.Velocity != b.Velocity {
		t.Errorf("identical drops diverged: %+v vs %+v", a, b)
	}
}

func TestPegHitsFollowCommittedPath(t *testing.T) {
	path := Path{1, 1, 0, 1, 0, 0, 1, 1}
	layout := NewBoardLayout(8)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))

	var hits []PegHit
	world.SetPegHitHandler(func(h PegHit) { hits = append(hits, h) })

	id := uuid.New()
	world.Spawn(id, path)

	bottom := layout.BottomY()
	for tick := 0; tick < maxDropTicks; tick++ {
		world.Step(FixedTimestep)
		if s := world.Snapshot(); len(s) == 1 && s[0].Position.Y > bottom {
			break
		}
	}

	if len(hits) != 8 {
		t.Fatalf("got %d peg hits, want one per row (8)", len(hits))
	}
	for r, h := range hits {
		if h.BallID != id {
			t.Errorf("hit %d attributed to %s, want %s", r, h.BallID, id)
		}
		if h.Row != r {
			t.Errorf("hit %d on row %d, rows must advance in order", r, h.Row)
		}
		if want := path.PegIndexAtRow(r); h.Index != want {
			t.Errorf("row %d contacted peg %d, committed peg is %d", r, h.Index, want)
		}
	}
}

func TestMalformedPathFreeFalls(t *testing.T) {
	layout := NewBoardLayout(8)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))

	id := uuid.New()
	world.Spawn(id, Path{1, 0}) // far too short for 8 rows

	bottom := layout.BottomY()
	reachedBottom := false
	for tick := 0; tick < maxDropTicks; tick++ {
		world.Step(FixedTimestep)
		states := world.Snapshot()
		if len(states) != 1 {
			t.Fatalf("tick %d: ball vanished", tick)
		}
		if states[0].Position.Y > bottom {
			reachedBottom = true
			break
		}
	}
	if !reachedBottom {
		t.Fatal("free-falling ball never exited the board")
	}
}

func TestSpawnIgnoresDuplicateIDs(t *testing.T) {
	layout := NewBoardLayout(8)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))

	id := uuid.New()
	world.Spawn(id, make(Path, 8))
	world.Spawn(id, make(Path, 8))

	if got := world.BallCount(); got != 1 {
		t.Errorf("duplicate spawn produced %d balls", got)
	}
}

func TestRemoveIsExactlyOnce(t *testing.T) {
	layout := NewBoardLayout(8)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))

	id := uuid.New()
	world.Spawn(id, make(Path, 8))

	if !world.Remove(id) {
		t.Fatal("first Remove returned false")
	}
	if world.Remove(id) {
		t.Fatal("second Remove returned true; completion would double-fire")
	}
	if world.BallCount() != 0 {
		t.Errorf("ball count %d after removal", world.BallCount())
	}
}

func TestClearDropsEverything(t *testing.T) {
	layout := NewBoardLayout(8)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))
	world.SetPegHitHandler(func(PegHit) { t.Error("handler fired after Clear") })

	for i := 0; i < 5; i++ {
		world.Spawn(uuid.New(), make(Path, 8))
	}
	world.Clear()

	if world.BallCount() != 0 {
		t.Errorf("ball count %d after Clear", world.BallCount())
	}
	// Stepping after Clear must be a no-op with no handler callbacks.
	world.Step(FixedTimestep)
}

func TestWallsKeepBallsOnCanvas(t *testing.T) {
	layout := NewBoardLayout(8)
	world := NewWorld(layout, NewSteering(DefaultSteeringGain))

	world.Spawn(uuid.New(), Path{1, 0})

	for tick := 0; tick < maxDropTicks; tick++ {
		world.Step(FixedTimestep)
		states := world.Snapshot()
		if len(states) == 0 {
			break
		}
		x := states[0].Position.X
		if x < BallRadius-0.001 || x > layout.Width-BallRadius+0.001 {
			t.Fatalf("tick %d: ball escaped the canvas at x=%v", tick, x)
		}
		if states[0].Position.Y > layout.BottomY() {
			break
		}
	}
}
