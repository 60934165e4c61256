package game

import (
	"math"
	"testing"
)

func TestNewSteeringDefaultsGain(t *testing.T) {
	if s := NewSteering(0); s.Gain != DefaultSteeringGain {
		t.Errorf("zero gain not defaulted: %v", s.Gain)
	}
	if s := NewSteering(-3); s.Gain != DefaultSteeringGain {
		t.Errorf("negative gain not defaulted: %v", s.Gain)
	}
	if s := NewSteering(12); s.Gain != 12 {
		t.Errorf("explicit gain overridden: %v", s.Gain)
	}
}

func TestCorrectLeavesUntargetedBallsAlone(t *testing.T) {
	s := NewSteering(DefaultSteeringGain)
	b := &ballBody{pos: NewVec2(400, 100), vel: NewVec2(37, 200)}

	s.Correct(b)
	if b.vel.X != 37 {
		t.Errorf("untargeted ball's vx changed to %v", b.vel.X)
	}
}

func TestCorrectConvergesWithinBounceArc(t *testing.T) {
	// One bounce arc lasts about half a second. Starting a full peg pitch
	// off target, the drift must shrink below a ball radius well inside
	// that window or the next committed contact is missed.
	s := NewSteering(DefaultSteeringGain)
	b := &ballBody{
		pos:       NewVec2(400-Spacing, 100),
		targetX:   400,
		hasTarget: true,
	}

	for tick := 0; tick < 30; tick++ {
		s.Correct(b)
		b.pos.X = fix(b.pos.X + b.vel.X*FixedTimestep)
	}

	if err := math.Abs(b.targetX - b.pos.X); err > 1.0 {
		t.Errorf("residual error %v px after 30 ticks", err)
	}
}

func TestCorrectNeverOvershoots(t *testing.T) {
	s := NewSteering(DefaultSteeringGain)
	b := &ballBody{
		pos:       NewVec2(360, 100),
		targetX:   400,
		hasTarget: true,
	}

	for tick := 0; tick < 60; tick++ {
		s.Correct(b)
		b.pos.X = fix(b.pos.X + b.vel.X*FixedTimestep)
		if b.pos.X > b.targetX+0.001 {
			t.Fatalf("overshot target at tick %d: x=%v", tick, b.pos.X)
		}
	}
}
