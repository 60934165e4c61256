package game

// Steering is the per-tick kinematic correction that drifts a falling ball
// toward its committed target x. It overwrites horizontal velocity only;
// gravity keeps full ownership of the vertical axis, so peg rebounds stay
// visible while the drift resolves deterministically to the right bucket.
type Steering struct {
	// Gain is proportional, per second: vx = (targetX - x) * Gain.
	// Too low and the ball misses its committed peg; too high and the
	// bounce is no longer visible. Tuned, not derived.
	Gain float64
}

// NewSteering returns a controller with the given gain, falling back to the
// default when the gain is unset or nonsensical.
func NewSteering(gain float64) Steering {
	if gain <= 0 {
		gain = DefaultSteeringGain
	}
	return Steering{Gain: gain}
}

// Correct applies the corrective horizontal velocity to a ball that has a
// committed target. Balls without a target (pre-first-collision, malformed
// path, lattice miss) free-fall untouched.
func (s Steering) Correct(b *ballBody) {
	if !b.hasTarget {
		return
	}
	b.vel.X = fix((b.targetX - b.pos.X) * s.Gain)
}
