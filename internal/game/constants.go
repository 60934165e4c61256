package game

// Board and physics constants. Geometry units are canvas pixels; velocities
// are pixels per second. These MUST match the renderer's board constants.

const (
	CanvasWidth = 800.0
	Spacing     = 40.0 // horizontal and vertical peg pitch
	TopMargin   = 60.0 // y of peg row 0
	BucketDepth = 40.0 // vertical space below the last peg row

	PegRadius  = 5.0
	BallRadius = 7.0

	EntryDropHeight = 50.0 // spawn height above row 0

	Gravity         = 900.0 // downward acceleration
	PegBounceSpeed  = 140.0 // upward speed imparted by a peg contact
	WallRestitution = 0.6

	FixedTimestep = 1.0 / 60.0

	// DefaultSteeringGain is the per-second proportional gain of the
	// corrective horizontal velocity. At 60Hz a ball closes ~13% of the
	// remaining error per tick, which fully converges within one bounce
	// arc (~0.5s) while leaving the rebound visible. Tuned against
	// Spacing/PegRadius/FixedTimestep; override via STEERING_GAIN.
	DefaultSteeringGain = 8.0

	// CenterPegIndex is the committed peg in row 0 (3 pegs, middle one).
	CenterPegIndex = 1

	// MaxStepSeconds guards a board session run loop against clock jumps.
	MaxStepSeconds = 0.1
)
