package game

import "fmt"

// Difficulty selects the peg row count of the board lattice.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // 8 rows
	DifficultyMedium Difficulty = "medium" // 12 rows
	DifficultyHard   Difficulty = "hard"   // 16 rows
)

// Rows returns the peg row count for the difficulty.
func (d Difficulty) Rows() int {
	switch d {
	case DifficultyEasy:
		return 8
	case DifficultyMedium:
		return 12
	case DifficultyHard:
		return 16
	}
	return 0
}

// ParseDifficulty validates a client-supplied difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("invalid difficulty: %q", s)
}

// Risk selects the multiplier table for a given difficulty.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// ParseRisk validates a client-supplied risk string.
func ParseRisk(s string) (Risk, error) {
	switch Risk(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return Risk(s), nil
	}
	return "", fmt.Errorf("invalid risk: %q", s)
}

// Peg is a static lattice body.
type Peg struct {
	Row   int     `json:"row"`
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// BoardLayout is the pure geometry of one board configuration: peg positions
// per row and bucket boundaries. Row r carries r+3 pegs; there are rows+1
// buckets of one Spacing each, centered on the canvas.
type BoardLayout struct {
	Rows         int
	Width        float64
	PegRows      [][]Peg
	BucketStartX float64
}

// NewBoardLayout builds the lattice for the given row count on a fixed-width
// canvas. Inputs are closed enums upstream, so there is no failure mode.
func NewBoardLayout(rows int) *BoardLayout {
	l := &BoardLayout{
		Rows:    rows,
		Width:   CanvasWidth,
		PegRows: make([][]Peg, rows),
	}

	for r := 0; r < rows; r++ {
		count := r + 3
		rowWidth := float64(count-1) * Spacing
		startX := (CanvasWidth - rowWidth) / 2
		y := TopMargin + float64(r)*Spacing

		pegs := make([]Peg, count)
		for i := 0; i < count; i++ {
			pegs[i] = Peg{Row: r, Index: i, X: fix(startX + float64(i)*Spacing), Y: fix(y)}
		}
		l.PegRows[r] = pegs
	}

	totalBucketsWidth := float64(rows+1) * Spacing
	l.BucketStartX = fix((CanvasWidth - totalBucketsWidth) / 2)

	return l
}

// PegAt returns the peg at (row, index), or false on a lattice miss. A miss
// never occurs for a well-formed path.
func (l *BoardLayout) PegAt(row, index int) (Peg, bool) {
	if row < 0 || row >= len(l.PegRows) {
		return Peg{}, false
	}
	pegs := l.PegRows[row]
	if index < 0 || index >= len(pegs) {
		return Peg{}, false
	}
	return pegs[index], true
}

// BucketCount is rows+1, the length of every multiplier table for the board.
func (l *BoardLayout) BucketCount() int {
	return l.Rows + 1
}

// BucketCenterX returns the x coordinate of bucket k's center.
func (l *BoardLayout) BucketCenterX(k int) float64 {
	return fix(l.BucketStartX + float64(k)*Spacing + Spacing/2)
}

// BucketIndexAt maps a horizontal position to the bucket beneath it,
// clamped to the valid range.
func (l *BoardLayout) BucketIndexAt(x float64) int {
	k := int((x - l.BucketStartX) / Spacing)
	if k < 0 {
		k = 0
	}
	if k > l.Rows {
		k = l.Rows
	}
	return k
}

// EntryPoint is the single spawn position, centered above row 0.
func (l *BoardLayout) EntryPoint() Vec2 {
	return NewVec2(CanvasWidth/2, TopMargin-EntryDropHeight)
}

// BottomY is the board's lower boundary; a ball past it has landed.
func (l *BoardLayout) BottomY() float64 {
	return TopMargin + float64(l.Rows)*Spacing + BucketDepth
}

// LastRowY is the y coordinate of the final peg row.
func (l *BoardLayout) LastRowY() float64 {
	return TopMargin + float64(l.Rows-1)*Spacing
}
