package game

import "fmt"

// Path is the externally supplied left/right sequence for one ball:
// one bit per peg row, 0 = left, 1 = right.
type Path []byte

// Validate checks length and that every entry is binary. The simulation
// treats an invalid path as "no steering target" rather than an error that
// could change the outcome of other balls.
func (p Path) Validate(rows int) error {
	if len(p) != rows {
		return fmt.Errorf("path length %d does not match %d rows", len(p), rows)
	}
	for i, b := range p {
		if b != 0 && b != 1 {
			return fmt.Errorf("path[%d] = %d is not binary", i, b)
		}
	}
	return nil
}

// FinalBucket is the landing bucket dictated by the path: the count of
// right-steps, always in [0, rows] for a well-formed path.
func (p Path) FinalBucket() int {
	sum := 0
	for _, b := range p {
		if b == 1 {
			sum++
		}
	}
	return sum
}

// PegIndexAtRow returns the committed peg index within row r: the center peg
// of row 0 plus every right-step taken before r.
func (p Path) PegIndexAtRow(r int) int {
	idx := CenterPegIndex
	for i := 0; i < r && i < len(p); i++ {
		idx += int(p[i])
	}
	return idx
}

// NextTarget resolves the steering target after the ball has struck its
// committed peg in row r. For interior rows this is the committed peg of
// row r+1; after the last row it is the final bucket's center. ok=false
// means the path is exhausted or malformed and the ball free-falls.
func (p Path) NextTarget(l *BoardLayout, r int) (x float64, final bool, ok bool) {
	if r < 0 || r >= len(p) {
		return 0, false, false
	}
	if r == l.Rows-1 {
		return l.BucketCenterX(p.FinalBucket()), true, true
	}
	next := p.PegIndexAtRow(r) + int(p[r])
	peg, found := l.PegAt(r+1, next)
	if !found {
		return 0, false, false
	}
	return peg.X, false, true
}
