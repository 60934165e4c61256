package game

import (
	"math"
	"testing"
)

func TestBoardLayoutPegCounts(t *testing.T) {
	for _, rows := range []int{8, 12, 16} {
		l := NewBoardLayout(rows)

		if len(l.PegRows) != rows {
			t.Fatalf("rows=%d: got %d peg rows", rows, len(l.PegRows))
		}
		for r, pegs := range l.PegRows {
			if len(pegs) != r+3 {
				t.Errorf("rows=%d row=%d: got %d pegs, want %d", rows, r, len(pegs), r+3)
			}
		}
		if l.BucketCount() != rows+1 {
			t.Errorf("rows=%d: got %d buckets, want %d", rows, l.BucketCount(), rows+1)
		}
	}
}

func TestBoardLayoutRowsCentered(t *testing.T) {
	l := NewBoardLayout(12)

	for r, pegs := range l.PegRows {
		first, last := pegs[0].X, pegs[len(pegs)-1].X
		center := (first + last) / 2
		if math.Abs(center-CanvasWidth/2) > 0.001 {
			t.Errorf("row %d not centered: midpoint %v", r, center)
		}
	}
}

func TestBucketIndexAtRoundTrips(t *testing.T) {
	for _, rows := range []int{8, 12, 16} {
		l := NewBoardLayout(rows)
		for k := 0; k <= rows; k++ {
			if got := l.BucketIndexAt(l.BucketCenterX(k)); got != k {
				t.Errorf("rows=%d bucket=%d: center maps to %d", rows, k, got)
			}
		}
	}
}

func TestBucketIndexAtClamps(t *testing.T) {
	l := NewBoardLayout(8)

	if got := l.BucketIndexAt(-100); got != 0 {
		t.Errorf("far left maps to %d, want 0", got)
	}
	if got := l.BucketIndexAt(CanvasWidth + 100); got != 8 {
		t.Errorf("far right maps to %d, want 8", got)
	}
}

func TestEntryPointAboveCenterPeg(t *testing.T) {
	l := NewBoardLayout(8)
	entry := l.EntryPoint()

	center, ok := l.PegAt(0, CenterPegIndex)
	if !ok {
		t.Fatal("center peg of row 0 missing")
	}
	if entry.X != center.X {
		t.Errorf("entry x %v not above center peg x %v", entry.X, center.X)
	}
	if entry.Y >= center.Y {
		t.Errorf("entry y %v not above row 0 y %v", entry.Y, center.Y)
	}
}

func TestPegAtMisses(t *testing.T) {
	l := NewBoardLayout(8)

	tests := []struct {
		row, index int
	}{
		{-1, 0},
		{8, 0},
		{0, -1},
		{0, 3},
		{7, 10},
	}
	for _, tt := range tests {
		if _, ok := l.PegAt(tt.row, tt.index); ok {
			t.Errorf("PegAt(%d,%d) unexpectedly found a peg", tt.row, tt.index)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"medium", DifficultyMedium, false},
		{"hard", DifficultyHard, false},
		{"", "", true},
		{"EASY", "", true},
		{"extreme", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyRows(t *testing.T) {
	if got := DifficultyEasy.Rows(); got != 8 {
		t.Errorf("easy rows = %d, want 8", got)
	}
	if got := DifficultyMedium.Rows(); got != 12 {
		t.Errorf("medium rows = %d, want 12", got)
	}
	if got := DifficultyHard.Rows(); got != 16 {
		t.Errorf("hard rows = %d, want 16", got)
	}
	if got := Difficulty("bogus").Rows(); got != 0 {
		t.Errorf("bogus rows = %d, want 0", got)
	}
}

func TestParseRisk(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		if _, err := ParseRisk(valid); err != nil {
			t.Errorf("ParseRisk(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "LOW", "insane"} {
		if _, err := ParseRisk(invalid); err == nil {
			t.Errorf("ParseRisk(%q) expected error", invalid)
		}
	}
}
