package game

import (
	"math"
	"testing"
)

func TestFixRoundsToFourDecimals(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.23456789, 1.2346},
		{-1.23454, -1.2345},
		{0.00004, 0},
		{400, 400},
	}
	for _, tt := range tests {
		if got := fix(tt.in); got != tt.want {
			t.Errorf("fix(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := NewVec2(3, 4)
	b := NewVec2(1, -2)

	if got := a.Plus(b); got != NewVec2(4, 2) {
		t.Errorf("Plus = %v", got)
	}
	if got := a.Minus(b); got != NewVec2(2, 6) {
		t.Errorf("Minus = %v", got)
	}
	if got := a.Times(2); got != NewVec2(6, 8) {
		t.Errorf("Times = %v", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Magnitude(); got != 5 {
		t.Errorf("Magnitude = %v", got)
	}
	if got := a.MagnitudeSquared(); got != 25 {
		t.Errorf("MagnitudeSquared = %v", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := NewVec2(3, 4).Normalize()
	if math.Abs(n.Magnitude()-1) > 0.001 {
		t.Errorf("normalized magnitude = %v", n.Magnitude())
	}

	zero := NewVec2(0, 0)
	if got := zero.Normalize(); !got.IsZero() {
		t.Errorf("normalized zero vector = %v", got)
	}
}
