package leaderboard

import (
	"testing"
	"time"
)

func TestDayKeyIsUTCDate(t *testing.T) {
	// 2026-03-01 00:30 UTC+3 is still 2026-02-28 in UTC; day keys must not
	// split a day across timezones.
	loc := time.FixedZone("UTC+3", 3*3600)
	local := time.Date(2026, 3, 1, 0, 30, 0, 0, loc)

	if got := dayKey("lb:wagered", local); got != "lb:wagered:2026-02-28" {
		t.Errorf("dayKey = %q, want lb:wagered:2026-02-28", got)
	}
}

func TestDayKeyPrefixes(t *testing.T) {
	at := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	if got := dayKey("lb:wagered", at); got != "lb:wagered:2026-08-24" {
		t.Errorf("wagered key = %q", got)
	}
	if got := dayKey("lb:best_win", at); got != "lb:best_win:2026-08-24" {
		t.Errorf("best win key = %q", got)
	}
}
