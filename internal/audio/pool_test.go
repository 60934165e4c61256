package audio

import "testing"

// Speaker hardware is unavailable in CI, so these tests exercise the
// uninitialized pool: rotation and mute bookkeeping must behave the same
// whether or not sound actually plays.

func TestNewPoolDefaultsVoiceCount(t *testing.T) {
	if p := NewPool(0); len(p.voices) != DefaultVoices {
		t.Errorf("zero voices not defaulted: %d", len(p.voices))
	}
	if p := NewPool(-1); len(p.voices) != DefaultVoices {
		t.Errorf("negative voices not defaulted: %d", len(p.voices))
	}
	if p := NewPool(3); len(p.voices) != 3 {
		t.Errorf("explicit voice count overridden: %d", len(p.voices))
	}
}

func TestTriggerRotatesAllVoices(t *testing.T) {
	const k = 5
	p := NewPool(k)

	// K triggers walk every voice once and wrap back to voice 0.
	for i := 0; i < k; i++ {
		if got := p.VoiceIndex(); got != i {
			t.Fatalf("trigger %d scheduled on voice %d, want %d", i, got, i)
		}
		p.Trigger()
	}
	if got := p.VoiceIndex(); got != 0 {
		t.Fatalf("after %d triggers next voice is %d, want wrap to 0", k, got)
	}

	// The K+1th trigger reuses voice 0 without error.
	p.Trigger()
	if got := p.VoiceIndex(); got != 1 {
		t.Fatalf("after reuse next voice is %d, want 1", got)
	}
}

func TestTriggerSafeWhenUninitialized(t *testing.T) {
	p := NewPool(2)
	for i := 0; i < 10; i++ {
		p.Trigger()
	}
	if got := p.VoiceIndex(); got != 0 {
		t.Errorf("rotation desynced while silent: next = %d", got)
	}
}

func TestMuteKeepsRotation(t *testing.T) {
	p := NewPool(3)
	p.SetMuted(true)

	p.Trigger()
	p.Trigger()
	if got := p.VoiceIndex(); got != 2 {
		t.Errorf("muted triggers did not rotate: next = %d", got)
	}

	p.SetMuted(false)
	p.Trigger()
	if got := p.VoiceIndex(); got != 0 {
		t.Errorf("rotation broken after unmute: next = %d", got)
	}
}

func TestCloseSafeWhenUninitialized(t *testing.T) {
	p := NewPool(4)
	p.Close()
	p.Trigger() // still safe afterwards
}
