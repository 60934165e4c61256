// Package audio provides collision sound feedback for local (kiosk)
// deployments. Playback is strictly best-effort: any speaker or decoder
// failure is logged and the simulation never notices.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(48000)
	DefaultVoices = 5
	hitFrequency  = 880.0
	hitDuration   = 60 * time.Millisecond
)

// Pool is a fixed-size rotating set of independently playable voices. Each
// peg hit takes the next voice in turn, so up to len(voices) collision
// sounds overlap without cutting off one another.
type Pool struct {
	mu          sync.Mutex
	voices      []*beep.Ctrl
	mixer       *beep.Mixer
	next        int
	muted       bool
	initialized bool
}

// NewPool creates a pool with k voices (DefaultVoices when k <= 0). The
// pool is inert until Initialize succeeds; Trigger stays safe either way.
func NewPool(k int) *Pool {
	if k <= 0 {
		k = DefaultVoices
	}
	return &Pool{
		voices: make([]*beep.Ctrl, k),
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker and attaches the mixer. Safe to call twice.
// Failure (headless host, autoplay restrictions) leaves the pool silent.
func (p *Pool) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted toggles playback without touching the rotation.
func (p *Pool) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Trigger plays the collision sound on the next voice in rotation and
// advances the index modulo the pool size. Reusing a voice resets its
// playback from the start; in-flight playback on other voices continues.
func (p *Pool) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.next
	p.next = (p.next + 1) % len(p.voices)

	if !p.initialized || p.muted {
		return
	}

	tone, err := generators.SineTone(sampleRate, hitFrequency)
	if err != nil {
		log.Printf("[AUDIO] Failed to build collision tone: %v", err)
		return
	}

	ctrl := &beep.Ctrl{Streamer: beep.Take(sampleRate.N(hitDuration), tone)}

	speaker.Lock()
	if p.voices[i] != nil {
		// Reset: silence the voice's previous playback before reuse.
		p.voices[i].Streamer = nil
	}
	p.voices[i] = ctrl
	p.mixer.Add(ctrl)
	speaker.Unlock()
}

// VoiceIndex reports the next voice to be used (for tests).
func (p *Pool) VoiceIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

// Close silences all voices and clears the mixer. The speaker itself has
// no close API in beep; clearing streamers is sufficient.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	for i, v := range p.voices {
		if v != nil {
			v.Streamer = nil
			p.voices[i] = nil
		}
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
