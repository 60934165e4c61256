// Package fair derives ball paths from a committed server seed so every
// drop can be audited after the fact. The simulation itself treats a path
// as opaque external input; this package is the in-process stand-in for
// the remote fairness oracle.
package fair

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/plinkoplay/backend/internal/game"
)

// byteGenerator streams HMAC-SHA256 output for one (clientSeed, nonce)
// round sequence.
type byteGenerator struct {
	serverSeed   string
	clientSeed   string
	nonce        uint64
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

func newByteGenerator(serverSeed, clientSeed string, nonce uint64) *byteGenerator {
	bg := &byteGenerator{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	bg.generateRound()
	return bg
}

func (bg *byteGenerator) generateRound() {
	h := hmac.New(sha256.New, []byte(bg.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", bg.clientSeed, bg.nonce, bg.currentRound)
	copy(bg.buffer[:], h.Sum(nil))
}

func (bg *byteGenerator) next() byte {
	if bg.currentPos >= 32 {
		bg.currentRound++
		bg.currentPos = 0
		bg.generateRound()
	}
	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// nextFloat consumes exactly 4 bytes and maps them into [0, 1).
func (bg *byteGenerator) nextFloat() float64 {
	result := 0.0
	for i := 1; i <= 4; i++ {
		result += float64(bg.next()) / math.Pow(256, float64(i))
	}
	return result
}

// Source generates paths from a server seed held for the process lifetime.
type Source struct {
	serverSeed string
}

func NewSource(serverSeed string) *Source {
	return &Source{serverSeed: serverSeed}
}

// SeedHash is the public commitment to the server seed, published before
// any play so the seed can be revealed and checked later.
func (s *Source) SeedHash() string {
	sum := sha256.Sum256([]byte(s.serverSeed))
	return hex.EncodeToString(sum[:])
}

// GeneratePath derives the left/right sequence for one ball: one float per
// row, f >= 0.5 steps right.
func (s *Source) GeneratePath(clientSeed string, nonce uint64, rows int) game.Path {
	return derivePath(s.serverSeed, clientSeed, nonce, rows)
}

// Verify recomputes a path from a revealed server seed for audit.
func Verify(serverSeed, clientSeed string, nonce uint64, rows int) game.Path {
	return derivePath(serverSeed, clientSeed, nonce, rows)
}

func derivePath(serverSeed, clientSeed string, nonce uint64, rows int) game.Path {
	bg := newByteGenerator(serverSeed, clientSeed, nonce)
	path := make(game.Path, rows)
	for i := 0; i < rows; i++ {
		if bg.nextFloat() >= 0.5 {
			path[i] = 1
		}
	}
	return path
}
