package client

import (
	"time"

	"github.com/tomz197/facetap/internal/draw"
	"github.com/tomz197/facetap/internal/input"
	"github.com/tomz197/facetap/internal/object"
)

// Screen is the client's current screen.
type Screen int

const (
	ScreenStart   Screen = iota // Title screen
	ScreenPlaying               // Active gameplay
	ScreenResult                // Final score and share message
)

// ClientState holds per-connection presentation state.
type ClientState struct {
	Input        input.Input
	Screen       Screen
	prevScreen   Screen
	Running      bool              // Client loop running
	termSizeFunc draw.TermSizeFunc // Function to get terminal size
	delta        time.Duration     // Frame delta time (client-side)
	isInactive   bool              // Whether the client is in inactive warning state
	wasInactive  bool

	particles    []*object.Particle
	lastEffectID uint64 // Newest click effect already burst into particles
	finalScore   int
	startSeq     uint64 // Snapshot sequence when the current game was requested
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:     ScreenStart,
		prevScreen: -1,
		Running:    true,
	}
}
