package game

import (
	"time"

	"github.com/tomz197/facetap/internal/object"
)

// State is the session controller state.
type State uint8

const (
	StateIdle State = iota
	StatePlaying
	StateEnded
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "idle"
	}
}

// Phase governs which spawn triggers are armed.
type Phase uint8

const (
	PhaseNormal Phase = iota
	PhaseRush
)

func (p Phase) String() string {
	if p == PhaseRush {
		return "rush"
	}
	return "normal"
}

// FaceView is the read-only view of a live face handed to renderers.
type FaceView struct {
	Kind      object.Kind
	X, Y      float64
	Size      float64
	Remaining float64 // Fraction of lifetime left, in [0, 1]
}

// ClickEffect is the floating score feedback shown where a face was clicked.
type ClickEffect struct {
	ID       uint64
	X, Y     float64
	Label    string // "+10", "÷2", ...
	Positive bool
	At       time.Time
}

// Snapshot is an immutable picture of a session, published after every change.
type Snapshot struct {
	Seq           uint64
	Taken         time.Time
	State         State
	Phase         Phase
	Score         int
	TimeRemaining int
	Duration      int
	Arena         object.Screen
	Faces         []FaceView
	Effects       []ClickEffect

	// GamesEnded counts the games this session has finished. LastFinalScore is
	// the score the most recent of them ended with; both survive a restart.
	GamesEnded     uint64
	LastFinalScore int
}

// Playing reports whether the snapshot was taken during play.
func (s *Snapshot) Playing() bool {
	return s != nil && s.State == StatePlaying
}

// EffectAge returns how old a click effect is relative to the snapshot.
func (s *Snapshot) EffectAge(e ClickEffect) time.Duration {
	return s.Taken.Sub(e.At)
}
