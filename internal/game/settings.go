// Package game implements a single Face Tap session: the entity population, the
// spawning policy, the normal/rush phase machine and the per-frame simulation.
//
// A Session is not safe for concurrent use. It is driven by one goroutine that
// owns both the Session and the sched.Scheduler its triggers are armed on.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/facetap/internal/loop/config"
	"github.com/tomz197/facetap/internal/object"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the fixed schedule of a session.
type Settings struct {
	Arena         object.Screen
	Duration      int // Seconds
	RushThreshold int // Seconds remaining when rush begins

	MaxFaces     int
	InitialFaces int
	FaceSize     float64
	MoveSpeed    float64

	CountdownInterval   time.Duration
	FrameInterval       time.Duration
	NormalSpawnInterval time.Duration
	NormalSpawnChance   float64
	RushSpawnInterval   time.Duration
	RushSpecialInterval time.Duration

	// SpecialMarks are elapsed seconds at which each special kind appears once.
	SpecialMarks []int

	ClickEffectDuration time.Duration
}

// DefaultSettings returns the standard one-minute game.
func DefaultSettings() Settings {
	return Settings{
		Arena:               object.NewScreen(config.ArenaWidth, config.ArenaHeight),
		Duration:            config.GameDuration,
		RushThreshold:       config.RushThreshold,
		MaxFaces:            config.MaxFaces,
		InitialFaces:        config.InitialFaces,
		FaceSize:            config.FaceSize,
		MoveSpeed:           config.MoveSpeed,
		CountdownInterval:   config.CountdownInterval,
		FrameInterval:       config.FrameInterval,
		NormalSpawnInterval: config.NormalSpawnInterval,
		NormalSpawnChance:   config.NormalSpawnChance,
		RushSpawnInterval:   config.RushSpawnInterval,
		RushSpecialInterval: config.RushSpecialInterval,
		SpecialMarks:        append([]int(nil), config.SpecialMarks...),
		ClickEffectDuration: config.ClickEffectDuration,
	}
}

// Validate checks that the settings describe a playable session.
func (s Settings) Validate() error {
	switch {
	case s.Arena.Width <= 0 || s.Arena.Height <= 0:
		return fmt.Errorf("%w: arena %dx%d", ErrInvalidSettings, s.Arena.Width, s.Arena.Height)
	case s.Duration <= 0:
		return fmt.Errorf("%w: duration %d", ErrInvalidSettings, s.Duration)
	case s.MaxFaces <= 0:
		return fmt.Errorf("%w: max faces %d", ErrInvalidSettings, s.MaxFaces)
	case s.InitialFaces < 0:
		return fmt.Errorf("%w: initial faces %d", ErrInvalidSettings, s.InitialFaces)
	case s.FaceSize <= 0:
		return fmt.Errorf("%w: face size %v", ErrInvalidSettings, s.FaceSize)
	case s.CountdownInterval <= 0 || s.FrameInterval <= 0 || s.NormalSpawnInterval <= 0 ||
		s.RushSpawnInterval <= 0 || s.RushSpecialInterval <= 0:
		return fmt.Errorf("%w: intervals must be positive", ErrInvalidSettings)
	case s.NormalSpawnChance < 0 || s.NormalSpawnChance > 1:
		return fmt.Errorf("%w: spawn chance %v", ErrInvalidSettings, s.NormalSpawnChance)
	}
	return nil
}
