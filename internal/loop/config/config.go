// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena dimensions in logical units. Rendering scales to fit the display.
const (
	ArenaWidth  = 800
	ArenaHeight = 600
)

// Session timing
const (
	GameDuration      = 60 // Seconds
	RushThreshold     = 10 // Seconds remaining when rush begins
	CountdownInterval = time.Second
	FrameInterval     = time.Second / 60
)

// Faces
const (
	MaxFaces     = 100 // Population cap
	InitialFaces = 10
	FaceSize     = 60.0
	MoveSpeed    = 600.0 // Velocity components are uniform in [-MoveSpeed/2, MoveSpeed/2)
)

// Spawning
const (
	NormalSpawnInterval = 300 * time.Millisecond
	NormalSpawnChance   = 0.3
	RushSpawnInterval   = 100 * time.Millisecond
	RushSpecialInterval = 2000 * time.Millisecond
)

// SpecialMarks are the elapsed seconds at which each special face appears once.
var SpecialMarks = []int{30, 50}

// Feedback
const (
	ClickEffectDuration   = time.Second
	SpecialWarnFraction   = 0.3 // Remaining-life bar turns red below this fraction
	ClickParticleCount    = 12
	ClickParticleSpeed    = 240.0
	ClickParticleLifetime = 0.4 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160
	MaxTermHeight         = 60
)

// Server tick rate. The scheduler is driven at this rate; frames fire on FrameInterval.
const (
	ServerTickRate = 120
	ServerTickTime = time.Second / ServerTickRate
)

// Web transport
const (
	WebSnapshotRate = 30
	WebSnapshotTime = time.Second / WebSnapshotRate
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
