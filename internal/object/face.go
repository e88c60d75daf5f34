package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/facetap/internal/physics"
)

// Face is a clickable game entity. X and Y are the top-left corner of its
// bounding square; the hit area is the inscribed circle.
type Face struct {
	Kind      Kind
	X, Y      float64   // Position (top-left)
	VX, VY    float64   // Velocity in units per second
	CreatedAt time.Time // Monotonic creation time
	Size      float64   // Diameter
	Clicked   bool      // Terminal once true
}

// NewFace creates a face at (x, y) moving at (vx, vy).
func NewFace(kind Kind, x, y, vx, vy, size float64, now time.Time) *Face {
	return &Face{
		Kind:      kind,
		X:         x,
		Y:         y,
		VX:        vx,
		VY:        vy,
		CreatedAt: now,
		Size:      size,
	}
}

// NewFaceRandom creates a face at a random position inside the arena with a random
// velocity whose components are uniform in [-speed/2, speed/2).
func NewFaceRandom(rng *rand.Rand, kind Kind, arena Screen, size, speed float64, now time.Time) *Face {
	maxX, maxY := arena.MaxPosition(size)
	return NewFace(
		kind,
		rng.Float64()*maxX,
		rng.Float64()*maxY,
		(rng.Float64()-0.5)*speed,
		(rng.Float64()-0.5)*speed,
		size,
		now,
	)
}

// Advance moves the face by its velocity over elapsed and bounces it off the
// arena walls. Clicked faces do not move.
func (f *Face) Advance(elapsed time.Duration, arena Screen) {
	if f.Clicked {
		return
	}
	dt := elapsed.Seconds()
	f.X += f.VX * dt
	f.Y += f.VY * dt

	maxX, maxY := arena.MaxPosition(f.Size)
	physics.Reflect(&f.X, &f.VX, maxX)
	physics.Reflect(&f.Y, &f.VY, maxY)
}

// Center returns the center of the face.
func (f *Face) Center() (float64, float64) {
	r := f.Radius()
	return f.X + r, f.Y + r
}

// Radius returns the hit radius.
func (f *Face) Radius() float64 {
	return f.Size / 2
}

// HitTest reports whether (px, py) lies within the face's circle.
func (f *Face) HitTest(px, py float64) bool {
	cx, cy := f.Center()
	return physics.PointInCircle(px, py, cx, cy, f.Radius())
}

// Age returns how long the face has existed at now.
func (f *Face) Age(now time.Time) time.Duration {
	return now.Sub(f.CreatedAt)
}

// IsExpired reports whether the face's lifetime has run out at now.
func (f *Face) IsExpired(now time.Time) bool {
	return f.Age(now) >= f.Kind.Info().Lifetime
}

// RemainingFraction returns the fraction of lifetime left at now, in [0, 1].
func (f *Face) RemainingFraction(now time.Time) float64 {
	lifetime := f.Kind.Info().Lifetime
	if lifetime <= 0 {
		return 0
	}
	return physics.Clamp(1-float64(f.Age(now))/float64(lifetime), 0, 1)
}

// ResolveClick marks the face clicked and returns its score effect.
// A face resolves only once; later calls return false.
func (f *Face) ResolveClick() (ScoreEffect, bool) {
	if f.Clicked {
		return ScoreEffect{}, false
	}
	f.Clicked = true
	return f.Kind.Info().Effect, true
}
