package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/facetap/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual spark shown where a face was clicked.
// Particles live only in renderers; they never touch session state.
type Particle struct {
	X, Y        float64 // Position in arena units
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Color       draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.9
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates count particles flying out of (x, y) in a circle.
func SpawnBurst(rng *rand.Rand, x, y float64, count int, speed, lifetime float64, color draw.Color) []*Particle {
	out := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		out = append(out, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color))
	}
	return out
}

// Update advances the particle by dt seconds. Returns true when it should be removed.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// particleTrail is how many seconds of motion the streak behind a particle covers.
const particleTrail = 0.03

// Draw renders the particle as a short streak along its velocity, shrinking to a
// single pixel and then disappearing as it fades.
func (p *Particle) Draw(c *draw.Canvas) {
	if p.MaxLifetime <= 0 {
		c.SetFloat(p.X, p.Y, p.Color)
		return
	}
	frac := p.Lifetime / p.MaxLifetime
	if frac < 0.25 {
		return
	}
	if frac < 0.5 {
		c.SetFloat(p.X, p.Y, p.Color)
		return
	}
	tail := draw.Point{X: p.X - p.VX*particleTrail, Y: p.Y - p.VY*particleTrail}
	c.DrawLine(draw.Point{X: p.X, Y: p.Y}, tail, p.Color)
}
