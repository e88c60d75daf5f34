package object

import (
	"math/rand"
	"testing"
	"time"
)

var testArena = NewScreen(800, 600)

func TestFaceAdvanceStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Unix(0, 0)
	maxX, maxY := testArena.MaxPosition(60)

	for i := 0; i < 50; i++ {
		f := NewFaceRandom(rng, BasicKinds[i%len(BasicKinds)], testArena, 60, 600, now)
		for step := 0; step < 600; step++ {
			f.Advance(time.Second/60, testArena)
			if f.X < 0 || f.X > maxX || f.Y < 0 || f.Y > maxY {
				t.Fatalf("face %d left the arena at step %d: (%v, %v)", i, step, f.X, f.Y)
			}
		}
	}
}

func TestFaceAdvanceReflects(t *testing.T) {
	f := NewFace(KindHappy, 730, 100, 600, 0, 60, time.Unix(0, 0))
	f.Advance(100*time.Millisecond, testArena)

	if f.X != 740 {
		t.Errorf("expected X clamped to 740, got %v", f.X)
	}
	if f.VX != -600 {
		t.Errorf("expected VX flipped to -600, got %v", f.VX)
	}
	if f.VY != 0 || f.Y != 100 {
		t.Errorf("Y axis should be untouched, got Y=%v VY=%v", f.Y, f.VY)
	}
}

func TestFaceAdvanceTouchingEdgeKeepsVelocity(t *testing.T) {
	f := NewFace(KindHappy, 0, 0, 0, 0, 60, time.Unix(0, 0))
	f.Advance(time.Second, testArena)
	if f.X != 0 || f.Y != 0 {
		t.Errorf("stationary face moved to (%v, %v)", f.X, f.Y)
	}
}

func TestFaceClickedDoesNotMove(t *testing.T) {
	f := NewFace(KindHappy, 100, 100, 300, 300, 60, time.Unix(0, 0))
	f.Clicked = true
	f.Advance(time.Second, testArena)
	if f.X != 100 || f.Y != 100 {
		t.Errorf("clicked face moved to (%v, %v)", f.X, f.Y)
	}
}

func TestFaceHitTest(t *testing.T) {
	f := NewFace(KindHappy, 100, 200, 0, 0, 60, time.Unix(0, 0))

	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 130, 230, true},
		{"edge", 160, 230, true},
		{"bounding box corner", 100, 200, false},
		{"outside", 161, 230, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.HitTest(tt.px, tt.py); got != tt.want {
				t.Errorf("HitTest(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestFaceExpiry(t *testing.T) {
	start := time.Unix(100, 0)
	f := NewFace(KindAngel, 0, 0, 0, 0, 60, start)

	if f.IsExpired(start.Add(2999 * time.Millisecond)) {
		t.Error("angel expired before its lifetime")
	}
	if !f.IsExpired(start.Add(3 * time.Second)) {
		t.Error("angel should expire exactly at its lifetime")
	}

	// Once expired, stays expired.
	expired := false
	for ms := 0; ms <= 8000; ms += 250 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		if expired && !f.IsExpired(now) {
			t.Fatalf("expiry not monotonic at %dms", ms)
		}
		expired = f.IsExpired(now)
	}
}

func TestFaceRemainingFraction(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFace(KindDevil, 0, 0, 0, 0, 60, start)

	if got := f.RemainingFraction(start); got != 1 {
		t.Errorf("expected 1 at creation, got %v", got)
	}
	if got := f.RemainingFraction(start.Add(3500 * time.Millisecond)); got != 0.5 {
		t.Errorf("expected 0.5 halfway, got %v", got)
	}
	if got := f.RemainingFraction(start.Add(time.Minute)); got != 0 {
		t.Errorf("expected 0 after expiry, got %v", got)
	}
}

func TestFaceResolveClickOnce(t *testing.T) {
	f := NewFace(KindHappy, 0, 0, 0, 0, 60, time.Unix(0, 0))

	effect, ok := f.ResolveClick()
	if !ok {
		t.Fatal("first click should resolve")
	}
	if effect != Flat(10) {
		t.Errorf("expected +10, got %v", effect)
	}
	if _, ok := f.ResolveClick(); ok {
		t.Error("second click should be rejected")
	}
}

func TestNewFaceRandomVelocityRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		f := NewFaceRandom(rng, KindSad, testArena, 60, 600, time.Unix(0, 0))
		if f.VX < -300 || f.VX >= 300 || f.VY < -300 || f.VY >= 300 {
			t.Fatalf("velocity out of range: (%v, %v)", f.VX, f.VY)
		}
	}
}
