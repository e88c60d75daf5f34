package physics

import (
	"math"
	"testing"
)

func TestPointInCircle(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 30, 30, true},
		{"on edge", 60, 30, true},
		{"just outside", 60.01, 30, false},
		{"diagonal outside", 52, 52, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInCircle(tt.px, tt.py, 30, 30, 30); got != tt.want {
				t.Errorf("PointInCircle(%v,%v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected 5, got %v", d)
	}
}

func TestReflect(t *testing.T) {
	pos, vel := -5.0, -100.0
	if !Reflect(&pos, &vel, 740) {
		t.Fatal("expected bounce below zero")
	}
	if pos != 0 || vel != 100 {
		t.Errorf("expected pos 0 vel 100, got %v %v", pos, vel)
	}

	pos, vel = 750, 100
	if !Reflect(&pos, &vel, 740) {
		t.Fatal("expected bounce above max")
	}
	if pos != 740 || vel != -100 {
		t.Errorf("expected pos 740 vel -100, got %v %v", pos, vel)
	}

	pos, vel = 740, 100
	if Reflect(&pos, &vel, 740) {
		t.Error("touching the boundary is not a crossing")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Clamp(1, 0, -1); got != 0 {
		t.Errorf("inverted range should clamp to lo, got %v", got)
	}
}
