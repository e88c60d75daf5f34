package server

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/facetap/internal/game"
	"github.com/tomz197/facetap/internal/sched"
)

func newTestServer(t *testing.T) (*Server, *sched.MockClock, context.CancelFunc) {
	t.Helper()
	clock := sched.NewMockClock(time.Unix(5000, 0))
	s, err := New(Options{
		Clock:        clock,
		Rand:         rand.New(rand.NewSource(1)),
		TickInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(cancel)
	return s, clock, cancel
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestServerStartAndClick(t *testing.T) {
	s, _, _ := newTestServer(t)

	if s.GetSnapshot() == nil || s.GetSnapshot().Playing() {
		t.Fatal("expected an idle snapshot before start")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitFor(t, "playing snapshot", func() bool { return s.GetSnapshot().Playing() })

	snap := s.GetSnapshot()
	if len(snap.Faces) != 10 {
		t.Fatalf("expected 10 faces, got %d", len(snap.Faces))
	}

	// The clock is frozen, so faces have not moved since the snapshot.
	f := snap.Faces[len(snap.Faces)-1]
	out, err := s.RegisterClick(f.X+f.Size/2, f.Y+f.Size/2)
	if err != nil {
		t.Fatalf("RegisterClick: %v", err)
	}
	if !out.Hit {
		t.Fatal("expected a hit at the face center")
	}
	if s.GetSnapshot().Score != out.Score {
		t.Errorf("snapshot score %d != outcome score %d", s.GetSnapshot().Score, out.Score)
	}
}

func TestServerRunsToEnd(t *testing.T) {
	s, clock, _ := newTestServer(t)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "playing snapshot", func() bool { return s.GetSnapshot().Playing() })

	clock.Advance(30 * time.Second)
	waitFor(t, "half time", func() bool { return s.GetSnapshot().TimeRemaining == 30 })

	clock.Advance(30 * time.Second)
	waitFor(t, "end", func() bool { return s.GetSnapshot().State == game.StateEnded })

	final := s.FinalScore()
	clock.Advance(10 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if s.FinalScore() != final {
		t.Error("score changed after end")
	}
}

func TestServerEnd(t *testing.T) {
	s, _, _ := newTestServer(t)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.End(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "end", func() bool { return s.GetSnapshot().State == game.StateEnded })
	if s.GetSnapshot().TimeRemaining != 60 {
		t.Errorf("expected early end at 60, got %d", s.GetSnapshot().TimeRemaining)
	}
}

func TestServerClosed(t *testing.T) {
	s, _, cancel := newTestServer(t)
	cancel()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	if err := s.Start(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := s.RegisterClick(1, 1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	settings := game.DefaultSettings()
	settings.MaxFaces = 0
	if _, err := New(Options{Settings: &settings}); !errors.Is(err, game.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}
