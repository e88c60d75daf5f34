package sched

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSchedulerFiresAtFixedCadence(t *testing.T) {
	s := New()
	var ticks []time.Time
	s.Every(epoch, 100*time.Millisecond, func(now time.Time) {
		ticks = append(ticks, now)
	})

	if n := s.RunDue(epoch.Add(99 * time.Millisecond)); n != 0 {
		t.Fatalf("expected no fires before first deadline, got %d", n)
	}
	if n := s.RunDue(epoch.Add(350 * time.Millisecond)); n != 3 {
		t.Fatalf("expected 3 fires, got %d", n)
	}
	for i, tick := range ticks {
		want := epoch.Add(time.Duration(i+1) * 100 * time.Millisecond)
		if !tick.Equal(want) {
			t.Errorf("tick %d: expected %v, got %v", i, want, tick)
		}
	}
}

func TestSchedulerOrdersByDeadlineThenArmOrder(t *testing.T) {
	s := New()
	var order []string
	s.Every(epoch, time.Second, func(time.Time) { order = append(order, "slow") })
	s.Every(epoch, 500*time.Millisecond, func(time.Time) { order = append(order, "fast") })

	s.RunDue(epoch.Add(time.Second))

	want := []string{"fast", "slow", "fast"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestSchedulerCancelDuringRun(t *testing.T) {
	s := New()
	var victimFires int
	var victim TaskID
	s.Every(epoch, time.Second, func(time.Time) {
		s.Cancel(victim)
	})
	victim = s.Every(epoch, time.Second, func(time.Time) { victimFires++ })

	s.RunDue(epoch.Add(5 * time.Second))

	if victimFires != 0 {
		t.Errorf("canceled task fired %d times", victimFires)
	}
	if s.Active(victim) {
		t.Error("victim should be inactive")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 armed task, got %d", s.Len())
	}
}

func TestSchedulerTaskArmedDuringRunCatchesUp(t *testing.T) {
	s := New()
	var inner int
	var armed bool
	s.Every(epoch, time.Second, func(now time.Time) {
		if !armed {
			armed = true
			s.Every(now, 100*time.Millisecond, func(time.Time) { inner++ })
		}
	})

	s.RunDue(epoch.Add(1500 * time.Millisecond))

	if inner != 5 {
		t.Errorf("expected inner task to fire 5 times, got %d", inner)
	}
}

func TestSchedulerCancelUnknown(t *testing.T) {
	s := New()
	if s.Cancel(0) {
		t.Error("cancel of zero id should report false")
	}
	id := s.Every(epoch, time.Second, func(time.Time) {})
	if !s.Cancel(id) {
		t.Error("first cancel should report true")
	}
	if s.Cancel(id) {
		t.Error("second cancel should report false")
	}
	if _, ok := s.NextDeadline(); ok {
		t.Error("empty scheduler should have no deadline")
	}
}

func TestSchedulerRejectsNonPositiveInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New().Every(epoch, 0, func(time.Time) {})
}

func TestMockClock(t *testing.T) {
	c := NewMockClock(epoch)
	if !c.Now().Equal(epoch) {
		t.Fatalf("expected %v, got %v", epoch, c.Now())
	}
	got := c.Advance(1500 * time.Millisecond)
	if !got.Equal(epoch.Add(1500*time.Millisecond)) || !c.Now().Equal(got) {
		t.Errorf("unexpected time after advance: %v", got)
	}
	c.Set(epoch)
	if !c.Now().Equal(epoch) {
		t.Errorf("expected reset to %v, got %v", epoch, c.Now())
	}
}
