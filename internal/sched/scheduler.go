package sched

import "time"

// TaskID identifies an armed periodic task. The zero value never identifies a task.
type TaskID uint64

// Task is invoked once per period with the task's own deadline as the tick time,
// so every read of "now" inside a tick agrees.
type Task func(now time.Time)

type task struct {
	id       TaskID
	interval time.Duration
	next     time.Time
	fn       Task
}

// Scheduler runs periodic tasks on the caller's goroutine.
// It is not safe for concurrent use: exactly one goroutine owns it and every task
// runs to completion before the next one starts.
type Scheduler struct {
	tasks  map[TaskID]*task
	nextID TaskID
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		tasks:  make(map[TaskID]*task),
		nextID: 1,
	}
}

// Every arms fn to fire every interval, first at start+interval.
// Panics if interval is not positive.
func (s *Scheduler) Every(start time.Time, interval time.Duration, fn Task) TaskID {
	if interval <= 0 {
		panic("sched: non-positive interval")
	}
	id := s.nextID
	s.nextID++
	s.tasks[id] = &task{
		id:       id,
		interval: interval,
		next:     start.Add(interval),
		fn:       fn,
	}
	return id
}

// Cancel disarms a task. Returns false if the task was not armed.
// A task canceled during RunDue does not fire again, even if already due.
func (s *Scheduler) Cancel(id TaskID) bool {
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// Active reports whether the task is armed.
func (s *Scheduler) Active(id TaskID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of armed tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// NextDeadline returns the earliest deadline among armed tasks.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	t := s.earliest()
	if t == nil {
		return time.Time{}, false
	}
	return t.next, true
}

// RunDue fires every task whose deadline is at or before now, in deadline order.
// Ties fire in the order the tasks were armed. Tasks re-arm at a fixed cadence
// (deadline + interval), so a late call catches up on missed periods.
// Returns the number of task invocations.
func (s *Scheduler) RunDue(now time.Time) int {
	fired := 0
	for {
		t := s.earliest()
		if t == nil || t.next.After(now) {
			return fired
		}
		deadline := t.next
		t.next = deadline.Add(t.interval)
		t.fn(deadline)
		fired++
	}
}

// earliest returns the armed task with the smallest (deadline, id).
func (s *Scheduler) earliest() *task {
	var best *task
	for _, t := range s.tasks {
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.id < best.id) {
			best = t
		}
	}
	return best
}
