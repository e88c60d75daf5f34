package game

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/facetap/internal/object"
	"github.com/tomz197/facetap/internal/sched"
)

// triggers records every task a session has armed on its scheduler.
type triggers struct {
	countdown   sched.TaskID
	normalSpawn sched.TaskID
	rushSpawn   sched.TaskID
	rushSpecial sched.TaskID
	frame       sched.TaskID
}

func (t triggers) all() []sched.TaskID {
	return []sched.TaskID{t.countdown, t.normalSpawn, t.rushSpawn, t.rushSpecial, t.frame}
}

// ClickOutcome describes what a click did.
type ClickOutcome struct {
	Hit         bool
	Kind        object.Kind
	Effect      object.ScoreEffect
	Score       int // Score after the click
	Replenished bool
}

// Session is one game: its score, clock, population and armed triggers.
type Session struct {
	settings Settings
	sched    *sched.Scheduler
	rng      *rand.Rand
	log      *log.Logger

	state         State
	phase         Phase
	score         int
	timeRemaining int
	faces         []*object.Face
	specialCounts map[object.Kind]int
	effects       []ClickEffect
	nextEffectID  uint64
	lastFrame     time.Time
	gamesEnded    uint64
	lastFinal     int
	triggers      triggers

	seq       uint64
	snapshot  *Snapshot
	onPublish func(*Snapshot)
}

// NewSession creates an idle session whose triggers run on s.
// A nil logger discards output.
func NewSession(s *sched.Scheduler, rng *rand.Rand, settings Settings, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sess := &Session{
		settings:      settings,
		sched:         s,
		rng:           rng,
		log:           logger,
		timeRemaining: settings.Duration,
		specialCounts: make(map[object.Kind]int),
	}
	sess.publish(time.Time{})
	return sess
}

// OnPublish registers fn to receive every snapshot as it is published.
func (s *Session) OnPublish(fn func(*Snapshot)) {
	s.onPublish = fn
}

// Start begins a fresh game at now. A running game is torn down first.
func (s *Session) Start(now time.Time) {
	s.End(now)
	s.cancelTriggers()

	s.state = StatePlaying
	s.phase = PhaseNormal
	s.score = 0
	s.timeRemaining = s.settings.Duration
	clear(s.faces)
	s.faces = s.faces[:0]
	clear(s.specialCounts)
	s.effects = nil
	s.lastFrame = now

	for i := 0; i < s.settings.InitialFaces; i++ {
		s.spawn(s.randomBasic(), now)
	}

	s.triggers.countdown = s.sched.Every(now, s.settings.CountdownInterval, s.countdownTick)
	s.triggers.normalSpawn = s.sched.Every(now, s.settings.NormalSpawnInterval, s.normalSpawnTick)
	s.triggers.frame = s.sched.Every(now, s.settings.FrameInterval, s.frame)

	s.log.Info("session started", "faces", len(s.faces), "duration", s.settings.Duration)
	s.publish(now)
}

// End stops the game at now and freezes the score. Ending a session that is not
// playing does nothing.
func (s *Session) End(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.state = StateEnded
	s.cancelTriggers()
	s.gamesEnded++
	s.lastFinal = s.score
	s.log.Info("session ended", "score", s.score, "remaining", s.timeRemaining)
	s.publish(now)
}

// RegisterClick hit-tests (x, y) in arena coordinates against the live faces,
// newest first. At most one face is hit; it is removed, its effect is applied
// and one basic face is spawned in its place.
func (s *Session) RegisterClick(x, y float64, now time.Time) ClickOutcome {
	if s.state != StatePlaying {
		return ClickOutcome{Score: s.score}
	}

	for i := len(s.faces) - 1; i >= 0; i-- {
		f := s.faces[i]
		if f.Clicked || f.IsExpired(now) || !f.HitTest(x, y) {
			continue
		}
		effect, ok := f.ResolveClick()
		if !ok {
			continue
		}
		s.applyEffect(effect)
		s.faces = slices.Delete(s.faces, i, i+1)
		s.addEffect(x, y, effect, now)

		out := ClickOutcome{
			Hit:         true,
			Kind:        f.Kind,
			Effect:      effect,
			Replenished: s.replenish(now),
		}
		out.Score = s.score
		s.log.Debug("face clicked", "kind", f.Kind, "effect", effect, "score", s.score)
		s.publish(now)
		return out
	}
	return ClickOutcome{Score: s.score}
}

// applyEffect applies a score effect and keeps the score non-negative.
func (s *Session) applyEffect(e object.ScoreEffect) {
	s.score = e.Apply(s.score)
}

func (s *Session) addEffect(x, y float64, e object.ScoreEffect, now time.Time) {
	s.nextEffectID++
	s.effects = append(s.effects, ClickEffect{
		ID:       s.nextEffectID,
		X:        x,
		Y:        y,
		Label:    e.String(),
		Positive: e.Positive(),
		At:       now,
	})
}

// cancelTriggers disarms every task the session armed.
func (s *Session) cancelTriggers() {
	for _, id := range s.triggers.all() {
		if id != 0 {
			s.sched.Cancel(id)
		}
	}
	s.triggers = triggers{}
}

// State returns the controller state.
func (s *Session) State() State { return s.state }

// Playing reports whether a game is running.
func (s *Session) Playing() bool { return s.state == StatePlaying }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// TimeRemaining returns the whole seconds left.
func (s *Session) TimeRemaining() int { return s.timeRemaining }

// FinalScore returns the score; once the session has ended it no longer changes.
func (s *Session) FinalScore() int { return s.score }

// FaceCount returns the live population.
func (s *Session) FaceCount() int { return len(s.faces) }

// SpecialSpawns returns how many time-marked spawns of kind have fired this game.
func (s *Session) SpecialSpawns(kind object.Kind) int { return s.specialCounts[kind] }

// Snapshot returns the most recently published snapshot.
func (s *Session) Snapshot() *Snapshot { return s.snapshot }
