package game

import (
	"slices"
	"time"

	"github.com/tomz197/facetap/internal/object"
)

// countdownTick runs once per second: it decrements the clock, fires the
// time-marked special spawns, enters rush at the threshold and ends the game
// when time runs out. The new time is published on the tick itself.
func (s *Session) countdownTick(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.timeRemaining--

	s.spawnMarkedSpecials(now)

	if s.phase == PhaseNormal && s.timeRemaining <= s.settings.RushThreshold {
		s.enterRush(now)
	}
	if s.timeRemaining <= 0 {
		s.End(now)
		return
	}
	s.publish(now)
}

// spawnMarkedSpecials spawns each special kind once when the elapsed time hits
// one of the configured marks. A kind never fires more often than there are marks.
//
// Marked spawns obey the population cap like every other spawn. A mark that
// lands while the arena is full is skipped and not retried, so a kind can end
// a game with fewer spawns than there are marks. The default schedule keeps
// the population far below the cap at every mark.
func (s *Session) spawnMarkedSpecials(now time.Time) {
	elapsed := s.settings.Duration - s.timeRemaining
	if !slices.Contains(s.settings.SpecialMarks, elapsed) {
		return
	}
	for _, kind := range object.SpecialKinds {
		if s.specialCounts[kind] >= len(s.settings.SpecialMarks) {
			continue
		}
		if s.spawn(kind, now) {
			s.specialCounts[kind]++
			s.log.Debug("special face", "kind", kind, "elapsed", elapsed)
		}
	}
}

// enterRush switches to the terminal rush phase: the normal trigger is
// canceled and both rush triggers are armed.
func (s *Session) enterRush(now time.Time) {
	if s.phase == PhaseRush {
		return
	}
	s.phase = PhaseRush
	if s.triggers.normalSpawn != 0 {
		s.sched.Cancel(s.triggers.normalSpawn)
		s.triggers.normalSpawn = 0
	}
	s.triggers.rushSpawn = s.sched.Every(now, s.settings.RushSpawnInterval, s.rushSpawnTick)
	s.triggers.rushSpecial = s.sched.Every(now, s.settings.RushSpecialInterval, s.rushSpecialTick)
	s.log.Info("rush mode", "remaining", s.timeRemaining, "faces", len(s.faces))
}
