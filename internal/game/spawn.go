package game

import (
	"time"

	"github.com/tomz197/facetap/internal/object"
)

// spawn adds one face of kind at a random position. At the population cap the
// spawn is dropped and false is returned.
func (s *Session) spawn(kind object.Kind, now time.Time) bool {
	if len(s.faces) >= s.settings.MaxFaces {
		s.log.Debug("spawn suppressed at cap", "kind", kind, "faces", len(s.faces))
		return false
	}
	f := object.NewFaceRandom(s.rng, kind, s.settings.Arena, s.settings.FaceSize, s.settings.MoveSpeed, now)
	s.faces = append(s.faces, f)
	return true
}

func (s *Session) randomBasic() object.Kind {
	return object.BasicKinds[s.rng.Intn(len(object.BasicKinds))]
}

func (s *Session) randomSpecial() object.Kind {
	return object.SpecialKinds[s.rng.Intn(len(object.SpecialKinds))]
}

// replenish adds one basic face after a successful click.
func (s *Session) replenish(now time.Time) bool {
	return s.spawn(s.randomBasic(), now)
}

// normalSpawnTick adds a basic face with probability NormalSpawnChance.
func (s *Session) normalSpawnTick(now time.Time) {
	if s.state != StatePlaying || s.phase != PhaseNormal {
		return
	}
	if s.rng.Float64() >= s.settings.NormalSpawnChance {
		return
	}
	s.spawn(s.randomBasic(), now)
}

// rushSpawnTick adds a basic face on every tick.
func (s *Session) rushSpawnTick(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.spawn(s.randomBasic(), now)
}

// rushSpecialTick adds a devil or an angel with equal odds.
func (s *Session) rushSpecialTick(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.spawn(s.randomSpecial(), now)
}
