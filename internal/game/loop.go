package game

import (
	"time"
)

// frame advances every face by the time since the previous frame, evicts
// expired faces and publishes the result.
func (s *Session) frame(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	elapsed := now.Sub(s.lastFrame)
	s.lastFrame = now

	for _, f := range s.faces {
		f.Advance(elapsed, s.settings.Arena)
	}

	kept := s.faces[:0]
	for _, f := range s.faces {
		if !f.IsExpired(now) {
			kept = append(kept, f)
		}
	}
	clear(s.faces[len(kept):])
	s.faces = kept

	s.pruneEffects(now)
	s.publish(now)
}

func (s *Session) pruneEffects(now time.Time) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if now.Sub(e.At) < s.settings.ClickEffectDuration {
			kept = append(kept, e)
		}
	}
	s.effects = kept
}

// publish builds a fresh immutable snapshot of the session.
func (s *Session) publish(now time.Time) {
	s.seq++
	snap := &Snapshot{
		Seq:           s.seq,
		Taken:         now,
		State:         s.state,
		Phase:         s.phase,
		Score:         s.score,
		TimeRemaining: s.timeRemaining,
		Duration:      s.settings.Duration,
		Arena:         s.settings.Arena,
		Faces:         make([]FaceView, 0, len(s.faces)),
		Effects:       append([]ClickEffect(nil), s.effects...),

		GamesEnded:     s.gamesEnded,
		LastFinalScore: s.lastFinal,
	}
	for _, f := range s.faces {
		snap.Faces = append(snap.Faces, FaceView{
			Kind:      f.Kind,
			X:         f.X,
			Y:         f.Y,
			Size:      f.Size,
			Remaining: f.RemainingFraction(now),
		})
	}
	s.snapshot = snap
	if s.onPublish != nil {
		s.onPublish(snap)
	}
}
