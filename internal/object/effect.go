package object

import "fmt"

// EffectKind tags the variant held by a ScoreEffect.
type EffectKind uint8

const (
	EffectFlat   EffectKind = iota // Add Points to the score
	EffectHalve                    // Floor the score to half
	EffectDouble                   // Multiply the score by two
)

// ScoreEffect is what clicking a face does to the score.
type ScoreEffect struct {
	Kind   EffectKind
	Points int // Only meaningful for EffectFlat
}

// Flat returns an effect that adds n (possibly negative) points.
func Flat(n int) ScoreEffect {
	return ScoreEffect{Kind: EffectFlat, Points: n}
}

// Halve returns the halve-score effect.
func Halve() ScoreEffect {
	return ScoreEffect{Kind: EffectHalve}
}

// Double returns the double-score effect.
func Double() ScoreEffect {
	return ScoreEffect{Kind: EffectDouble}
}

// Apply returns the score after applying the effect, clamped to zero.
// Halving floors, so Double followed by Halve is an identity while
// Halve followed by Double loses the odd point.
func (e ScoreEffect) Apply(score int) int {
	switch e.Kind {
	case EffectFlat:
		score += e.Points
	case EffectHalve:
		score /= 2
	case EffectDouble:
		score *= 2
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Positive reports whether the effect is shown as a gain.
func (e ScoreEffect) Positive() bool {
	switch e.Kind {
	case EffectFlat:
		return e.Points > 0
	case EffectDouble:
		return true
	default:
		return false
	}
}

// String formats the effect for click feedback ("+10", "-10", "÷2", "×2").
func (e ScoreEffect) String() string {
	switch e.Kind {
	case EffectHalve:
		return "÷2"
	case EffectDouble:
		return "×2"
	default:
		if e.Points > 0 {
			return fmt.Sprintf("+%d", e.Points)
		}
		return fmt.Sprintf("%d", e.Points)
	}
}
