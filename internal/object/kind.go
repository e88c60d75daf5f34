package object

import "time"

// Kind is the category of a face.
type Kind uint8

const (
	KindHappy Kind = iota
	KindNeutral
	KindSad
	KindAngry
	KindDevil
	KindAngel
)

// KindInfo holds the fixed properties of a kind.
type KindInfo struct {
	Name     string
	Glyph    string
	Effect   ScoreEffect
	Lifetime time.Duration
	Color    string // "#RRGGBB"
	Special  bool
}

var kindTable = [...]KindInfo{
	KindHappy:   {Name: "happy", Glyph: "😊", Effect: Flat(10), Lifetime: 4000 * time.Millisecond, Color: "#FFD700"},
	KindNeutral: {Name: "neutral", Glyph: "😐", Effect: Flat(5), Lifetime: 4000 * time.Millisecond, Color: "#87CEEB"},
	KindSad:     {Name: "sad", Glyph: "😢", Effect: Flat(2), Lifetime: 4000 * time.Millisecond, Color: "#DDA0DD"},
	KindAngry:   {Name: "angry", Glyph: "😠", Effect: Flat(-10), Lifetime: 4000 * time.Millisecond, Color: "#FF6347"},
	KindDevil:   {Name: "devil", Glyph: "😈", Effect: Halve(), Lifetime: 7000 * time.Millisecond, Color: "#8B0000", Special: true},
	KindAngel:   {Name: "angel", Glyph: "😇", Effect: Double(), Lifetime: 3000 * time.Millisecond, Color: "#FFFFFF", Special: true},
}

// BasicKinds are the four kinds produced by periodic and replenishment spawns.
var BasicKinds = []Kind{KindHappy, KindNeutral, KindSad, KindAngry}

// SpecialKinds are the two kinds produced by time marks and the rush special trigger.
var SpecialKinds = []Kind{KindDevil, KindAngel}

// Info returns the kind's properties. Unknown kinds get the zero KindInfo.
func (k Kind) Info() KindInfo {
	if int(k) >= len(kindTable) {
		return KindInfo{}
	}
	return kindTable[k]
}

// Special reports whether the kind is one of the special kinds.
func (k Kind) Special() bool {
	return k.Info().Special
}

func (k Kind) String() string {
	if name := k.Info().Name; name != "" {
		return name
	}
	return "unknown"
}
