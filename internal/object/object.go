// Package object defines the game entities: faces, their kinds and score effects,
// and the client-side particles used for click feedback.
package object

// Screen describes a rectangular area in logical units.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// MaxPosition returns the largest top-left coordinate at which an object of the
// given size still fits inside the screen.
func (s Screen) MaxPosition(size float64) (maxX, maxY float64) {
	maxX = float64(s.Width) - size
	maxY = float64(s.Height) - size
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return maxX, maxY
}
