// Package draw renders logical-coordinate shapes to a terminal using half-block characters.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Bar returns a text bar of width cells with the first fraction of them filled.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	buf := make([]rune, width)
	for i := range buf {
		if i < filled {
			buf[i] = BlockFull
		} else {
			buf[i] = BlockLight
		}
	}
	return string(buf)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
