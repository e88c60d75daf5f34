package draw

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color. The zero value means "unset" (terminal default).
type Color uint32

const colorSet Color = 1 << 24

// ANSI attribute sequences.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorRed        = "\033[31m"
	ColorGreen      = "\033[32m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
	fgDefault       = "\033[39m"
	bgDefault       = "\033[49m"
)

// RGB builds a set color from its components.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return colorSet | Color(v), nil
}

// MustHex is ParseHex for static tables; it panics on malformed input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsSet reports whether the color is not the terminal default.
func (c Color) IsSet() bool {
	return c&colorSet != 0
}

// Components returns the red, green and blue channels.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Fg returns the 24-bit foreground escape for c, or the default-foreground escape.
func (c Color) Fg() string {
	if !c.IsSet() {
		return fgDefault
	}
	r, g, b := c.Components()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// Bg returns the 24-bit background escape for c, or the default-background escape.
func (c Color) Bg() string {
	if !c.IsSet() {
		return bgDefault
	}
	r, g, b := c.Components()
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
}
