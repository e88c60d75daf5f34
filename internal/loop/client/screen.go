package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/facetap/internal/draw"
	"github.com/tomz197/facetap/internal/game"
	"github.com/tomz197/facetap/internal/loop/config"
	"github.com/tomz197/facetap/internal/object"
)

// kindColors caches the parsed fill color of every kind.
var kindColors = func() map[object.Kind]draw.Color {
	m := make(map[object.Kind]draw.Color)
	for _, k := range append(append([]object.Kind(nil), object.BasicKinds...), object.SpecialKinds...) {
		m[k] = draw.MustHex(k.Info().Color)
	}
	return m
}()

// drawFrame draws the current frame.
func (c *Client) drawFrame(snapshot *game.Snapshot) error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	if c.state.Screen == ScreenPlaying && !c.state.isInactive {
		for _, f := range snapshot.Faces {
			r := f.Size / 2
			c.canvas.FillCircle(f.X+r, f.Y+r, r, kindColors[f.Kind])
			if f.Kind.Special() {
				c.drawSpecialRing(f)
			}
		}
	}
	for _, p := range c.state.particles {
		p.Draw(c.canvas)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// ringSides is the vertex count of the outline drawn around special faces.
const ringSides = 12

var (
	ringWarn = draw.RGB(230, 40, 40)
	ringOK   = draw.RGB(60, 220, 90)
)

// drawSpecialRing outlines a special face, red once its remaining life drops below
// config.SpecialWarnFraction.
func (c *Client) drawSpecialRing(f game.FaceView) {
	r := f.Size/2 + 4
	cx, cy := f.X+f.Size/2, f.Y+f.Size/2
	pts := c.canvas.BorrowPoints(ringSides)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / ringSides
		pts[i] = draw.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	color := ringOK
	if f.Remaining < config.SpecialWarnFraction {
		color = ringWarn
	}
	c.canvas.DrawPolygon(pts, color)
}

// drawUI draws the screen-specific text overlay.
func (c *Client) drawUI(snapshot *game.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenStart:
		c.drawStartScreen(centerX, centerY)
	case ScreenPlaying:
		c.drawFaceOverlays(snapshot)
		c.drawClickEffects(snapshot)
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
	case ScreenResult:
		c.drawResultScreen(centerX, centerY)
	}
}

// writeText writes s at (col, row) and marks the covered cells dirty so the
// canvas blanks them next frame.
func (c *Client) writeText(col, row int, attr, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	width := draw.TextWidth(s)
	if col+width-1 > c.canvas.TerminalWidth() {
		return
	}
	if attr == "" {
		c.chunkWriter.WriteAt(col, row, s)
	} else {
		c.chunkWriter.WriteColoredAt(col, row, attr, s)
	}
	c.canvas.MarkTextDirty(col, row, width)
}

func (c *Client) writeCentered(col, row int, attr, s string) {
	c.writeText(col-draw.TextWidth(s)/2, row, attr, s)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, draw.ColorBold, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, "", msg)
	c.writeCentered(centerX, centerY+2, "", "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		` ___ _   ___ ___   _____ _   ___ `,
		`| __/_\ / __| __| |_   _/_\ | _ \`,
		`| _/ _ \ (__| _|    | |/ _ \|  _/`,
		`|_/_/ \_\___|___|   |_/_/ \_\_|  `,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, draw.ColorYellow, line)
	}

	subtitle := "~ click the faces before they vanish ~"
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "", subtitle)

	legendY := titleStartY + len(titleArt) + 3
	kinds := append(append([]object.Kind(nil), object.BasicKinds...), object.SpecialKinds...)
	for i, k := range kinds {
		info := k.Info()
		line := fmt.Sprintf("%s  %-8s %4s", info.Glyph, info.Name, info.Effect)
		c.writeCentered(centerX, legendY+i, kindColors[k].Fg(), line)
	}

	controlsY := legendY + len(kinds) + 1
	controlLines := []string{
		"CLICK  . . . . . Tap a face",
		"E  . . . . . . . . End game",
		"Q  . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+i, "", line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+1, draw.ColorBold, ">>  Press SPACE to Start  <<")
	}
}

// drawFaceOverlays writes each face's glyph at its center and a remaining-life
// bar above special faces.
func (c *Client) drawFaceOverlays(snapshot *game.Snapshot) {
	for _, f := range snapshot.Faces {
		r := f.Size / 2
		col, row := c.canvas.LogicalToTerminal(f.X+r, f.Y+r)
		c.writeText(col-1, row, "", f.Kind.Info().Glyph)

		if !f.Kind.Special() {
			continue
		}
		left, top := c.canvas.LogicalToTerminal(f.X, f.Y)
		right, _ := c.canvas.LogicalToTerminal(f.X+f.Size, f.Y)
		attr := draw.ColorGreen
		if f.Remaining < config.SpecialWarnFraction {
			attr = draw.ColorRed
		}
		c.writeText(left, top-1, attr, draw.Bar(f.Remaining, right-left))
	}
}

// drawClickEffects draws the floating score labels, rising as they age.
func (c *Client) drawClickEffects(snapshot *game.Snapshot) {
	for _, e := range snapshot.Effects {
		age := snapshot.EffectAge(e)
		if age < 0 || age >= config.ClickEffectDuration {
			continue
		}
		col, row := c.canvas.LogicalToTerminal(e.X, e.Y)
		row -= int(age * 3 / config.ClickEffectDuration)
		attr := draw.ColorBold + draw.ColorGreen
		if !e.Positive {
			attr = draw.ColorBold + draw.ColorRed
		}
		c.writeCentered(col, row-1, attr, e.Label)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *game.Snapshot) {
	scoreText := fmt.Sprintf("Score: %-6d", snapshot.Score)
	c.writeText(2, 1, draw.ColorBold, scoreText)

	timeText := fmt.Sprintf("Time: %2d", snapshot.TimeRemaining)
	timeAttr := draw.ColorBold
	if snapshot.TimeRemaining <= config.RushThreshold {
		timeAttr += draw.ColorRed
	}
	c.writeText(termWidth-len(timeText)-1, 1, timeAttr, timeText)

	if snapshot.Phase == game.PhaseRush && time.Now().UnixMilli()/250%2 == 0 {
		c.writeCentered(termWidth/2, 1, draw.ColorBold+draw.ColorRed, "!! RUSH !!")
	}

	c.writeText(2, termHeight, "", "E: end   Q: quit")
}

// drawResultScreen draws the final score and the share message.
func (c *Client) drawResultScreen(centerX, centerY int) {
	titleArt := []string{
		` _____ ___ __  __ ___   _   _ ___ `,
		`|_   _|_ _|  \/  | __| | | | | _ \`,
		`  | |  | || |\/| | _|  | |_| |  _/`,
		`  |_| |___|_|  |_|___|  \___/|_|  `,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, draw.ColorYellow, line)
	}

	scoreText := fmt.Sprintf("Final score: %d", c.state.finalScore)
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, draw.ColorBold, scoreText)

	shareY := titleStartY + len(titleArt) + 3
	lines := strings.Split(game.ShareMessage(c.state.finalScore), "\n")
	for i, line := range lines {
		c.writeCentered(centerX, shareY+i, draw.ColorBrightCyan, line)
	}

	promptY := shareY + len(lines) + 1
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, promptY, draw.ColorBold, ">>  Press SPACE to Play Again  <<")
	}
	c.writeCentered(centerX, promptY+1, "", "Q to quit")
}
