// Package client renders a game session to a terminal and turns key presses and
// mouse clicks into server commands.
package client

import (
	"bufio"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/facetap/internal/draw"
	"github.com/tomz197/facetap/internal/game"
	"github.com/tomz197/facetap/internal/input"
	"github.com/tomz197/facetap/internal/loop/config"
	"github.com/tomz197/facetap/internal/loop/server"
	"github.com/tomz197/facetap/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	standalone   bool
	rng          *rand.Rand
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	// Standalone starts the game immediately instead of showing the title screen.
	Standalone bool
	Logger     *log.Logger
}

// NewClient creates a new client driving the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ArenaWidth, config.ArenaHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		standalone:   opts.Standalone,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		log:          logger,
	}
}

// Run starts the client loop. Blocks until the player quits or the server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	if c.standalone {
		c.startGame()
	}

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-c.server.Done():
			c.state.Running = false
			continue
		default:
		}

		// Process input
		c.processInput()

		// Handle screen resize
		c.updateScreen()

		snapshot := c.server.GetSnapshot()

		// Handle screen state
		switch c.state.Screen {
		case ScreenStart:
			c.updateStartState()
		case ScreenPlaying:
			c.updatePlayingState(snapshot)
		case ScreenResult:
			c.updateResultState()
		}
		c.updateParticles(snapshot)

		// Draw frame
		if err := c.drawFrame(snapshot); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	if c.state.Screen == ScreenPlaying {
		if err := c.server.End(); err != nil && !errors.Is(err, server.ErrClosed) {
			c.log.Warn("end on exit", "err", err)
		}
	}
	for _, p := range c.state.particles {
		p.Release()
	}
	c.state.particles = nil

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Start || len(c.state.Input.Clicks) > 0 {
		c.startGame()
	}
}

// updatePlayingState forwards clicks and watches for the end of the game.
func (c *Client) updatePlayingState(snapshot *game.Snapshot) {
	if c.state.Input.End {
		c.call(c.server.End())
	}
	for _, click := range c.state.Input.Clicks {
		c.handleClick(click)
	}

	// Snapshots older than our start request belong to the previous game.
	if snapshot.Seq > c.state.startSeq && snapshot.State == game.StateEnded {
		c.state.finalScore = c.server.FinalScore()
		c.state.Screen = ScreenResult
	}
}

// handleClick converts a terminal click to arena coordinates and sends it.
func (c *Client) handleClick(click input.Click) {
	x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row)
	if !ok {
		return
	}
	out, err := c.server.RegisterClick(x, y)
	if !c.call(err) {
		return
	}
	if out.Hit {
		c.log.Debug("hit", "kind", out.Kind, "score", out.Score)
	}
}

// updateResultState handles the result screen.
func (c *Client) updateResultState() {
	if c.state.Input.Start {
		c.startGame()
	}
}

// startGame starts or restarts the game.
func (c *Client) startGame() {
	input.Reset(c.inputStream)
	c.state.startSeq = c.server.GetSnapshot().Seq
	if !c.call(c.server.Start()) {
		return
	}
	c.state.Screen = ScreenPlaying
}

// call reports whether err is nil, stopping the client if the server has closed.
func (c *Client) call(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, server.ErrClosed) {
		c.state.Running = false
	} else {
		c.log.Error("server command failed", "err", err)
	}
	return false
}

// updateParticles bursts particles for new click effects and ages the live ones.
func (c *Client) updateParticles(snapshot *game.Snapshot) {
	for _, e := range snapshot.Effects {
		if e.ID <= c.state.lastEffectID {
			continue
		}
		c.state.lastEffectID = e.ID
		color := draw.RGB(0, 255, 0)
		if !e.Positive {
			color = draw.RGB(255, 0, 0)
		}
		c.state.particles = append(c.state.particles, object.SpawnBurst(
			c.rng, e.X, e.Y,
			config.ClickParticleCount, config.ClickParticleSpeed, config.ClickParticleLifetime,
			color,
		)...)
	}

	dt := c.state.delta.Seconds()
	kept := c.state.particles[:0]
	for _, p := range c.state.particles {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(c.state.particles[len(kept):])
	c.state.particles = kept
}
