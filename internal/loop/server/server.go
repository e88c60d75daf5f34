// Package server hosts a single game session on its own goroutine.
package server

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/facetap/internal/game"
	"github.com/tomz197/facetap/internal/loop/config"
	"github.com/tomz197/facetap/internal/sched"
)

// ErrClosed is returned for commands sent to a server that has stopped.
var ErrClosed = errors.New("server closed")

// GameServer is the interface front ends use to drive a session.
// Decouples clients from the concrete Server implementation.
type GameServer interface {
	Start() error
	End() error
	RegisterClick(x, y float64) (game.ClickOutcome, error)
	GetSnapshot() *game.Snapshot
	FinalScore() int
	Done() <-chan struct{}
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

type commandKind int

const (
	cmdStart commandKind = iota
	cmdEnd
	cmdClick
)

type command struct {
	kind  commandKind
	x, y  float64
	reply chan game.ClickOutcome
}

// Options configures a server. Zero values select the defaults.
type Options struct {
	Settings     *game.Settings
	Clock        sched.Clock
	Rand         *rand.Rand
	Logger       *log.Logger
	TickInterval time.Duration
}

// Server owns one session and its scheduler on a dedicated goroutine.
// Commands arrive on a channel; renderers read the latest snapshot lock-free.
type Server struct {
	session  *game.Session
	sched    *sched.Scheduler
	clock    sched.Clock
	log      *log.Logger
	tick     time.Duration
	cmds     chan command
	snapshot atomic.Pointer[game.Snapshot]

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a server. Call Run to start processing.
func New(opts Options) (*Server, error) {
	settings := game.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = sched.RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = config.ServerTickTime
	}

	s := &Server{
		sched: sched.New(),
		clock: opts.Clock,
		log:   opts.Logger,
		tick:  opts.TickInterval,
		cmds:  make(chan command, 64),
		done:  make(chan struct{}),
	}
	s.session = game.NewSession(s.sched, opts.Rand, settings, opts.Logger)
	s.snapshot.Store(s.session.Snapshot())
	s.session.OnPublish(func(snap *game.Snapshot) {
		s.snapshot.Store(snap)
	})
	return s, nil
}

// Run processes commands and drives the scheduler. Blocks until the context is
// cancelled; a running game is ended first.
func (s *Server) Run(ctx context.Context) {
	defer s.closeOnce.Do(func() { close(s.done) })

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.session.End(s.clock.Now())
			return
		case cmd := <-s.cmds:
			s.handle(cmd)
		case <-ticker.C:
			s.sched.RunDue(s.clock.Now())
		}
	}
}

// handle applies a command on the server goroutine.
func (s *Server) handle(cmd command) {
	now := s.clock.Now()
	// Catch up first so the command sees the session as of now.
	s.sched.RunDue(now)

	switch cmd.kind {
	case cmdStart:
		s.session.Start(now)
	case cmdEnd:
		s.session.End(now)
	case cmdClick:
		cmd.reply <- s.session.RegisterClick(cmd.x, cmd.y, now)
	}
}

func (s *Server) send(cmd command) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.cmds <- cmd:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// Start begins a new game, tearing down any running one.
func (s *Server) Start() error {
	return s.send(command{kind: cmdStart})
}

// End stops the running game.
func (s *Server) End() error {
	return s.send(command{kind: cmdEnd})
}

// RegisterClick sends a click in arena coordinates and waits for its outcome.
func (s *Server) RegisterClick(x, y float64) (game.ClickOutcome, error) {
	reply := make(chan game.ClickOutcome, 1)
	if err := s.send(command{kind: cmdClick, x: x, y: y, reply: reply}); err != nil {
		return game.ClickOutcome{}, err
	}
	select {
	case out := <-reply:
		return out, nil
	case <-s.done:
		return game.ClickOutcome{}, ErrClosed
	}
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *game.Snapshot {
	return s.snapshot.Load()
}

// FinalScore returns the score of the latest snapshot. It is frozen once the game ends.
func (s *Server) FinalScore() int {
	return s.GetSnapshot().Score
}

// Done is closed when Run returns.
func (s *Server) Done() <-chan struct{} {
	return s.done
}
