package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/facetap/internal/game"
	"github.com/tomz197/facetap/internal/loop/config"
	"github.com/tomz197/facetap/internal/loop/server"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 1024
	sendBufSize       = 16
	maxMessagesPerSec = 40
)

// Conn binds one WebSocket to its own game server.
type Conn struct {
	ws     *websocket.Conn
	srv    server.GameServer
	send   chan []byte
	log    *log.Logger
	remote string

	msgCount   int
	msgResetAt time.Time
	greeted    bool
	endedSeen  uint64 // GamesEnded of the last result sent
}

// NewConn creates a connection handler for ws driving srv.
func NewConn(ws *websocket.Conn, srv server.GameServer, logger *log.Logger, remote string) *Conn {
	return &Conn{
		ws:     ws,
		srv:    srv,
		send:   make(chan []byte, sendBufSize),
		log:    logger,
		remote: remote,
	}
}

// ReadPump reads messages from the WebSocket until it closes or misbehaves,
// then cancels the connection's context.
func (c *Conn) ReadPump(cancel context.CancelFunc) {
	defer func() {
		cancel()
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read", "remote", c.remote, "err", err)
			}
			return
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.log.Warn("rate limit exceeded, disconnecting", "remote", c.remote)
			return
		}

		if err := c.handleMessage(message); err != nil {
			if errors.Is(err, server.ErrClosed) {
				return
			}
			c.log.Debug("bad message", "remote", c.remote, "err", err)
			c.sendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		}
	}
}

// handleMessage routes an incoming message.
func (c *Conn) handleMessage(raw []byte) error {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch env.T {
	case MsgHello:
		var msg HelloMsg
		if len(env.D) > 0 {
			if err := json.Unmarshal(env.D, &msg); err != nil {
				return fmt.Errorf("decode hello: %w", err)
			}
		}
		if c.greeted {
			return nil
		}
		c.greeted = true
		c.log.Info("hello", "remote", c.remote, "standalone", msg.Standalone)
		if msg.Standalone {
			return c.srv.Start()
		}
		return nil
	case MsgStart:
		return c.srv.Start()
	case MsgEnd:
		return c.srv.End()
	case MsgClick:
		var msg ClickMsg
		if err := json.Unmarshal(env.D, &msg); err != nil {
			return fmt.Errorf("decode click: %w", err)
		}
		_, err := c.srv.RegisterClick(msg.X, msg.Y)
		return err
	default:
		return fmt.Errorf("unknown message type %q", env.T)
	}
}

// WritePump sends queued JSON messages and, at the snapshot rate, the latest
// snapshot whenever it changed. Returns when the game server stops or a write fails.
func (c *Conn) WritePump() {
	ping := time.NewTicker(pingPeriod)
	frames := time.NewTicker(config.WebSnapshotTime)
	defer func() {
		ping.Stop()
		frames.Stop()
		c.ws.Close()
	}()

	var lastSeq uint64
	c.endedSeen = c.srv.GetSnapshot().GamesEnded

	for {
		select {
		case <-c.srv.Done():
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return

		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-frames.C:
			snap := c.srv.GetSnapshot()
			if snap.Seq == lastSeq {
				continue
			}
			lastSeq = snap.Seq

			data, err := msgpack.Marshal(NewStateMsg(snap))
			if err != nil {
				c.log.Error("encode snapshot", "err", err)
				return
			}
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

			c.queueResult(snap)

		case <-ping.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// queueResult sends a result message when snap reports a game ended since the
// last one reported. A game that ended and restarted between two samples is
// still reported, with its own final score.
func (c *Conn) queueResult(snap *game.Snapshot) {
	if snap.GamesEnded == c.endedSeen {
		return
	}
	c.endedSeen = snap.GamesEnded
	score := snap.LastFinalScore
	c.sendJSON(Envelope{T: MsgResult, Data: ResultMsg{
		Score: score,
		Share: game.ShareMessage(score),
		QR:    "/share.png?score=" + url.QueryEscape(fmt.Sprint(score)),
	}})
}

// sendJSON queues a JSON message, dropping it if the client is too slow.
func (c *Conn) sendJSON(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal", "err", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
