// Package web serves the browser front end: an embedded canvas page and a
// WebSocket endpoint that binds every connection to its own game server.
package web

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"

	"github.com/tomz197/facetap/internal/game"
	"github.com/tomz197/facetap/internal/loop/server"
	"github.com/tomz197/facetap/internal/object"
)

//go:embed static/index.html
var indexPage []byte

const qrSize = 256

// Options configures the web handler.
type Options struct {
	Logger *log.Logger
	// NewServer creates the game server for a connection. Defaults to server.New
	// with default options.
	NewServer func() (*server.Server, error)
}

// Handler routes the page, the WebSocket endpoint and the share QR code.
type Handler struct {
	mux       *http.ServeMux
	log       *log.Logger
	newServer func() (*server.Server, error)
	upgrader  websocket.Upgrader
	ready     ReadyMsg
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	newServer := opts.NewServer
	if newServer == nil {
		newServer = func() (*server.Server, error) {
			return server.New(server.Options{Logger: logger})
		}
	}

	settings := game.DefaultSettings()
	ready := ReadyMsg{
		Width:    settings.Arena.Width,
		Height:   settings.Arena.Height,
		Duration: settings.Duration,
	}
	for k := object.KindHappy; k <= object.KindAngel; k++ {
		info := k.Info()
		ready.Kinds = append(ready.Kinds, KindInfo{Glyph: info.Glyph, Color: info.Color, Special: info.Special})
	}

	h := &Handler{
		mux:       http.NewServeMux(),
		log:       logger,
		newServer: newServer,
		ready:     ready,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameOrigin,
		},
	}
	h.mux.HandleFunc("/", h.serveIndex)
	h.mux.HandleFunc("/ws", h.serveWS)
	h.mux.HandleFunc("/share.png", h.serveShareQR)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // Non-browser clients don't send Origin
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(indexPage)
}

// serveWS upgrades the request and runs a private game for the connection.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	srv, err := h.newServer()
	if err != nil {
		h.log.Error("create game server", "err", err)
		http.Error(w, "game unavailable", http.StatusInternalServerError)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade", "err", err)
		return
	}

	ip := extractIP(r)
	h.log.Info("connected", "remote", ip)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		srv.Run(ctx)
		h.log.Info("disconnected", "remote", ip, "score", srv.FinalScore())
	}()

	conn := NewConn(ws, srv, h.log, ip)
	conn.sendJSON(Envelope{T: MsgReady, Data: h.ready})

	go conn.WritePump()
	go conn.ReadPump(cancel)
}

// serveShareQR renders the share message for ?score=N as a QR code PNG.
func (h *Handler) serveShareQR(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil || score < 0 {
		http.Error(w, "invalid score", http.StatusBadRequest)
		return
	}
	png, err := ShareQR(score)
	if err != nil {
		h.log.Error("share qr", "err", err)
		http.Error(w, "qr failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}

// ShareQR encodes the share message for score as a PNG QR code.
func ShareQR(score int) ([]byte, error) {
	png, err := qrcode.Encode(game.ShareMessage(score), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
