package web

import (
	"encoding/json"

	"github.com/tomz197/facetap/internal/game"
)

// Client -> Server message types
const (
	MsgHello = "hello" // first message, carries the embedding mode
	MsgStart = "start"
	MsgEnd   = "end"
	MsgClick = "click"
)

// Server -> Client message types. Snapshots are sent as binary msgpack frames.
const (
	MsgReady  = "ready"
	MsgResult = "result"
	MsgError  = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// HelloMsg tells the server how the page was opened. A standalone page starts
// the game right away; an embedded one waits for the player.
type HelloMsg struct {
	Standalone bool `json:"standalone"`
}

// ClickMsg is a click in arena coordinates, already de-scaled by the page.
type ClickMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ReadyMsg describes the arena and kinds so the page can draw without hardcoding them.
type ReadyMsg struct {
	Width    int        `json:"w"`
	Height   int        `json:"h"`
	Duration int        `json:"dur"`
	Kinds    []KindInfo `json:"kinds"`
}

// KindInfo is the presentation of one kind.
type KindInfo struct {
	Glyph   string `json:"g"`
	Color   string `json:"c"`
	Special bool   `json:"s"`
}

// ResultMsg is sent once when a game ends.
type ResultMsg struct {
	Score int    `json:"score"`
	Share string `json:"share"`
	QR    string `json:"qr"` // URL of the share QR code
}

// ErrorMsg reports a rejected request.
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// StateMsg is the binary snapshot frame.
type StateMsg struct {
	Seq     uint64      `msgpack:"q"`
	State   uint8       `msgpack:"st"`
	Phase   uint8       `msgpack:"ph"`
	Score   int         `msgpack:"sc"`
	Time    int         `msgpack:"t"`
	Faces   []FaceMsg   `msgpack:"f"`
	Effects []EffectMsg `msgpack:"e"`
}

// FaceMsg is one face in a snapshot frame.
type FaceMsg struct {
	Kind      uint8   `msgpack:"k"`
	X         float32 `msgpack:"x"`
	Y         float32 `msgpack:"y"`
	Size      float32 `msgpack:"s"`
	Remaining float32 `msgpack:"r"`
}

// EffectMsg is one floating click label; Age is in milliseconds.
type EffectMsg struct {
	X        float32 `msgpack:"x"`
	Y        float32 `msgpack:"y"`
	Label    string  `msgpack:"l"`
	Positive bool    `msgpack:"p"`
	Age      int     `msgpack:"a"`
}

// NewStateMsg converts a snapshot to its wire form.
func NewStateMsg(s *game.Snapshot) StateMsg {
	msg := StateMsg{
		Seq:     s.Seq,
		State:   uint8(s.State),
		Phase:   uint8(s.Phase),
		Score:   s.Score,
		Time:    s.TimeRemaining,
		Faces:   make([]FaceMsg, 0, len(s.Faces)),
		Effects: make([]EffectMsg, 0, len(s.Effects)),
	}
	for _, f := range s.Faces {
		msg.Faces = append(msg.Faces, FaceMsg{
			Kind:      uint8(f.Kind),
			X:         float32(f.X),
			Y:         float32(f.Y),
			Size:      float32(f.Size),
			Remaining: float32(f.Remaining),
		})
	}
	for _, e := range s.Effects {
		msg.Effects = append(msg.Effects, EffectMsg{
			X:        float32(e.X),
			Y:        float32(e.Y),
			Label:    e.Label,
			Positive: e.Positive,
			Age:      int(s.EffectAge(e).Milliseconds()),
		})
	}
	return msg
}
