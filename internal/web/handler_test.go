package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/facetap/internal/game"
)

// ---------- helpers ----------

func startTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(NewHandler(Options{}))
	t.Cleanup(srv.Close)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialWS(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial WS: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	raw, _ := json.Marshal(Envelope{T: msgType, Data: data})
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("write WS: %v", err)
	}
}

// readUntil reads messages until match returns true for a JSON envelope or state frame.
func readUntil(t *testing.T, conn *websocket.Conn, match func(env *Envelope, state *StateMsg) bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(deadline)
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read WS: %v", err)
		}
		if msgType == websocket.BinaryMessage {
			var st StateMsg
			if err := msgpack.Unmarshal(raw, &st); err != nil {
				t.Fatalf("msgpack unmarshal: %v", err)
			}
			if match(nil, &st) {
				return
			}
			continue
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if match(&env, nil) {
			return
		}
	}
	t.Fatal("timed out waiting for message")
}

// ---------- tests ----------

func TestReadyThenStartStreamsState(t *testing.T) {
	_, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)

	readUntil(t, conn, func(env *Envelope, _ *StateMsg) bool {
		return env != nil && env.T == MsgReady
	})

	sendMsg(t, conn, MsgHello, HelloMsg{Standalone: false})
	sendMsg(t, conn, MsgStart, nil)

	var playing StateMsg
	readUntil(t, conn, func(_ *Envelope, st *StateMsg) bool {
		if st != nil && st.State == uint8(game.StatePlaying) {
			playing = *st
			return true
		}
		return false
	})
	if len(playing.Faces) == 0 {
		t.Fatal("expected faces in the playing snapshot")
	}
	if playing.Time <= 0 || playing.Time > 60 {
		t.Errorf("unexpected time %d", playing.Time)
	}

	f := playing.Faces[len(playing.Faces)-1]
	sendMsg(t, conn, MsgClick, ClickMsg{X: float64(f.X + f.Size/2), Y: float64(f.Y + f.Size/2)})

	sendMsg(t, conn, MsgEnd, nil)
	readUntil(t, conn, func(env *Envelope, _ *StateMsg) bool {
		if env == nil || env.T != MsgResult {
			return false
		}
		d, _ := env.Data.(map[string]any)
		share, _ := d["share"].(string)
		if !strings.Contains(share, "Final score") {
			t.Errorf("unexpected share text %q", share)
		}
		return true
	})
}

func TestStandaloneHelloAutoStarts(t *testing.T) {
	_, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)

	sendMsg(t, conn, MsgHello, HelloMsg{Standalone: true})
	readUntil(t, conn, func(_ *Envelope, st *StateMsg) bool {
		return st != nil && st.State == uint8(game.StatePlaying)
	})
}

func TestUnknownMessageReportsError(t *testing.T) {
	_, wsURL := startTestServer(t)
	conn := dialWS(t, wsURL)

	sendMsg(t, conn, "bogus", nil)
	readUntil(t, conn, func(env *Envelope, _ *StateMsg) bool {
		return env != nil && env.T == MsgError
	})
}

func TestIndexPage(t *testing.T) {
	srv, _ := startTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("<canvas")) {
		t.Errorf("unexpected index response %d", resp.StatusCode)
	}

	resp2, err := http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp2.StatusCode)
	}
}

func TestShareQR(t *testing.T) {
	srv, _ := startTestServer(t)

	resp, err := http.Get(srv.URL + "/share.png?score=120")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("expected a PNG body")
	}

	bad, err := http.Get(srv.URL + "/share.png?score=abc")
	if err != nil {
		t.Fatal(err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", bad.StatusCode)
	}
}

func TestNewStateMsg(t *testing.T) {
	now := time.Unix(100, 0)
	snap := &game.Snapshot{
		Seq:           9,
		Taken:         now,
		State:         game.StatePlaying,
		Phase:         game.PhaseRush,
		Score:         50,
		TimeRemaining: 8,
		Faces:         []game.FaceView{{X: 1, Y: 2, Size: 60, Remaining: 0.5}},
		Effects:       []game.ClickEffect{{Label: "×2", Positive: true, At: now.Add(-250 * time.Millisecond)}},
	}
	msg := NewStateMsg(snap)
	if msg.Phase != uint8(game.PhaseRush) || msg.Time != 8 || len(msg.Faces) != 1 {
		t.Errorf("unexpected message %+v", msg)
	}
	if msg.Effects[0].Age != 250 {
		t.Errorf("expected effect age 250ms, got %d", msg.Effects[0].Age)
	}
}

func TestResultSentForGameRestartedBetweenSamples(t *testing.T) {
	c := NewConn(nil, nil, log.New(io.Discard), "test")

	c.queueResult(&game.Snapshot{Seq: 1, State: game.StatePlaying})
	if len(c.send) != 0 {
		t.Fatal("no game has ended yet")
	}

	// The game ended with 42 and a new one already started before this sample.
	c.queueResult(&game.Snapshot{Seq: 5, State: game.StatePlaying, Score: 0, GamesEnded: 1, LastFinalScore: 42})
	if len(c.send) != 1 {
		t.Fatalf("expected one result message, got %d", len(c.send))
	}
	var env struct {
		T string    `json:"t"`
		D ResultMsg `json:"d"`
	}
	if err := json.Unmarshal(<-c.send, &env); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if env.T != MsgResult || env.D.Score != 42 {
		t.Errorf("unexpected result %+v", env)
	}
	if !strings.Contains(env.D.Share, "42") || !strings.HasSuffix(env.D.QR, "score=42") {
		t.Errorf("share fields not built from the final score: %+v", env.D)
	}

	c.queueResult(&game.Snapshot{Seq: 6, State: game.StatePlaying, GamesEnded: 1, LastFinalScore: 42})
	if len(c.send) != 0 {
		t.Error("the same ended game was reported twice")
	}
}
