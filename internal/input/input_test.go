package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	in, rest := Parse([]byte("e q\r"))
	if len(rest) != 0 {
		t.Fatalf("unexpected rest %q", rest)
	}
	if !in.End || !in.Quit || !in.Start {
		t.Errorf("expected end, quit and start, got %+v", in)
	}
	if !in.Any() {
		t.Error("Any should be true")
	}
}

func TestParseMouseClick(t *testing.T) {
	in, rest := Parse([]byte("\x1b[<0;12;7M\x1b[<0;12;7m"))
	if len(rest) != 0 {
		t.Fatalf("unexpected rest %q", rest)
	}
	if len(in.Clicks) != 1 {
		t.Fatalf("expected one press, got %v", in.Clicks)
	}
	if in.Clicks[0] != (Click{Col: 12, Row: 7}) {
		t.Errorf("unexpected click %+v", in.Clicks[0])
	}
	if in.Escape {
		t.Error("mouse sequence must not read as escape")
	}
}

func TestParseIgnoresOtherButtons(t *testing.T) {
	tests := []struct {
		name string
		seq  string
	}{
		{"right button", "\x1b[<2;5;5M"},
		{"wheel", "\x1b[<64;5;5M"},
		{"motion", "\x1b[<32;5;5M"},
		{"release", "\x1b[<0;5;5m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, rest := Parse([]byte(tt.seq))
			if len(in.Clicks) != 0 || len(rest) != 0 {
				t.Errorf("expected nothing, got clicks=%v rest=%q", in.Clicks, rest)
			}
		})
	}
}

func TestParseKeepsPartialSequence(t *testing.T) {
	in, rest := Parse([]byte("e\x1b[<0;10"))
	if !in.End {
		t.Error("key before the partial sequence should decode")
	}
	if string(rest) != "\x1b[<0;10" {
		t.Fatalf("expected partial sequence kept, got %q", rest)
	}

	in, rest = Parse(append(rest, []byte(";4M")...))
	if len(rest) != 0 || len(in.Clicks) != 1 || in.Clicks[0] != (Click{Col: 10, Row: 4}) {
		t.Errorf("expected completed click, got %+v rest=%q", in.Clicks, rest)
	}
}

func TestParseArrowKeysIgnored(t *testing.T) {
	in, rest := Parse([]byte("\x1b[A\x1b[D"))
	if in.Escape || in.Quit || len(rest) != 0 {
		t.Errorf("arrow keys should be ignored, got %+v rest=%q", in, rest)
	}
}

func TestReadInputFromStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("\x1b[<0;3;4M ")))

	var in Input
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in = ReadInput(s)
		if in.Start {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !in.Start {
		t.Fatal("expected start key from stream")
	}
}
