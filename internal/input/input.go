// Package input reads raw terminal bytes and decodes key presses and SGR mouse clicks.
package input

import (
	"bufio"
	"strconv"
)

// Click is a left-button press at a 1-based terminal cell.
type Click struct {
	Col int
	Row int
}

// Input holds everything pressed since the previous read.
type Input struct {
	Quit    bool
	Start   bool // Space or Enter
	End     bool
	Escape  bool
	Clicks  []Click
	Pressed []byte
}

// Any reports whether the player did anything.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// Stream delivers input bytes via a channel. Incomplete escape sequences are
// carried over to the next read.
type Stream struct {
	ch      chan byte
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and decodes them.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	return in
}

// Reset drops buffered bytes so a held key does not leak into the next screen.
func Reset(s *Stream) {
	s.pending = nil
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Parse decodes buf. It returns the decoded input and the trailing bytes of an
// escape sequence that has not been fully received yet.
func Parse(buf []byte) (Input, []byte) {
	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			in.Pressed = append(in.Pressed, b)
			applyByte(&in, b)
			continue
		}

		// Lone ESC at the very end is the escape key.
		if i+1 >= len(buf) {
			in.Pressed = append(in.Pressed, b)
			in.Escape = true
			continue
		}
		if buf[i+1] != '[' {
			in.Pressed = append(in.Pressed, b)
			in.Escape = true
			continue
		}
		if i+2 >= len(buf) {
			return in, buf[i:]
		}

		if buf[i+2] == '<' {
			n, click, ok, complete := parseSGRMouse(buf[i:])
			if !complete {
				return in, buf[i:]
			}
			if ok {
				in.Clicks = append(in.Clicks, click)
				in.Pressed = append(in.Pressed, buf[i:i+n]...)
			}
			i += n - 1
			continue
		}

		// Other CSI sequences (arrow keys etc.) are consumed and ignored.
		j := i + 2
		for j < len(buf) && buf[j] < 0x40 {
			j++
		}
		if j >= len(buf) {
			return in, buf[i:]
		}
		i = j
	}
	return in, nil
}

// parseSGRMouse decodes "ESC [ < b ; x ; y M" at the start of buf. It returns
// the sequence length, the click, whether it was a left-button press and whether
// the sequence was complete.
func parseSGRMouse(buf []byte) (n int, click Click, ok, complete bool) {
	var fields [3]int
	field := 0
	start := 3
	for j := 3; j < len(buf); j++ {
		c := buf[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';':
			if field >= 2 {
				return j + 1, Click{}, false, true
			}
			fields[field], _ = strconv.Atoi(string(buf[start:j]))
			field++
			start = j + 1
		case c == 'M' || c == 'm':
			if field != 2 {
				return j + 1, Click{}, false, true
			}
			fields[2], _ = strconv.Atoi(string(buf[start:j]))
			button := fields[0]
			// Press of the left button, no motion or wheel bits.
			press := c == 'M' && button&3 == 0 && button&(32|64) == 0
			return j + 1, Click{Col: fields[1], Row: fields[2]}, press, true
		default:
			return j + 1, Click{}, false, true
		}
	}
	return 0, Click{}, false, false
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C
		in.Quit = true
	case 'e', 'E':
		in.End = true
	case ' ', '\n', '\r':
		in.Start = true
	}
}
