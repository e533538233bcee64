package input

import (
	"bufio"
	"time"
)

// DefaultHoldWindow is how long a terminal key counts as held after its last byte.
// Terminals send no key-up, so holds are inferred from auto-repeat.
const DefaultHoldWindow = 80 * time.Millisecond

// escTimeout is how long a trailing ESC waits for the rest of an arrow sequence
// before it counts as the Escape key.
const escTimeout = 50 * time.Millisecond

// Stream delivers terminal input bytes via a channel and infers held keys.
type Stream struct {
	ch       chan byte
	lastSeen [numControls]time.Time
	hold     time.Duration
	pending  []byte    // Partial escape sequence carried over to the next Apply
	escAt    time.Time // When a trailing lone ESC was first carried
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error (e.g. the session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: DefaultHoldWindow,
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

// SetHoldWindow overrides DefaultHoldWindow.
func (s *Stream) SetHoldWindow(d time.Duration) {
	s.hold = d
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Apply drains all available bytes (non-blocking), taps the controls they map to,
// and marks Left, Right and Fire held while they were seen within the hold window.
// Returns the number of new bytes read, including ones that map to no control.
func (s *Stream) Apply(st *State, now time.Time) (n int) {
	buf := s.pending
	s.pending = nil
	carried := len(buf)

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// A trailing ESC may be the first byte of an arrow key split across drains.
		if b == '\x1b' && i+1 == len(buf) && !s.closed {
			if s.escAt.IsZero() {
				s.escAt = now
			}
			if now.Sub(s.escAt) < escTimeout {
				s.pending = append(s.pending, b)
				break
			}
		}

		// CSI sequence: ESC [ <code>. A lone ESC is the Escape key.
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 == len(buf) {
				if !s.closed {
					s.pending = append(s.pending, buf[i:]...)
				}
				break
			}
			switch buf[i+2] {
			case 'C':
				s.see(st, Right, now)
			case 'D':
				s.see(st, Left, now)
			}
			i += 2
			continue
		}

		if c, ok := controlForByte(b); ok {
			s.see(st, c, now)
		}
	}

	if len(s.pending) == 0 {
		s.escAt = time.Time{}
	}

	for _, c := range [...]Control{Left, Right, Fire} {
		st.Set(c, now.Sub(s.lastSeen[c]) < s.hold)
	}
	return len(buf) - carried
}

func (s *Stream) see(st *State, c Control, now time.Time) {
	s.lastSeen[c] = now
	st.Tap(c)
}

// controlForByte maps a single input byte to a control.
func controlForByte(b byte) (Control, bool) {
	switch b {
	case 'a', 'A', 'h', 'H', 'j', 'J':
		return Left, true
	case 'd', 'D', 'l', 'L':
		return Right, true
	case ' ', 'f', 'F', 'z', 'Z':
		return Fire, true
	case 'p', 'P':
		return Pause, true
	case '\n', '\r':
		return Confirm, true
	case '\x1b', '\b', '\x7f':
		return Back, true
	case 's', 'S':
		return Scores, true
	case 'q', 'Q', '\x03':
		return Quit, true
	}
	return 0, false
}
