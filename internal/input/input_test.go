package input

import (
	"testing"
	"time"
)

func TestStateSetRecordsPressOnTransition(t *testing.T) {
	var s State

	s.Set(Fire, true)
	if !s.Held(Fire) || !s.Pressed(Fire) {
		t.Fatal("expected fire held and pressed after first Set")
	}

	s.EndFrame()
	s.Set(Fire, true)
	if s.Pressed(Fire) {
		t.Fatal("holding a control must not repeat the press event")
	}

	s.Set(Fire, false)
	if s.Held(Fire) {
		t.Fatal("expected fire released")
	}
}

func TestStateTap(t *testing.T) {
	var s State
	s.Tap(Pause)
	if !s.Pressed(Pause) || s.Held(Pause) {
		t.Fatal("tap should press without holding")
	}
	s.EndFrame()
	if s.Pressed(Pause) {
		t.Fatal("EndFrame should clear presses")
	}
}

func TestStatePointers(t *testing.T) {
	cases := []struct {
		name    string
		actions func(s *State)
		held    bool
	}{
		{"down", func(s *State) { s.PointerDown(Left) }, true},
		{"down_up", func(s *State) { s.PointerDown(Left); s.PointerUp(Left) }, false},
		{"down_leave", func(s *State) { s.PointerDown(Left); s.PointerLeave(Left) }, false},
		{"two_pointers_one_up", func(s *State) {
			s.PointerDown(Left)
			s.PointerDown(Left)
			s.PointerUp(Left)
		}, true},
		{"extra_up_ignored", func(s *State) {
			s.PointerUp(Left)
			s.PointerDown(Left)
		}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s State
			c.actions(&s)
			if got := s.Held(Left); got != c.held {
				t.Fatalf("Held(Left) = %v, want %v", got, c.held)
			}
		})
	}
}

func TestStateInvalidControl(t *testing.T) {
	var s State
	s.Set(Control(99), true)
	s.Tap(Control(-1))
	if s.Held(Control(99)) || s.Pressed(Control(-1)) {
		t.Fatal("out-of-range controls must be ignored")
	}
	if Control(99).String() != "unknown" || Fire.String() != "fire" {
		t.Fatal("unexpected control names")
	}
}

func newTestStream(bytes string) *Stream {
	s := &Stream{ch: make(chan byte, 64), hold: DefaultHoldWindow}
	for i := 0; i < len(bytes); i++ {
		s.ch <- bytes[i]
	}
	return s
}

func TestStreamDecodesArrowsAndKeys(t *testing.T) {
	now := time.Now()
	s := newTestStream("\x1b[D p\r")

	var st State
	s.Apply(&st, now)

	if !st.Held(Left) || !st.Pressed(Left) {
		t.Fatal("left arrow should press and hold Left")
	}
	if !st.Held(Fire) {
		t.Fatal("space should hold Fire")
	}
	if !st.Pressed(Pause) || !st.Pressed(Confirm) {
		t.Fatal("expected Pause and Confirm taps")
	}
	if st.Pressed(Back) {
		t.Fatal("arrow escape sequence must not register as Back")
	}
}

func TestStreamHoldWindowExpires(t *testing.T) {
	now := time.Now()
	s := newTestStream("d")

	var st State
	s.Apply(&st, now)
	if !st.Held(Right) {
		t.Fatal("expected Right held right after the key byte")
	}

	st.EndFrame()
	s.Apply(&st, now.Add(DefaultHoldWindow/2))
	if !st.Held(Right) {
		t.Fatal("expected Right still held inside the window")
	}

	s.Apply(&st, now.Add(DefaultHoldWindow+time.Millisecond))
	if st.Held(Right) {
		t.Fatal("expected Right released after the window")
	}
}

func TestStreamSplitEscapeSequence(t *testing.T) {
	now := time.Now()
	s := newTestStream("\x1b[")

	var st State
	s.Apply(&st, now)
	if st.Pressed(Back) || st.Held(Right) {
		t.Fatal("incomplete sequence must wait for more bytes")
	}

	s.ch <- 'C'
	s.Apply(&st, now)
	if !st.Held(Right) {
		t.Fatal("completed sequence should hold Right")
	}
}

func TestStreamLoneEscapeIsBack(t *testing.T) {
	now := time.Now()
	s := newTestStream("\x1b")

	var st State
	s.Apply(&st, now)
	if st.Pressed(Back) {
		t.Fatal("trailing ESC must wait for a possible arrow sequence")
	}

	s.Apply(&st, now.Add(escTimeout/2))
	if st.Pressed(Back) {
		t.Fatal("ESC must still wait inside the timeout")
	}

	s.Apply(&st, now.Add(escTimeout))
	if !st.Pressed(Back) {
		t.Fatal("lone ESC should tap Back once the timeout passes")
	}

	st.EndFrame()
	s.Apply(&st, now.Add(2*escTimeout))
	if st.Pressed(Back) {
		t.Fatal("Back must be tapped only once")
	}
}

func TestStreamEscapeSplitBeforeBracket(t *testing.T) {
	now := time.Now()
	s := newTestStream("\x1b")

	var st State
	s.Apply(&st, now)

	s.ch <- '['
	s.ch <- 'C'
	s.Apply(&st, now.Add(10*time.Millisecond))
	if !st.Held(Right) || !st.Pressed(Right) {
		t.Fatal("ESC followed by [C in the next drain should press Right")
	}
	if st.Pressed(Back) {
		t.Fatal("split arrow sequence must not register as Back")
	}
}

func TestStreamEscapeThenKey(t *testing.T) {
	now := time.Now()
	s := newTestStream("\x1b")

	var st State
	s.Apply(&st, now)

	s.ch <- 'p'
	s.Apply(&st, now.Add(time.Millisecond))
	if !st.Pressed(Back) || !st.Pressed(Pause) {
		t.Fatal("ESC followed by a plain key should tap Back then the key")
	}
}

func TestStreamClosedFlushesEscape(t *testing.T) {
	s := newTestStream("\x1b")
	close(s.ch)

	var st State
	s.Apply(&st, time.Now())
	if !st.Pressed(Back) {
		t.Fatal("ESC before close should tap Back immediately")
	}
}

func TestStreamClosed(t *testing.T) {
	s := newTestStream("q")
	close(s.ch)

	var st State
	s.Apply(&st, time.Now())
	if !st.Pressed(Quit) {
		t.Fatal("bytes before close should still be applied")
	}
	if !s.Closed() {
		t.Fatal("expected stream closed")
	}
	s.Apply(&st, time.Now()) // must not block or spin
}

func TestStreamApplyCountsBytes(t *testing.T) {
	s := newTestStream("x\x1b[")
	var st State
	if n := s.Apply(&st, time.Now()); n != 3 {
		t.Fatalf("expected 3 bytes read, got %d", n)
	}
	s.ch <- 'D'
	if n := s.Apply(&st, time.Now()); n != 1 {
		t.Fatalf("carried bytes must not be counted twice, got %d", n)
	}
}
