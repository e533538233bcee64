// Package input turns keyboard, terminal and pointer events into per-frame control state.
package input

// Control is a logical game control, independent of the device that drives it.
type Control int

const (
	Left Control = iota
	Right
	Fire
	Pause
	Confirm
	Back
	Scores
	Quit

	numControls
)

var controlNames = [numControls]string{"left", "right", "fire", "pause", "confirm", "back", "scores", "quit"}

func (c Control) String() string {
	if c < 0 || c >= numControls {
		return "unknown"
	}
	return controlNames[c]
}

// State is the input snapshot consumed by one tick.
// Held controls stay set until released; press events last until EndFrame.
type State struct {
	held     [numControls]bool
	pressed  [numControls]bool
	pointers [numControls]int // Pointers currently down inside an on-screen button
}

func valid(c Control) bool { return c >= 0 && c < numControls }

// Set records a key's held state. A released-to-held transition is also a press.
func (s *State) Set(c Control, held bool) {
	if !valid(c) {
		return
	}
	if held && !s.Held(c) {
		s.pressed[c] = true
	}
	s.held[c] = held
}

// Tap records a press event without holding the control.
func (s *State) Tap(c Control) {
	if valid(c) {
		s.pressed[c] = true
	}
}

// Held reports whether the control is down via a key or any pointer.
func (s *State) Held(c Control) bool {
	return valid(c) && (s.held[c] || s.pointers[c] > 0)
}

// Pressed reports whether the control was pressed since the last EndFrame.
func (s *State) Pressed(c Control) bool {
	return valid(c) && s.pressed[c]
}

// PointerDown registers a pointer pressed inside the button bound to c.
func (s *State) PointerDown(c Control) {
	if !valid(c) {
		return
	}
	if !s.Held(c) {
		s.pressed[c] = true
	}
	s.pointers[c]++
}

// PointerUp registers a pointer lifted inside the button bound to c.
func (s *State) PointerUp(c Control) {
	if valid(c) && s.pointers[c] > 0 {
		s.pointers[c]--
	}
}

// PointerLeave registers a pointer that slid out of the button while still down.
// The button releases exactly as if the pointer had been lifted.
func (s *State) PointerLeave(c Control) {
	s.PointerUp(c)
}

// EndFrame clears press events after a tick has consumed them.
func (s *State) EndFrame() {
	clear(s.pressed[:])
}

// Reset releases every control.
func (s *State) Reset() {
	*s = State{}
}
