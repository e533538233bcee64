package input

import "github.com/tomz197/galaxy/internal/physics"

// noButton marks a pointer that is down outside every button.
const noButton Control = -1

// Button is an on-screen region bound to a control. A Tap button presses its
// control once per pointer press and never holds it.
type Button struct {
	Control Control
	Area    physics.Rect
	Tap     bool
}

// Contains reports whether (x, y) lies inside the button, right and bottom edges excluded.
func (b Button) Contains(x, y float64) bool {
	return x >= b.Area.X && x < b.Area.Right() && y >= b.Area.Y && y < b.Area.Bottom()
}

// Point is a pointer position in the same units as the button areas.
type Point struct {
	X, Y float64
}

// Pointers turns touch and mouse pointers into button presses. A button is held
// while any pointer is down inside it; sliding out releases it. A pointer that
// goes down outside every button taps Confirm.
type Pointers struct {
	buttons []Button
	taps    map[Control]bool
	over    map[int]Control
}

// NewPointers creates a tracker for the given buttons.
func NewPointers(buttons []Button) *Pointers {
	taps := make(map[Control]bool)
	for _, b := range buttons {
		if b.Tap {
			taps[b.Control] = true
		}
	}
	return &Pointers{buttons: buttons, taps: taps, over: make(map[int]Control)}
}

// Over reports whether any pointer is down inside the button for c.
func (p *Pointers) Over(c Control) bool {
	for _, o := range p.over {
		if o == c {
			return true
		}
	}
	return false
}

// Buttons returns the tracked buttons.
func (p *Pointers) Buttons() []Button {
	return p.buttons
}

// ButtonAt returns the control of the button under (x, y).
func (p *Pointers) ButtonAt(x, y float64) (Control, bool) {
	for _, b := range p.buttons {
		if b.Contains(x, y) {
			return b.Control, true
		}
	}
	return noButton, false
}

// Update applies the positions of every pointer currently down, keyed by pointer
// id. Pointers missing from active were lifted.
func (p *Pointers) Update(st *State, active map[int]Point) {
	for id, c := range p.over {
		if _, ok := active[id]; ok {
			continue
		}
		if c != noButton && !p.taps[c] {
			st.PointerUp(c)
		}
		delete(p.over, id)
	}

	for id, pos := range active {
		c, _ := p.ButtonAt(pos.X, pos.Y)
		prev, seen := p.over[id]
		p.over[id] = c

		switch {
		case !seen && c == noButton:
			st.Tap(Confirm)
		case !seen:
			p.press(st, c)
		case prev != c:
			if prev != noButton && !p.taps[prev] {
				st.PointerLeave(prev)
			}
			if c != noButton {
				p.press(st, c)
			}
		}
	}
}

func (p *Pointers) press(st *State, c Control) {
	if p.taps[c] {
		st.Tap(c)
		return
	}
	st.PointerDown(c)
}

// Release lifts every tracked pointer.
func (p *Pointers) Release(st *State) {
	p.Update(st, nil)
}
