// Package draw provides the drawing surfaces: a truecolor half-block terminal
// canvas with chunked output, a recording surface, and the colour type they share.
package draw

// Align controls horizontal text placement relative to the anchor x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how a text overlay is drawn.
type TextStyle struct {
	Color Color
	Align Align
	Bold  bool
}

// Surface is a drawing target addressed in logical field units.
// Implementations scale logical coordinates to their own resolution.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (w, h float64)
	// Clear paints the whole surface black.
	Clear()
	// FillRect fills an axis-aligned box, compositing by the colour's alpha.
	FillRect(x, y, w, h float64, c Color)
	// FillCircle fills a disc centred on (cx, cy).
	FillCircle(cx, cy, r float64, c Color)
	// Text draws a single line of text anchored at (x, y), y being the line's top.
	Text(x, y float64, s string, style TextStyle)
}
