package draw

// Op is one drawing call captured by a Recorder.
type Op struct {
	Kind  string // "clear", "rect", "circle" or "text"
	X, Y  float64
	W, H  float64 // Radius is stored in W for circles
	Color Color
	Text  string
}

// Recorder is a Surface that remembers every call instead of drawing.
// Useful for headless frontends and for asserting draw order.
type Recorder struct {
	Width, Height float64
	Ops           []Op
}

// NewRecorder returns a Recorder with the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) Size() (w, h float64) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: "clear"})
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: cx, Y: cy, W: radius, Color: c})
}

func (r *Recorder) Text(x, y float64, s string, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Color: style.Color, Text: s})
}

// Reset drops all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Texts returns the recorded text strings in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

var _ Surface = (*Recorder)(nil)
