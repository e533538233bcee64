// Package ebitenview runs the app in a desktop window with ebiten: the field is
// drawn with vector shapes and touch or mouse drives three on-screen buttons.
package ebitenview

import (
	"image"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/galaxy/internal/draw"
)

// Debug font cell size in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Text scales for regular and bold lines.
const (
	textScale = 1.5
	boldScale = 2.0
)

// Surface draws onto an ebiten image in logical field units, one pixel per unit.
type Surface struct {
	target  *ebiten.Image
	scratch *ebiten.Image // Debug text is printed here, then tinted onto target
	width   float64
	height  float64
}

// NewSurface creates a width x height surface with its own backing image.
func NewSurface(width, height int) *Surface {
	return &Surface{
		target:  ebiten.NewImage(width, height),
		scratch: ebiten.NewImage(width, glyphHeight),
		width:   float64(width),
		height:  float64(height),
	}
}

// Image returns the backing image.
func (s *Surface) Image() *ebiten.Image { return s.target }

func (s *Surface) Size() (w, h float64) { return s.width, s.height }

func (s *Surface) Clear() {
	s.target.Fill(draw.Black.NRGBA())
}

func (s *Surface) FillRect(x, y, w, h float64, c draw.Color) {
	vector.DrawFilledRect(s.target, float32(x), float32(y), float32(w), float32(h), c.NRGBA(), false)
}

func (s *Surface) FillCircle(cx, cy, r float64, c draw.Color) {
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), c.NRGBA(), true)
}

func (s *Surface) Text(x, y float64, text string, style draw.TextStyle) {
	if text == "" {
		return
	}
	scale := textScale
	if style.Bold {
		scale = boldScale
	}

	pixels := min(utf8.RuneCountInString(text)*glyphWidth, s.scratch.Bounds().Dx())
	width := float64(pixels) * scale
	switch style.Align {
	case draw.AlignCenter:
		x -= width / 2
	case draw.AlignRight:
		x -= width
	}

	s.scratch.Clear()
	ebitenutil.DebugPrintAt(s.scratch, text, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(style.Color.NRGBA())
	glyphs := s.scratch.SubImage(image.Rect(0, 0, pixels, glyphHeight)).(*ebiten.Image)
	s.target.DrawImage(glyphs, op)
}

var _ draw.Surface = (*Surface)(nil)
