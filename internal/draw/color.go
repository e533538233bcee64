package draw

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with straight (non-premultiplied) alpha in [0,1].
type Color struct {
	RGB colorful.Color
	A   float64
}

// Common colours.
var (
	Black = Hex("#000000")
	White = Hex("#ffffff")
)

// Hex parses a "#rrggbb" colour. Invalid input yields opaque black.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{A: 1}
	}
	return Color{RGB: c, A: 1}
}

// Alpha returns c with its alpha replaced by a, clamped to [0,1].
func (c Color) Alpha(a float64) Color {
	c.A = math.Max(0, math.Min(1, a))
	return c
}

// Hex returns the "#rrggbb" form of the colour, ignoring alpha.
func (c Color) Hex() string {
	return c.RGB.Clamped().Hex()
}

// Over composites c onto dst and returns the opaque result.
func (c Color) Over(dst colorful.Color) colorful.Color {
	if c.A >= 1 {
		return c.RGB
	}
	if c.A <= 0 {
		return dst
	}
	return dst.BlendRgb(c.RGB, c.A).Clamped()
}

// NRGBA converts to the image/color representation used by image-based surfaces.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.A * 255))}
}
