package object

import (
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
)

// Star is a background point scrolling down the field. Stars never collide.
type Star struct {
	X, Y  float64
	Size  float64 // [0, StarMaxSize)
	Speed float64 // [StarMinSpeed, StarMinSpeed+StarSpeedSpan)
}

// NewStarfield scatters n stars uniformly over the field.
func NewStarfield(n int, f Field, rnd Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:     rnd.Float64() * f.Width,
			Y:     rnd.Float64() * f.Height,
			Size:  rnd.Float64() * config.StarMaxSize,
			Speed: config.StarMinSpeed + rnd.Float64()*config.StarSpeedSpan,
		}
	}
	return stars
}

// Update scrolls the star and wraps it to the top once it passes the bottom edge.
func (s *Star) Update(f Field) {
	s.Y += s.Speed
	if s.Y > f.Height {
		s.Y = 0
	}
}

// Draw renders the star; smaller stars are dimmer.
func (s *Star) Draw(surf draw.Surface) {
	surf.FillRect(s.X, s.Y, s.Size, s.Size, ColorStar.Alpha(s.Size/2))
}
