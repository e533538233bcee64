package object

import (
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/physics"
)

// Player is the ship at the bottom of the field.
type Player struct {
	physics.Rect
	Speed float64
}

// NewPlayer creates the ship centred horizontally near the bottom edge.
func NewPlayer(f Field) *Player {
	return &Player{
		Rect: physics.Rect{
			X: f.Width/2 - config.PlayerWidth/2,
			Y: f.Height - config.PlayerBottomOffset,
			W: config.PlayerWidth,
			H: config.PlayerHeight,
		},
		Speed: config.PlayerSpeed,
	}
}

// Move shifts the ship one tick in dir (-1 left, +1 right, 0 still).
// The ship never leaves [0, field width - ship width].
func (p *Player) Move(dir float64, f Field) {
	p.X = physics.Clamp(p.X+dir*p.Speed, 0, f.Width-p.W)
}

// Muzzle returns where a new bullet spawns: centred on the nose.
func (p *Player) Muzzle() (x, y float64) {
	return p.X + p.W/2 - config.BulletWidth/2, p.Y
}

// Draw renders body, nose and engine glow. flicker in [0,1) varies the glow's alpha.
func (p *Player) Draw(s draw.Surface, flicker float64) {
	s.FillRect(p.X, p.Y+10, p.W, p.H-10, ColorPlayerBody)
	s.FillRect(p.X+10, p.Y, p.W-20, 15, ColorPlayerNose)
	s.FillRect(p.X+12, p.Y+p.H, p.W-24, 8, ColorEngine.Alpha(0.5+flicker*0.5))
}
