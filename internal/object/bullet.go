package object

import (
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/physics"
)

// Bullet is a shot fired by the player. It travels straight up.
type Bullet struct {
	physics.Rect
	Speed float64
	spent bool
}

// NewBullet creates a bullet with its top-left corner at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{
		Rect:  physics.Rect{X: x, Y: y, W: config.BulletWidth, H: config.BulletHeight},
		Speed: config.BulletSpeed,
	}
}

// MarkSpent marks the bullet as consumed by a hit.
func (b *Bullet) MarkSpent() { b.spent = true }

// IsSpent returns true once the bullet has hit something.
func (b *Bullet) IsSpent() bool { return b.spent }

// Update moves the bullet up. Returns true once it has left the top edge.
func (b *Bullet) Update(ctx UpdateContext) (remove bool) {
	b.Y -= b.Speed
	return b.Y <= 0
}

func (b *Bullet) Draw(s draw.Surface) {
	s.FillRect(b.X, b.Y, b.W, b.H, ColorBullet)
}

// EnemyBullet is a shot fired by an enemy. It travels straight down.
type EnemyBullet struct {
	physics.Rect
	Speed float64
}

// NewEnemyBullet creates an enemy shot at (x, y) with the speed for the given stage.
func NewEnemyBullet(x, y float64, level int) *EnemyBullet {
	return &EnemyBullet{
		Rect:  physics.Rect{X: x, Y: y, W: config.EnemyBulletWidth, H: config.EnemyBulletHeight},
		Speed: config.EnemyBulletSpeed + float64(level)*config.EnemyBulletSpeedPerLevel,
	}
}

// Update moves the shot down. Returns true once it has reached the bottom edge.
func (b *EnemyBullet) Update(ctx UpdateContext) (remove bool) {
	b.Y += b.Speed
	return b.Y >= ctx.Field.Height
}

func (b *EnemyBullet) Draw(s draw.Surface) {
	s.FillRect(b.X, b.Y, b.W, b.H, ColorEnemyBullet)
}
