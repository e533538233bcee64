// Package object defines the entities of the play field and their per-tick motion.
//
// All motion is expressed per tick. Entities never allocate randomness of their
// own: anything random is drawn from the Rand passed in by the simulation.
package object

import "github.com/tomz197/galaxy/internal/draw"

// Field is the logical play area shared by every entity.
type Field struct {
	Width  float64
	Height float64
}

// Rand is a source of uniform values in [0,1).
// *math/rand.Rand satisfies it; tests pass constant stubs.
type Rand interface {
	Float64() float64
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Field Field
	Level int
	Rand  Rand
}

// Palette
var (
	ColorPlayerBody  = draw.White
	ColorPlayerNose  = draw.Hex("#dc2626")
	ColorEngine      = draw.Hex("#60a5fa")
	ColorBullet      = draw.Hex("#ef4444")
	ColorEnemyBullet = draw.White
	ColorBoss        = draw.Hex("#22c55e")
	ColorBossCore    = draw.Hex("#f97316")
	ColorRed         = draw.Hex("#ef4444")
	ColorBlue        = draw.Hex("#60a5fa")
	ColorStar        = draw.White

	ColorBossDebris = draw.Hex("#4ade80")
	ColorRedDebris  = draw.Hex("#f87171")
	ColorBlueDebris = draw.Hex("#60a5fa")
)
