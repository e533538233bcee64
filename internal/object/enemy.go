package object

import (
	"math"

	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/physics"
)

// EnemyKind selects an enemy's hit points, score and colours.
type EnemyKind int

const (
	Boss EnemyKind = iota
	Red
	Blue
)

func (k EnemyKind) String() string {
	switch k {
	case Boss:
		return "boss"
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// KindForRow returns the kind of every enemy in a formation row.
func KindForRow(row int) EnemyKind {
	switch {
	case row == 0:
		return Boss
	case row < 2:
		return Red
	default:
		return Blue
	}
}

// Enemy is one member of the formation.
type Enemy struct {
	physics.Rect
	Kind      EnemyKind
	HP        int
	Direction float64 // +1 marching right, -1 marching left
	Diving    bool

	// DiveTimer is seeded at creation but nothing counts it down.
	// Dives start only from the per-tick random check.
	DiveTimer float64

	dead bool
}

// NewEnemy creates a marching enemy of the given kind at (x, y).
func NewEnemy(x, y float64, kind EnemyKind, diveTimer float64) *Enemy {
	hp := config.HitPoints
	if kind == Boss {
		hp = config.BossHitPoints
	}
	return &Enemy{
		Rect:      physics.Rect{X: x, Y: y, W: config.EnemyWidth, H: config.EnemyHeight},
		Kind:      kind,
		HP:        hp,
		Direction: 1,
		DiveTimer: diveTimer,
	}
}

// FireChance returns the per-enemy, per-tick probability of firing on a stage.
// Each stage after the first is 10% more aggressive.
func FireChance(level int) float64 {
	return config.FireChance * math.Pow(config.FireChanceGrowth, float64(level-1))
}

// Update advances the enemy one tick: march or dive, maybe start a dive, maybe fire.
// edgeHit reports that a marching enemy crossed a side margin; the caller reverses
// the whole formation after every enemy has moved. shot is nil unless it fired.
func (e *Enemy) Update(ctx UpdateContext) (edgeHit bool, shot *EnemyBullet) {
	level := float64(ctx.Level)

	if !e.Diving {
		e.X += e.Direction * (config.MarchSpeed + level*config.MarchSpeedPerLevel)
		edgeHit = e.X > ctx.Field.Width-config.EdgeMarginRight || e.X < config.EdgeMarginLeft
	} else {
		e.Y += config.DiveSpeed + level*config.DiveSpeedPerLevel
		e.X += math.Sin(e.Y/config.WobblePeriod) * config.WobbleAmplitude
		if e.Y > ctx.Field.Height {
			// Re-enter from the top and rejoin the march
			e.Y = 0
			e.Diving = false
		}
	}

	if !e.Diving && ctx.Rand.Float64() < config.DiveChance {
		e.Diving = true
	}

	if ctx.Rand.Float64() < FireChance(ctx.Level) {
		shot = NewEnemyBullet(e.X+e.W/2, e.Y+e.H, ctx.Level)
	}
	return edgeHit, shot
}

// Reverse flips the march direction and drops the enemy one step.
// Diving enemies ignore formation moves.
func (e *Enemy) Reverse() {
	if e.Diving {
		return
	}
	e.Direction = -e.Direction
	e.Y += config.FormationDrop
}

// Hit applies one point of damage. Returns true when the enemy is destroyed.
func (e *Enemy) Hit() bool {
	e.HP--
	if e.HP <= 0 {
		e.dead = true
	}
	return e.dead
}

// IsDestroyed returns true once hit points are exhausted.
func (e *Enemy) IsDestroyed() bool { return e.dead }

// Points returns the score for destroying the enemy.
func (e *Enemy) Points() int {
	switch e.Kind {
	case Boss:
		return config.ScoreBoss
	case Red:
		return config.ScoreRed
	default:
		return config.ScoreBlue
	}
}

// DebrisColor returns the explosion particle colour.
func (e *Enemy) DebrisColor() draw.Color {
	switch e.Kind {
	case Boss:
		return ColorBossDebris
	case Red:
		return ColorRedDebris
	default:
		return ColorBlueDebris
	}
}

func (e *Enemy) Draw(s draw.Surface) {
	switch e.Kind {
	case Boss:
		s.FillRect(e.X, e.Y, e.W, e.H, ColorBoss)
		cx, cy := e.Center()
		s.FillCircle(cx, cy, 6, ColorBossCore)
	case Red:
		s.FillRect(e.X, e.Y, e.W, e.H, ColorRed)
	default:
		s.FillRect(e.X, e.Y, e.W, e.H, ColorBlue)
	}
}
