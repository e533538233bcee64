// Package config centralizes all tunable game parameters.
// Speeds, probabilities and timers are expressed per tick, not per second.
package config

import "time"

// Play field in logical units. Frontends scale it to their surface.
const (
	FieldWidth  = 480
	FieldHeight = 640
)

// Player
const (
	PlayerWidth        = 30
	PlayerHeight       = 30
	PlayerSpeed        = 7.0
	PlayerBottomOffset = 100 // Distance from the bottom edge to the ship's top
	ShotCooldown       = 150 * time.Millisecond
)

// Player bullets
const (
	BulletWidth  = 4
	BulletHeight = 12
	BulletSpeed  = 10.0
)

// Enemy bullets
const (
	EnemyBulletWidth         = 4
	EnemyBulletHeight        = 10
	EnemyBulletSpeed         = 4.0
	EnemyBulletSpeedPerLevel = 0.1
)

// Enemy formation
const (
	EnemyWidth    = 24
	EnemyHeight   = 24
	EnemyRows     = 4
	EnemyCols     = 8
	EnemySpacing  = 40
	EnemyTopY     = 60
	BossHitPoints = 2
	HitPoints     = 1
	DiveTimerMax  = 500 // Seeded on every enemy, never consumed
)

// Enemy motion
const (
	MarchSpeed         = 1.0
	MarchSpeedPerLevel = 0.1
	EdgeMarginLeft     = 10
	EdgeMarginRight    = 40 // Measured from the right edge to the enemy's left side
	FormationDrop      = 5
	DiveChance         = 0.001
	DiveSpeed          = 3.0
	DiveSpeedPerLevel  = 0.2
	WobblePeriod       = 20.0
	WobbleAmplitude    = 2.0
	FireChance         = 0.002
	FireChanceGrowth   = 1.1 // Multiplier per stage after the first
)

// Scoring
const (
	ScoreBoss = 400
	ScoreRed  = 150
	ScoreBlue = 80
)

// Explosions
const (
	ExplosionParticles = 8
	ParticleSpread     = 2.0 // Velocity range is [-spread, spread] per axis
	ParticleLife       = 30
	ParticleSize       = 3
)

// Starfield
const (
	StarCount     = 100
	StarMaxSize   = 2.0
	StarMinSpeed  = 1.0
	StarSpeedSpan = 3.0
)

// Stages
const (
	FirstStage = 1
	FinalStage = 7
	IntroTicks = 120 // ~2 seconds at the nominal rate
)

// Frame rate - the simulation advances one tick per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal rendering
const (
	MaxTermWidth  = 120 // Larger terminals get a centred, bordered canvas
	MaxTermHeight = 60
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Screens
const (
	InitialHighScore = 20000
	AccuracyFloor    = 80 // Placeholder accuracy is drawn from [floor, floor+span)
	AccuracySpan     = 20
)

// Server shutdown notice shown to SSH sessions before disconnecting.
const ShutdownDisplay = 3 * time.Second
