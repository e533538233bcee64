// Package game runs the arcade simulation: a player ship against a marching,
// diving formation, one stage at a time.
//
// The simulation is driven one tick per frame by its owner and never blocks.
// It reports stage results and deaths to a Host and keeps no score of its own.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/input"
	"github.com/tomz197/galaxy/internal/object"
	"github.com/tomz197/galaxy/internal/physics"
)

// Host receives the simulation's lifecycle events. It owns the running score.
type Host interface {
	// Score returns the current running score.
	Score() int
	// AddScore is called once per destroyed enemy.
	AddScore(delta int)
	// GameOver is called at most once per Simulation.
	GameOver(score, enemiesKilled int)
	// LevelComplete is called once when a stage below the final one is cleared.
	// The host is expected to call InitStage(nextLevel) after the current tick returns.
	LevelComplete(nextLevel int)
	// Win is called once when the final stage is cleared.
	Win()
}

// Clock provides wall-clock time for the shot cooldown.
type Clock interface {
	Now() time.Time
}

// Rand is a source of uniform values in [0,1).
type Rand = object.Rand

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a Simulation. Zero values select defaults.
type Options struct {
	Field      object.Field // Defaults to config.FieldWidth x config.FieldHeight
	Clock      Clock        // Defaults to the system clock
	Rand       Rand         // Gameplay randomness
	RenderRand Rand         // Cosmetic randomness used only while drawing
	Logger     *log.Logger
}

// Simulation holds every entity store and stage flag of one mounted game.
// It is owned by a single goroutine and takes no locks.
type Simulation struct {
	Player       *object.Player
	Bullets      []*object.Bullet
	Enemies      []*object.Enemy
	EnemyBullets []*object.EnemyBullet
	Particles    []*object.Particle
	Stars        []object.Star

	Level         int
	Kills         int  // Cumulative for this Simulation, survives stage changes
	IntroTimer    int  // Ticks left of the stage intro
	Transitioning bool // Stage result already reported
	Over          bool // Game over already reported
	Paused        bool

	host     Host
	input    *input.State
	field    object.Field
	clock    Clock
	rnd      Rand
	fx       Rand
	logger   *log.Logger
	grid     *physics.SpatialGrid
	lastShot time.Time
}

// NewSimulation creates an unstarted simulation. Call InitStage to start it.
// in may be nil for a simulation without player control.
func NewSimulation(host Host, in *input.State, opts Options) *Simulation {
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	seed := time.Now().UnixNano()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(seed))
	}
	if opts.RenderRand == nil {
		opts.RenderRand = rand.New(rand.NewSource(seed + 1))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if in == nil {
		in = &input.State{}
	}

	return &Simulation{
		host:   host,
		input:  in,
		field:  opts.Field,
		clock:  opts.Clock,
		rnd:    opts.Rand,
		fx:     opts.RenderRand,
		logger: opts.Logger,
		// Cells wider than an enemy keep each enemy in at most four cells.
		grid: physics.NewSpatialGrid(opts.Field.Width, opts.Field.Height, 2*config.EnemySpacing),
	}
}

// Field returns the logical play area.
func (g *Simulation) Field() object.Field {
	return g.field
}

// SetPaused freezes or resumes the simulation. While paused ticks run no logic.
func (g *Simulation) SetPaused(paused bool) {
	g.Paused = paused
}

// IntroActive reports whether the stage intro is still showing.
func (g *Simulation) IntroActive() bool {
	return g.IntroTimer > 0
}

func (g *Simulation) updateContext() object.UpdateContext {
	return object.UpdateContext{Field: g.field, Level: g.Level, Rand: g.rnd}
}
