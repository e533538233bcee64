package object

import (
	"sync"

	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick
	Life   int     // Ticks remaining
	Color  draw.Color
}

// NewParticle takes a particle from the pool and initialises it.
func NewParticle(x, y, vx, vy float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Life = config.ParticleLife
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion appends a burst of particles centred on (x, y) and returns the
// extended slice. Velocities are uniform in [-spread, spread] on both axes.
func SpawnExplosion(dst []*Particle, x, y float64, color draw.Color, rnd Rand) []*Particle {
	for i := 0; i < config.ExplosionParticles; i++ {
		vx := (rnd.Float64() - 0.5) * 2 * config.ParticleSpread
		vy := (rnd.Float64() - 0.5) * 2 * config.ParticleSpread
		dst = append(dst, NewParticle(x, y, vx, vy, color))
	}
	return dst
}

// Update moves the particle and burns one tick of life.
// Returns true once the particle has expired.
func (p *Particle) Update() (remove bool) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	return p.Life <= 0
}

// Draw renders the particle as a small square fading with its remaining life.
func (p *Particle) Draw(s draw.Surface) {
	alpha := float64(p.Life) / config.ParticleLife
	s.FillRect(p.X, p.Y, config.ParticleSize, config.ParticleSize, p.Color.Alpha(alpha))
}
