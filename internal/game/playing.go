package game

import (
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/input"
)

// Frame runs one tick and draws the result. A nil surface means the frontend is
// not ready yet: the tick is skipped entirely.
func (g *Simulation) Frame(s draw.Surface) {
	if s == nil {
		return
	}
	if g.input.Pressed(input.Fire) {
		g.Shoot()
	}
	g.Tick()
	g.Draw(s)
}

// Tick advances the simulation by one frame. Paused simulations do nothing.
func (g *Simulation) Tick() {
	if g.Paused || g.Player == nil {
		return
	}

	if g.IntroTimer > 0 {
		g.IntroTimer--
	}

	for i := range g.Stars {
		g.Stars[i].Update(g.field)
	}

	if g.IntroTimer <= 0 && !g.Transitioning && !g.Over {
		g.updatePlaying()
	}

	g.updateParticles()
}

// updatePlaying runs the gameplay part of a tick in a fixed order.
func (g *Simulation) updatePlaying() {
	var dir float64
	if g.input.Held(input.Left) {
		dir--
	}
	if g.input.Held(input.Right) {
		dir++
	}
	g.Player.Move(dir, g.field)

	if g.input.Held(input.Fire) {
		g.Shoot()
	}

	ctx := g.updateContext()

	kept := g.Bullets[:0]
	for _, b := range g.Bullets {
		if !b.Update(ctx) {
			kept = append(kept, b)
		}
	}
	clear(g.Bullets[len(kept):])
	g.Bullets = kept

	g.updateEnemies()

	keptShots := g.EnemyBullets[:0]
	for _, eb := range g.EnemyBullets {
		if !eb.Update(ctx) {
			keptShots = append(keptShots, eb)
		}
	}
	clear(g.EnemyBullets[len(keptShots):])
	g.EnemyBullets = keptShots

	g.resolveBulletHits()
	g.checkPlayerHit()

	if !g.Over {
		g.checkStageClear()
	}
}

// updateEnemies moves the formation, then reverses it if any marching enemy
// crossed a side margin. Shots fired this tick join the enemy bullet store.
func (g *Simulation) updateEnemies() {
	ctx := g.updateContext()

	edgeHit := false
	for _, e := range g.Enemies {
		hit, shot := e.Update(ctx)
		if hit {
			edgeHit = true
		}
		if shot != nil {
			g.EnemyBullets = append(g.EnemyBullets, shot)
		}
	}

	if edgeHit {
		for _, e := range g.Enemies {
			e.Reverse()
		}
	}
}

// updateParticles advances debris. Runs even between stages so explosions finish.
func (g *Simulation) updateParticles() {
	kept := g.Particles[:0]
	for _, p := range g.Particles {
		if p.Update() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(g.Particles[len(kept):])
	g.Particles = kept
}
