package game

import (
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/object"
)

// Shoot fires one bullet from the ship's nose. It is a silent no-op while paused,
// during the stage intro, after the stage result or game over was reported, and
// within the cooldown of the last accepted shot. Returns whether a bullet was fired.
func (g *Simulation) Shoot() bool {
	if g.Player == nil || g.Paused || g.IntroTimer > 0 || g.Transitioning || g.Over {
		return false
	}

	now := g.clock.Now()
	if !g.lastShot.IsZero() && now.Sub(g.lastShot) < config.ShotCooldown {
		return false
	}

	x, y := g.Player.Muzzle()
	g.Bullets = append(g.Bullets, object.NewBullet(x, y))
	g.lastShot = now
	return true
}
