package game

import "github.com/tomz197/galaxy/internal/object"

// resolveBulletHits applies player bullets to enemies. Each bullet damages at most
// one enemy: the lowest-indexed live enemy it overlaps. Spent bullets and destroyed
// enemies are removed after the scan so indices stay valid during it.
func (g *Simulation) resolveBulletHits() {
	if len(g.Bullets) == 0 || len(g.Enemies) == 0 {
		return
	}

	g.grid.Clear()
	for i, e := range g.Enemies {
		g.grid.Insert(e.Rect, i)
	}

	for _, b := range g.Bullets {
		target := -1
		g.grid.Query(b.Rect, func(i int) bool {
			if target >= 0 && i >= target {
				return false
			}
			e := g.Enemies[i]
			if !e.IsDestroyed() && b.Overlaps(e.Rect) {
				target = i
			}
			return false
		})
		if target < 0 {
			continue
		}

		b.MarkSpent()
		e := g.Enemies[target]
		if !e.Hit() {
			continue
		}

		cx, cy := e.Center()
		g.Particles = object.SpawnExplosion(g.Particles, cx, cy, e.DebrisColor(), g.rnd)
		g.Kills++
		g.host.AddScore(e.Points())
		g.logger.Debug("enemy destroyed", "kind", e.Kind, "points", e.Points(), "kills", g.Kills)
	}

	keptBullets := g.Bullets[:0]
	for _, b := range g.Bullets {
		if !b.IsSpent() {
			keptBullets = append(keptBullets, b)
		}
	}
	clear(g.Bullets[len(keptBullets):])
	g.Bullets = keptBullets

	keptEnemies := g.Enemies[:0]
	for _, e := range g.Enemies {
		if !e.IsDestroyed() {
			keptEnemies = append(keptEnemies, e)
		}
	}
	clear(g.Enemies[len(keptEnemies):])
	g.Enemies = keptEnemies
}

// checkPlayerHit ends the game when an enemy shot or an enemy body touches the ship.
// The host hears about it once; entities stay where they are.
func (g *Simulation) checkPlayerHit() {
	if g.Over {
		return
	}

	hit := false
	for _, eb := range g.EnemyBullets {
		if eb.Overlaps(g.Player.Rect) {
			hit = true
			break
		}
	}
	if !hit {
		for _, e := range g.Enemies {
			if e.Overlaps(g.Player.Rect) {
				hit = true
				break
			}
		}
	}
	if !hit {
		return
	}

	g.Over = true
	score := g.host.Score()
	g.logger.Debug("player destroyed", "stage", g.Level, "score", score, "kills", g.Kills)
	g.host.GameOver(score, g.Kills)
}
