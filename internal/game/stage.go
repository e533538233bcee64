package game

import (
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/object"
)

// InitStage resets the field for the given stage: a centred ship, an empty sky of
// shots and debris, and a fresh formation. Stars are created once and kept.
func (g *Simulation) InitStage(level int) {
	g.Level = level
	g.Player = object.NewPlayer(g.field)

	g.Bullets = g.Bullets[:0]
	g.EnemyBullets = g.EnemyBullets[:0]
	for _, p := range g.Particles {
		p.Release()
	}
	g.Particles = g.Particles[:0]

	g.Enemies = g.Enemies[:0]
	startX := (g.field.Width - config.EnemyCols*config.EnemySpacing) / 2
	for row := 0; row < config.EnemyRows; row++ {
		for col := 0; col < config.EnemyCols; col++ {
			g.Enemies = append(g.Enemies, object.NewEnemy(
				startX+float64(col*config.EnemySpacing),
				float64(config.EnemyTopY+row*config.EnemySpacing),
				object.KindForRow(row),
				g.rnd.Float64()*config.DiveTimerMax,
			))
		}
	}

	if len(g.Stars) == 0 {
		g.Stars = object.NewStarfield(config.StarCount, g.field, g.rnd)
	}

	g.IntroTimer = config.IntroTicks
	g.Transitioning = false

	g.logger.Debug("stage started", "stage", level, "enemies", len(g.Enemies))
}

// checkStageClear reports a cleared formation to the host exactly once per stage.
func (g *Simulation) checkStageClear() {
	if g.Transitioning || len(g.Enemies) > 0 {
		return
	}
	g.Transitioning = true

	if g.Level < config.FinalStage {
		g.logger.Debug("stage cleared", "stage", g.Level, "kills", g.Kills)
		g.host.LevelComplete(g.Level + 1)
		return
	}
	g.logger.Debug("final stage cleared", "stage", g.Level, "kills", g.Kills)
	g.host.Win()
}
