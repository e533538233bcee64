package game

import (
	"strconv"

	"github.com/tomz197/galaxy/internal/draw"
)

var (
	introShade   = draw.Black.Alpha(0.6)
	introTitle   = draw.TextStyle{Color: draw.Hex("#f20df2"), Align: draw.AlignCenter, Bold: true}
	introCaption = draw.TextStyle{Color: draw.White, Align: draw.AlignCenter}
)

// Draw paints the current state onto s, back to front. It never changes gameplay
// state; the engine flicker comes from the render-only random source.
func (g *Simulation) Draw(s draw.Surface) {
	s.Clear()

	for i := range g.Stars {
		g.Stars[i].Draw(s)
	}

	if g.Player != nil {
		g.Player.Draw(s, g.fx.Float64())
	}
	for _, b := range g.Bullets {
		b.Draw(s)
	}
	for _, eb := range g.EnemyBullets {
		eb.Draw(s)
	}
	for _, e := range g.Enemies {
		e.Draw(s)
	}
	for _, p := range g.Particles {
		p.Draw(s)
	}

	if g.IntroTimer > 0 {
		w, h := s.Size()
		s.FillRect(0, 0, w, h, introShade)
		s.Text(w/2, h/2-12, "STAGE "+strconv.Itoa(g.Level), introTitle)
		s.Text(w/2, h/2+38, "READY PILOT?", introCaption)
	}
}
