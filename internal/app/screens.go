package app

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
)

var (
	colorAccent = draw.Hex("#f20df2")
	colorBlue   = draw.Hex("#135bec")
	colorGold   = draw.Hex("#facc15")
	colorRed    = draw.Hex("#ef4444")
	colorMuted  = draw.Hex("#9ca3af")
	colorPanel  = draw.Hex("#282e39").Alpha(0.8)
	pauseShade  = draw.Black.Alpha(0.6)
)

// blinkFrames is the half period of blinking prompts.
const blinkFrames = 36

// wrapWidth is the longest text line on the narrowest supported terminal.
const wrapWidth = 32

var printer = message.NewPrinter(language.English)

// formatScore groups digits by thousands.
func formatScore(n int) string {
	return printer.Sprintf("%d", n)
}

func style(c draw.Color, align draw.Align, bold bool) draw.TextStyle {
	return draw.TextStyle{Color: c, Align: align, Bold: bold}
}

func centered(c draw.Color) draw.TextStyle { return style(c, draw.AlignCenter, false) }

func title(c draw.Color) draw.TextStyle { return style(c, draw.AlignCenter, true) }

// wrap splits text into lines of at most width runes, breaking at spaces.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func (a *App) blinkOn() bool {
	return (a.frames/blinkFrames)%2 == 0
}

func (a *App) draw(s draw.Surface) {
	switch a.screen {
	case ScreenPlaying:
		a.sim.Frame(s)
		a.drawHUD(s)
		if a.sim.IntroActive() {
			a.drawBriefing(s)
		}
	case ScreenPaused:
		a.sim.Frame(s)
		a.drawHUD(s)
		a.drawPaused(s)
	default:
		s.Clear()
		for i := range a.stars {
			a.stars[i].Draw(s)
		}
		switch a.screen {
		case ScreenStart:
			a.drawStart(s)
		case ScreenGameOver:
			a.drawGameOver(s)
		case ScreenScores:
			a.drawScores(s)
		case ScreenWinner:
			a.drawWinner(s)
		}
	}
}

// drawHUD draws the score strip over the playing field.
func (a *App) drawHUD(s draw.Surface) {
	w, _ := s.Size()
	s.Text(16, 8, "1UP", style(colorRed, draw.AlignLeft, true))
	s.Text(16, 28, formatScore(a.score), style(draw.White, draw.AlignLeft, false))
	s.Text(w/2, 8, "HIGH SCORE", centered(colorRed))
	s.Text(w/2, 28, formatScore(max(a.highScore, a.score)), centered(draw.White))
	s.Text(w-16, 8, "SECTOR", style(colorMuted, draw.AlignRight, false))
	s.Text(w-16, 28, strconv.Itoa(a.level), style(draw.White, draw.AlignRight, true))
}

func (a *App) drawBriefing(s draw.Surface) {
	if a.briefing == "" {
		return
	}
	w, h := s.Size()
	for i, line := range wrap(a.briefing, wrapWidth) {
		s.Text(w/2, h/2+90+float64(i)*28, line, centered(colorMuted))
	}
}

func (a *App) drawPaused(s draw.Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, pauseShade)
	s.Text(w/2, h/2-40, "PAUSED", title(colorAccent))
	s.Text(w/2, h/2+20, "[P] RESUME", centered(draw.White))
	s.Text(w/2, h/2+60, "[ESC] BACK TO TITLE", centered(colorMuted))
}

func (a *App) drawStart(s draw.Surface) {
	w, h := s.Size()
	s.FillCircle(w/2, h*0.2, 36, colorAccent.Alpha(0.2))
	s.FillCircle(w/2, h*0.2, 14, colorAccent)
	s.Text(w/2, h*0.3, "GALAXY", title(colorAccent))
	if a.blinkOn() {
		s.Text(w/2, h*0.4, "PRESS START TO DEFEND EARTH", centered(draw.White))
	}

	s.FillRect(w*0.1, h*0.62, w*0.8, 48, colorAccent)
	s.Text(w/2, h*0.62+14, "[ENTER] START MISSION", title(draw.White))
	s.Text(w/2, h*0.74, "[S] SCORES", centered(draw.White))
	s.Text(w/2, h*0.79, "[Q] QUIT", centered(draw.White))
	s.Text(w/2, h*0.9, "ARROWS MOVE  SPACE FIRE  P PAUSE", centered(colorMuted))
}

func (a *App) drawGameOver(s draw.Surface) {
	w, h := s.Size()
	if a.blinkOn() {
		s.Text(w/2, h*0.1, "GAME OVER", title(draw.White))
	}

	s.Text(w/2, h*0.22, "FINAL SCORE", centered(colorMuted))
	s.Text(w/2, h*0.27, formatScore(a.stats.Score), title(draw.White))
	s.Text(w/2, h*0.33, "HIGH SCORE: "+formatScore(a.highScore), centered(colorGold))

	stats := [...]struct {
		value string
		label string
	}{
		{strconv.Itoa(a.stats.EnemiesKilled), "ENEMIES"},
		{strconv.Itoa(a.stats.Accuracy) + "%", "ACCURACY"},
		{strconv.Itoa(a.stats.Stage), "STAGE"},
	}
	cell := w / float64(len(stats))
	for i, st := range stats {
		x := cell*float64(i) + cell/2
		s.FillRect(cell*float64(i)+8, h*0.42, cell-16, 80, colorPanel)
		s.Text(x, h*0.42+16, st.value, title(draw.White))
		s.Text(x, h*0.42+48, st.label, centered(colorBlue))
	}

	if a.tip != "" {
		for i, line := range wrap(a.tip, wrapWidth) {
			s.Text(w/2, h*0.62+float64(i)*28, line, centered(colorMuted))
		}
	}

	s.Text(w/2, h*0.84, "[ENTER] PLAY AGAIN", title(colorBlue))
	s.Text(w/2, h*0.9, "[ESC] BACK TO TITLE", centered(draw.White))
}

func (a *App) drawScores(s draw.Surface) {
	w, h := s.Size()
	s.Text(w/2, h*0.08, "HALL OF FAME", title(draw.White))
	s.Text(w/2, h*0.14, "ALL TIME", centered(colorBlue))

	for i, entry := range a.lib.Leaderboard() {
		y := h*0.22 + float64(i)*56
		c := draw.White
		if i == 0 {
			c = colorGold
			s.FillRect(24, y-12, w-48, 44, colorGold.Alpha(0.15))
		}
		s.Text(40, y, entry.Rank, style(c, draw.AlignLeft, true))
		s.Text(110, y, entry.Name, style(c, draw.AlignLeft, true))
		s.Text(w-40, y, formatScore(entry.Score), style(c, draw.AlignRight, true))
	}

	s.Text(w/2, h*0.92, "[ESC] BACK TO TITLE", centered(colorBlue))
}

func (a *App) drawWinner(s draw.Surface) {
	w, h := s.Size()
	s.Text(w/2, h*0.12, "WINNER!", title(colorGold))
	s.FillCircle(w/2, h*0.3, 56, colorGold.Alpha(0.3))
	s.FillCircle(w/2, h*0.3, 40, colorGold)
	s.Text(w/2, h*0.46, "GALAXY RESTORED", title(draw.White))
	s.Text(w/2, h*0.52, "ALL "+strconv.Itoa(config.FinalStage)+" SECTORS CLEARED", centered(colorMuted))
	s.Text(w/2, h*0.62, "FINAL SCORE", centered(colorMuted))
	s.Text(w/2, h*0.67, formatScore(a.score), title(draw.White))
	s.Text(w/2, h*0.84, "[ENTER] MISSION REPORT", centered(draw.White))
}
