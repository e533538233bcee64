// Package app is the screen state machine around the simulation: title, play,
// pause, game over, high scores and the winner screen. It owns the running
// score and high score and mounts a fresh Simulation for every new game.
package app

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galaxy/internal/content"
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game"
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/input"
	"github.com/tomz197/galaxy/internal/object"
)

// Screen is the current app phase.
type Screen int

const (
	ScreenStart    Screen = iota // Title screen
	ScreenPlaying                // Simulation running
	ScreenPaused                 // Simulation mounted but frozen
	ScreenGameOver               // Final score and stats
	ScreenScores                 // Mock leaderboard
	ScreenWinner                 // All stages cleared
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game_over"
	case ScreenScores:
		return "scores"
	case ScreenWinner:
		return "winner"
	}
	return "unknown"
}

// Stats summarises the last finished game.
type Stats struct {
	EnemiesKilled int
	Accuracy      int // Percent. Not measured; drawn from a fixed range
	Stage         int
	Score         int
}

// Rand is the app's random source: tips, accuracy and the menu starfield.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// DefaultFetchTimeout bounds a briefing or tip lookup.
const DefaultFetchTimeout = 5 * time.Second

// Options configures an App. Zero values select defaults.
type Options struct {
	Library *content.Library // Required: leaderboard and fallback text
	Briefer content.Briefer  // Defaults to the local library. Called off the frame goroutine
	Rand    Rand
	Logger  *log.Logger

	// Simulation is passed to every mounted game. Its Logger defaults to Logger.
	Simulation game.Options

	// FetchTimeout bounds each briefing or tip lookup.
	FetchTimeout time.Duration

	// Go runs background lookups. Defaults to starting a goroutine.
	Go func(fn func())
}

type textKind int

const (
	textBriefing textKind = iota
	textTip
)

// fetched is a briefing or tip delivered from a background lookup.
type fetched struct {
	kind  textKind
	game  int // Mount generation the request belongs to
	stage int
	text  string
}

// App implements game.Host and drives one player's screens.
// Like the simulation it is owned by a single goroutine.
type App struct {
	in     *input.State
	lib    *content.Library
	opts   Options
	logger *log.Logger
	rnd    Rand

	screen       Screen
	sim          *game.Simulation
	score        int
	highScore    int
	level        int
	stats        Stats
	pendingStage int
	mounts       int

	briefing string
	tip      string
	results  chan fetched
	ctx      context.Context
	cancel   context.CancelFunc

	stars  []object.Star
	frames int
	done   bool
}

// New creates an App showing the title screen.
func New(in *input.State, opts Options) *App {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Briefer == nil {
		// Lookups run off the frame goroutine, so the briefer gets its own source.
		opts.Briefer = content.NewLocal(opts.Library, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Go == nil {
		opts.Go = func(fn func()) { go fn() }
	}
	if opts.Simulation.Logger == nil {
		opts.Simulation.Logger = opts.Logger
	}
	if opts.Simulation.Field.Width <= 0 || opts.Simulation.Field.Height <= 0 {
		opts.Simulation.Field = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	}
	if in == nil {
		in = &input.State{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		in:        in,
		lib:       opts.Library,
		opts:      opts,
		logger:    opts.Logger,
		rnd:       opts.Rand,
		screen:    ScreenStart,
		highScore: config.InitialHighScore,
		level:     config.FirstStage,
		results:   make(chan fetched, 4),
		ctx:       ctx,
		cancel:    cancel,
		stars:     object.NewStarfield(config.StarCount, opts.Simulation.Field, opts.Rand),
	}
}

// Screen returns the current screen.
func (a *App) Screen() Screen { return a.screen }

// Simulation returns the mounted game, or nil before the first start.
func (a *App) Simulation() *game.Simulation { return a.sim }

// HighScore returns the best score of this App's lifetime.
func (a *App) HighScore() int { return a.highScore }

// Level returns the current stage number.
func (a *App) Level() int { return a.level }

// Stats returns the stats of the last finished game.
func (a *App) Stats() Stats { return a.stats }

// Done reports whether the player asked to quit.
func (a *App) Done() bool { return a.done }

// Close cancels pending lookups.
func (a *App) Close() { a.cancel() }

// Score implements game.Host.
func (a *App) Score() int { return a.score }

// AddScore implements game.Host.
func (a *App) AddScore(delta int) { a.score += delta }

// GameOver implements game.Host.
func (a *App) GameOver(score, enemiesKilled int) {
	a.stats = Stats{
		EnemiesKilled: enemiesKilled,
		Accuracy:      config.AccuracyFloor + a.rnd.Intn(config.AccuracySpan),
		Stage:         a.level,
		Score:         score,
	}
	if score > a.highScore {
		a.highScore = score
	}
	a.logger.Info("game over", "score", score, "kills", enemiesKilled, "stage", a.level)
	a.tip = ""
	a.fetchTip()
	a.setScreen(ScreenGameOver)
}

// LevelComplete implements game.Host. The next stage is mounted once the
// current tick has returned.
func (a *App) LevelComplete(nextLevel int) {
	a.level = nextLevel
	a.pendingStage = nextLevel
}

// Win implements game.Host.
func (a *App) Win() {
	a.logger.Info("galaxy restored", "score", a.score)
	if a.score > a.highScore {
		a.highScore = a.score
	}
	a.setScreen(ScreenWinner)
}

// Frame handles input for the current screen, advances it by one tick and draws it.
// A nil surface skips the frame.
func (a *App) Frame(s draw.Surface) {
	if s == nil {
		return
	}
	a.frames++
	a.collect()

	if a.in.Pressed(input.Quit) {
		a.done = true
	}

	switch a.screen {
	case ScreenStart:
		a.updateStart()
	case ScreenPlaying:
		a.updatePlaying()
	case ScreenPaused:
		a.updatePaused()
	case ScreenGameOver:
		a.updateGameOver()
	case ScreenScores:
		a.updateScores()
	case ScreenWinner:
		a.updateWinner()
	}

	a.draw(s)

	if a.pendingStage != 0 && a.sim != nil {
		stage := a.pendingStage
		a.pendingStage = 0
		a.sim.InitStage(stage)
		a.fetchBriefing(stage)
	}
}

func (a *App) setScreen(next Screen) {
	if next == a.screen {
		return
	}
	a.logger.Debug("screen change", "from", a.screen, "to", next)
	a.screen = next
}

// startGame resets the score and mounts a new simulation at the first stage.
func (a *App) startGame() {
	a.in.Reset()
	a.score = 0
	a.level = config.FirstStage
	a.pendingStage = 0
	a.mounts++

	a.sim = game.NewSimulation(a, a.in, a.opts.Simulation)
	a.sim.InitStage(a.level)
	a.fetchBriefing(a.level)
	a.logger.Info("mission started", "game", a.mounts)
	a.setScreen(ScreenPlaying)
}

func (a *App) updateStart() {
	a.updateStars()
	switch {
	case a.in.Pressed(input.Confirm) || a.in.Pressed(input.Fire):
		a.startGame()
	case a.in.Pressed(input.Scores):
		a.setScreen(ScreenScores)
	}
}

func (a *App) updatePlaying() {
	if a.in.Pressed(input.Pause) || a.in.Pressed(input.Back) {
		a.sim.SetPaused(true)
		a.setScreen(ScreenPaused)
	}
}

func (a *App) updatePaused() {
	switch {
	case a.in.Pressed(input.Pause) || a.in.Pressed(input.Confirm):
		a.sim.SetPaused(false)
		a.setScreen(ScreenPlaying)
	case a.in.Pressed(input.Back):
		a.setScreen(ScreenStart)
	}
}

func (a *App) updateGameOver() {
	a.updateStars()
	switch {
	case a.in.Pressed(input.Confirm) || a.in.Pressed(input.Fire):
		a.startGame()
	case a.in.Pressed(input.Back):
		a.setScreen(ScreenStart)
	}
}

func (a *App) updateScores() {
	a.updateStars()
	if a.in.Pressed(input.Back) || a.in.Pressed(input.Confirm) {
		a.setScreen(ScreenStart)
	}
}

func (a *App) updateWinner() {
	a.updateStars()
	if a.in.Pressed(input.Confirm) || a.in.Pressed(input.Back) {
		a.setScreen(ScreenStart)
	}
}

func (a *App) updateStars() {
	for i := range a.stars {
		a.stars[i].Update(a.opts.Simulation.Field)
	}
}

// fetchBriefing clears the current briefing and looks up the one for stage.
func (a *App) fetchBriefing(stage int) {
	a.briefing = ""
	mount := a.mounts
	a.fetch(func(ctx context.Context) fetched {
		return fetched{kind: textBriefing, game: mount, stage: stage, text: a.opts.Briefer.MissionBriefing(ctx, stage)}
	})
}

func (a *App) fetchTip() {
	mount := a.mounts
	a.fetch(func(ctx context.Context) fetched {
		return fetched{kind: textTip, game: mount, text: a.opts.Briefer.PilotTip(ctx)}
	})
}

// fetch runs lookup in the background. Results are dropped if the buffer is
// full or the App was closed.
func (a *App) fetch(lookup func(ctx context.Context) fetched) {
	timeout, parent, results := a.opts.FetchTimeout, a.ctx, a.results
	a.opts.Go(func() {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		res := lookup(ctx)
		select {
		case results <- res:
		default:
		}
	})
}

// collect applies finished lookups that still match the current game.
func (a *App) collect() {
	for {
		select {
		case res := <-a.results:
			if res.game != a.mounts {
				continue
			}
			switch res.kind {
			case textBriefing:
				if res.stage == a.level {
					a.briefing = res.text
				}
			case textTip:
				a.tip = res.text
			}
		default:
			return
		}
	}
}
