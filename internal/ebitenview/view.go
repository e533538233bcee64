package ebitenview

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/input"
	"github.com/tomz197/galaxy/internal/loop"
	"github.com/tomz197/galaxy/internal/physics"
)

// ControlBarHeight is the strip below the field holding the touch buttons.
const ControlBarHeight = 120

// mousePointer is the pointer id used for the left mouse button.
const mousePointer = -1

var (
	barColor     = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x14, A: 0xff}
	buttonColor  = draw.Hex("#282e39")
	buttonActive = draw.Hex("#135bec")
	fireColor    = draw.Hex("#7f1d1d")
	fireActive   = draw.Hex("#ef4444")
	labelStyle   = draw.TextStyle{Color: draw.White, Align: draw.AlignCenter, Bold: true}
)

// keyBindings maps held keys to the continuous controls.
var keyBindings = map[input.Control][]ebiten.Key{
	input.Left:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	input.Right: {ebiten.KeyArrowRight, ebiten.KeyD},
	input.Fire:  {ebiten.KeySpace, ebiten.KeyF, ebiten.KeyZ},
}

// tapBindings maps key presses to the discrete controls.
var tapBindings = map[ebiten.Key]input.Control{
	ebiten.KeyP:         input.Pause,
	ebiten.KeyEnter:     input.Confirm,
	ebiten.KeyEscape:    input.Back,
	ebiten.KeyBackspace: input.Back,
	ebiten.KeyS:         input.Scores,
	ebiten.KeyQ:         input.Quit,
}

// Game adapts an app to ebiten.Game. The app advances one frame per Update.
type Game struct {
	app      loop.App
	in       *input.State
	field    *Surface
	pointers *input.Pointers
	sched    *loop.PollScheduler
	driver   *loop.Driver
	logger   *log.Logger
	touchIDs []ebiten.TouchID
	active   map[int]input.Point
}

// New creates a Game for app, reading controls into in.
func New(app loop.App, in *input.State, logger *log.Logger) *Game {
	g := &Game{
		app:      app,
		in:       in,
		field:    NewSurface(config.FieldWidth, config.FieldHeight),
		pointers: input.NewPointers(Buttons()),
		sched:    &loop.PollScheduler{},
		logger:   logger,
		active:   make(map[int]input.Point),
	}
	g.driver = loop.NewDriver(g.sched, g.step)
	g.driver.Start()
	return g
}

// Buttons returns the left, fire and right buttons laid out in the control bar.
func Buttons() []input.Button {
	third := float64(config.FieldWidth) / 3
	top := float64(config.FieldHeight)
	return []input.Button{
		{Control: input.Left, Area: physics.Rect{X: 0, Y: top, W: third, H: ControlBarHeight}},
		{Control: input.Fire, Area: physics.Rect{X: third, Y: top, W: third, H: ControlBarHeight}, Tap: true},
		{Control: input.Right, Area: physics.Rect{X: 2 * third, Y: top, W: third, H: ControlBarHeight}},
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.readKeyboard()
	g.readPointers()

	g.sched.Poll()

	if g.app.Done() {
		g.logger.Info("quit requested")
		g.driver.Stop()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) step() {
	g.app.Frame(g.field)
	g.in.EndFrame()
}

func (g *Game) readKeyboard() {
	for c, keys := range keyBindings {
		held := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				held = true
				break
			}
		}
		g.in.Set(c, held)
	}
	for k, c := range tapBindings {
		if inpututil.IsKeyJustPressed(k) {
			g.in.Tap(c)
		}
	}
}

// readPointers collects every touch and the left mouse button in screen units.
func (g *Game) readPointers() {
	clear(g.active)

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.active[int(id)] = input.Point{X: float64(x), Y: float64(y)}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.active[mousePointer] = input.Point{X: float64(x), Y: float64(y)}
	}

	g.pointers.Update(g.in, g.active)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(barColor)
	screen.DrawImage(g.field.Image(), nil)

	for _, b := range g.pointers.Buttons() {
		idle, active := buttonColor, buttonActive
		label := "<"
		switch b.Control {
		case input.Fire:
			idle, active, label = fireColor, fireActive, "FIRE"
		case input.Right:
			label = ">"
		}
		c := idle
		if g.in.Held(b.Control) || g.pointers.Over(b.Control) {
			c = active
		}

		r := b.Area
		vector.DrawFilledRect(screen, float32(r.X+8), float32(r.Y+12), float32(r.W-16), float32(r.H-24), c.NRGBA(), false)
		g.drawLabel(screen, label, r)
	}
}

func (g *Game) drawLabel(screen *ebiten.Image, label string, r physics.Rect) {
	cx, cy := r.Center()
	labels := &Surface{target: screen, scratch: g.field.scratch, width: r.W, height: r.H}
	labels.Text(cx, cy-glyphHeight, label, labelStyle)
}

// Layout implements ebiten.Game with a fixed logical screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.FieldWidth, config.FieldHeight + ControlBarHeight
}
