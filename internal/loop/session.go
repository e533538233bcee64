package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/input"
)

// App is what a Session runs: something that draws one frame per tick from the
// shared input state and eventually asks to quit.
type App interface {
	Frame(s draw.Surface)
	Done() bool
}

// SessionOptions configures a terminal session.
type SessionOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger

	// Shutdown, when closed, shows a notice and ends the session shortly after.
	Shutdown <-chan struct{}

	// DisconnectIdle warns and then ends sessions without input for too long.
	DisconnectIdle bool
}

// Session renders an App to a terminal at the target frame rate, feeding it
// keyboard input decoded from the reader.
type Session struct {
	app    App
	in     *input.State
	stream *input.Stream
	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	sched  *FrameScheduler
	driver *Driver
	opts   SessionOptions
	logger *log.Logger

	lastInput    time.Time
	inactive     bool
	shutdownAt   time.Time
	needsBorder  bool
	prevInactive bool
	err          error
}

// NewSession prepares a session. Nothing is written until Run.
func NewSession(app App, in *input.State, r *bufio.Reader, w io.Writer, opts SessionOptions) *Session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	termWidth, termHeight, err := opts.TermSizeFunc()
	if err != nil {
		opts.Logger.Debug("terminal size unavailable", "err", err)
	}
	cols, rows, offsetCol, offsetRow := layout(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(cols, rows, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	s := &Session{
		app:         app,
		in:          in,
		stream:      input.StartStream(r),
		canvas:      canvas,
		cw:          draw.NewChunkWriter(w),
		sched:       NewFrameScheduler(config.TargetFrameTime),
		opts:        opts,
		logger:      opts.Logger,
		lastInput:   time.Now(),
		needsBorder: true,
	}
	s.driver = NewDriver(s.sched, s.step)
	return s
}

// layout clamps the terminal to the max render resolution, fits the field's
// aspect ratio inside it, and centres the result.
func layout(termWidth, termHeight int) (cols, rows, offsetCol, offsetRow int) {
	maxWidth := min(termWidth, config.MaxTermWidth)
	maxHeight := min(termHeight, config.MaxTermHeight)
	cols, rows = draw.FitField(maxWidth, maxHeight, config.FieldWidth, config.FieldHeight)
	offsetCol = max((termWidth-cols)/2, 0)
	offsetRow = max((termHeight-rows)/2, 0)
	return cols, rows, offsetCol, offsetRow
}

// Run blocks until the app quits, the input ends, the idle or shutdown timeout
// fires, or ctx is cancelled. A cancelled ctx (e.g. a dropped SSH connection) is
// not an error.
func (s *Session) Run(ctx context.Context) error {
	draw.EnterAltScreen(s.cw)
	draw.HideCursor(s.cw)
	draw.ClearScreen(s.cw)
	defer func() {
		draw.ClearScreen(s.cw)
		draw.ShowCursor(s.cw)
		draw.ExitAltScreen(s.cw)
		s.cw.Flush()
	}()

	s.logger.Debug("session started", "cols", s.canvas.TerminalWidth(), "rows", s.canvas.TerminalHeight())

	s.driver.Start()
	err := s.sched.Run(ctx)
	s.driver.Stop()

	if s.err != nil {
		return s.err
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("frame loop: %w", err)
	}
	s.logger.Debug("session ended", "ticks", s.driver.Ticks())
	return nil
}

// step is one frame: input, resize, app frame, overlays, output.
func (s *Session) step() {
	now := time.Now()

	if s.stream.Apply(s.in, now) > 0 {
		s.lastInput = now
		s.inactive = false
	}
	if s.stream.Closed() {
		s.driver.Stop()
		return
	}
	if s.checkIdle(now) || s.checkShutdown(now) {
		s.driver.Stop()
		return
	}

	s.updateScreen()

	// Full clear on overlay transitions so no stale text survives.
	if s.inactive != s.prevInactive {
		s.prevInactive = s.inactive
		draw.ClearScreen(s.cw)
		s.canvas.ForceRedraw()
		s.needsBorder = true
	}

	s.app.Frame(s.canvas)
	s.in.EndFrame()

	switch {
	case !s.shutdownAt.IsZero():
		s.drawShutdownNotice(now)
	case s.inactive:
		s.drawInactivityWarning(now)
	}

	if err := s.render(); err != nil {
		s.err = err
		s.driver.Stop()
		return
	}

	if s.app.Done() {
		s.driver.Stop()
	}
}

// checkIdle updates the inactivity warning. Returns true once the session
// should be disconnected.
func (s *Session) checkIdle(now time.Time) bool {
	if !s.opts.DisconnectIdle {
		return false
	}
	idle := now.Sub(s.lastInput).Seconds()
	if idle > config.InactivityDisconnectUser {
		s.logger.Info("disconnecting idle session", "idle", now.Sub(s.lastInput).Round(time.Second))
		return true
	}
	s.inactive = idle > config.InactivityWarnUser
	return false
}

// checkShutdown starts the shutdown notice when the server is stopping and
// returns true once it has been shown long enough.
func (s *Session) checkShutdown(now time.Time) bool {
	if s.opts.Shutdown == nil {
		return false
	}
	if s.shutdownAt.IsZero() {
		select {
		case <-s.opts.Shutdown:
			s.shutdownAt = now
		default:
		}
		return false
	}
	return now.Sub(s.shutdownAt) >= config.ShutdownDisplay
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	cols, rows, offsetCol, offsetRow := layout(termWidth, termHeight)

	if cols != s.canvas.TerminalWidth() || rows != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.logger.Debug("terminal resized", "width", termWidth, "height", termHeight, "cols", cols, "rows", rows)
		draw.ClearScreen(s.cw)
		s.canvas.Resize(cols, rows)
		s.canvas.SetOffset(offsetCol, offsetRow)
		s.canvas.ForceRedraw()
		s.needsBorder = true
	}
}

func (s *Session) render() error {
	if err := s.canvas.Render(s.cw); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	if s.needsBorder {
		if err := s.canvas.RenderBorder(s.cw); err != nil {
			return fmt.Errorf("render border: %w", err)
		}
		s.needsBorder = false
	}
	if err := s.cw.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

var (
	noticeShade = draw.Black.Alpha(0.75)
	noticeTitle = draw.TextStyle{Color: draw.Hex("#facc15"), Align: draw.AlignCenter, Bold: true}
	noticeBody  = draw.TextStyle{Color: draw.White, Align: draw.AlignCenter}
)

func (s *Session) drawNotice(title string, lines ...string) {
	w, h := s.canvas.Size()
	s.canvas.FillRect(0, h/2-120, w, 240, noticeShade)
	s.canvas.Text(w/2, h/2-80, title, noticeTitle)
	for i, line := range lines {
		s.canvas.Text(w/2, h/2-20+float64(i)*40, line, noticeBody)
	}
}

func (s *Session) drawInactivityWarning(now time.Time) {
	left := int(config.InactivityDisconnectUser - now.Sub(s.lastInput).Seconds())
	s.drawNotice("INACTIVITY WARNING",
		"Disconnecting in "+strconv.Itoa(left)+"s",
		"Press any key to continue",
	)
}

func (s *Session) drawShutdownNotice(now time.Time) {
	left := int((config.ShutdownDisplay - now.Sub(s.shutdownAt)).Seconds()) + 1
	s.drawNotice("SERVER SHUTTING DOWN",
		"Please reconnect in a moment.",
		"Disconnecting in "+strconv.Itoa(left)+"s",
	)
}
