package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/galaxy/internal/app"
	"github.com/tomz197/galaxy/internal/config"
	"github.com/tomz197/galaxy/internal/content"
	"github.com/tomz197/galaxy/internal/draw"
	"github.com/tomz197/galaxy/internal/game"
	"github.com/tomz197/galaxy/internal/input"
	"github.com/tomz197/galaxy/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownGrace      = 15 * time.Second
)

// games hosts one independent game per SSH session.
type games struct {
	lib      *content.Library
	logger   *log.Logger
	shutdown chan struct{}
	sessions sync.WaitGroup
	active   atomic.Int64
	seq      atomic.Int64
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	lib, err := content.Load()
	if err != nil {
		logger.Fatal("failed to load content", "err", err)
	}

	g := &games{
		lib:      lib,
		logger:   logger,
		shutdown: make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", g.active.Load())
	g.stop(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// stop shows the shutdown notice to every session and waits for them to end.
func (g *games) stop(grace time.Duration) {
	close(g.shutdown)

	ended := make(chan struct{})
	go func() {
		g.sessions.Wait()
		close(ended)
	}()

	select {
	case <-ended:
		g.logger.Info("all sessions ended")
	case <-time.After(grace):
		g.logger.Warn("sessions still running after grace period", "sessions", g.active.Load())
	}
}

// middleware runs a game for the session.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.sessions.Add(1)
		defer g.sessions.Done()
		id := g.seq.Add(1)
		g.active.Add(1)
		defer g.active.Add(-1)

		logger := g.logger.With("session", id, "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		seed := time.Now().UnixNano() + id
		in := &input.State{}
		a := app.New(in, app.Options{
			Library: g.lib,
			Briefer: content.BrieferFromEnv(g.lib, rand.New(rand.NewSource(seed+3)), logger),
			Rand:    rand.New(rand.NewSource(seed)),
			Logger:  logger,
			Simulation: game.Options{
				Rand:       rand.New(rand.NewSource(seed + 1)),
				RenderRand: rand.New(rand.NewSource(seed + 2)),
			},
		})
		defer a.Close()

		session := loop.NewSession(a, in, bufio.NewReader(sess), sess, loop.SessionOptions{
			TermSizeFunc:   sizeTracker.getSize,
			Logger:         logger,
			Shutdown:       g.shutdown,
			DisconnectIdle: true,
		})
		if err := session.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "highScore", a.HighScore(), "stage", a.Level())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
