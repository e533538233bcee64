package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/galaxy/internal/app"
	"github.com/tomz197/galaxy/internal/config"
	"github.com/tomz197/galaxy/internal/content"
	"github.com/tomz197/galaxy/internal/game"
	"github.com/tomz197/galaxy/internal/input"
	"github.com/tomz197/galaxy/internal/loop"
)

func main() {
	// stdout is the game screen, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("GALAXY_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	lib, err := content.Load()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	seed := config.GetEnvInt64("GALAXY_SEED", time.Now().UnixNano())
	logger.Info("starting terminal game", "seed", seed)

	rnd := rand.New(rand.NewSource(seed))
	in := &input.State{}
	a := app.New(in, app.Options{
		Library: lib,
		Briefer: content.BrieferFromEnv(lib, rand.New(rand.NewSource(seed+3)), logger),
		Rand:    rnd,
		Logger:  logger,
		Simulation: game.Options{
			Rand:       rand.New(rand.NewSource(seed + 1)),
			RenderRand: rand.New(rand.NewSource(seed + 2)),
		},
	})
	defer a.Close()

	session := loop.NewSession(a, in, bufio.NewReader(os.Stdin), os.Stdout, loop.SessionOptions{
		Logger: logger,
	})
	return session.Run(ctx)
}
