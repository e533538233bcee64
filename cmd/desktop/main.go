package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/galaxy/internal/app"
	"github.com/tomz197/galaxy/internal/config"
	"github.com/tomz197/galaxy/internal/content"
	"github.com/tomz197/galaxy/internal/ebitenview"
	"github.com/tomz197/galaxy/internal/game"
	gameconfig "github.com/tomz197/galaxy/internal/game/config"
	"github.com/tomz197/galaxy/internal/input"
)

func main() {
	logger := config.NewLogger(os.Stderr, "desktop")

	lib, err := content.Load()
	if err != nil {
		logger.Fatal("failed to load content", "err", err)
	}

	seed := config.GetEnvInt64("GALAXY_SEED", time.Now().UnixNano())
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

	ebiten.SetWindowTitle("Galaxy")
	ebiten.SetWindowSize(gameconfig.FieldWidth, gameconfig.FieldHeight+ebitenview.ControlBarHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gameconfig.TargetFPS)

	logger.Info("starting desktop game", "seed", seed)
	if err := ebiten.RunGame(ebitenview.New(a, in, logger)); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
