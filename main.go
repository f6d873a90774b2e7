package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"possum/game"
	"possum/level"
)

// Blank level used when the configured one does not exist yet
const (
	fallbackWidth  = 64
	fallbackHeight = 64
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config := game.DefaultConfig()
	if path := os.Getenv("POSSUM_CONFIG"); path != "" {
		var err error
		config, err = game.LoadConfig(path)
		if err != nil {
			return err
		}
	}

	log, err := game.NewLogger(config.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	grid, err := level.Load(config.World.LevelPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("level not found, starting on a blank level",
			zap.String("path", config.World.LevelPath),
			zap.Int("width", fallbackWidth),
			zap.Int("height", fallbackHeight))
		grid, err = level.NewEmpty(fallbackWidth, fallbackHeight)
	}
	if err != nil {
		return err
	}

	g, err := game.NewGame(config, grid, log)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.Display.ScreenWidth, config.Display.ScreenHeight)
	ebiten.SetWindowTitle(config.Display.Title)
	ebiten.SetWindowResizable(true)

	log.Info("starting game loop", zap.String("level", config.World.LevelPath))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
