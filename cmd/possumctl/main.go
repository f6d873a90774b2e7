// Command possumctl runs the platform engine without a window: scripted
// simulations, level file tools and a terminal viewer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"possum/game"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "possumctl",
		Usage: "headless tools for the possum platform engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "TOML config file (defaults are used when unset)",
				Sources: cli.EnvVars("POSSUM_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			simulateCommand(),
			levelCommand(),
			playCommand(),
		},
	}
}

// loadConfig reads --config when given and applies --log-level
func loadConfig(cmd *cli.Command) (game.Config, error) {
	cfg := game.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = game.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
	}
	return cfg, nil
}

// newLogger builds the command's logger from the config
func newLogger(cfg game.Config) (*zap.Logger, error) {
	log, err := game.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// output returns where a command prints its results
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
