package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"possum/game"
	"possum/level"
)

var errNoTicks = errors.New("nothing to simulate: give --ticks or a script with steps")

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "run the engine headless against a YAML input script",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Usage: "level file (defaults to the configured one)"},
			&cli.StringFlag{Name: "script", Usage: "YAML input script"},
			&cli.IntFlag{Name: "ticks", Usage: "ticks to run (defaults to the script length)"},
			&cli.IntFlag{Name: "dt", Usage: "tick length in ms (defaults to the script's, then the clock's minimum)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			path := cmd.String("level")
			if path == "" {
				path = cfg.World.LevelPath
			}
			grid, err := level.Load(path)
			if err != nil {
				return err
			}

			var script *game.Script
			if p := cmd.String("script"); p != "" {
				script, err = game.LoadScript(p)
				if err != nil {
					return err
				}
			}

			sum, err := runSimulation(ctx, cfg, grid, script, int(cmd.Int("ticks")), int64(cmd.Int("dt")), log)
			if err != nil {
				return err
			}
			fmt.Fprintln(output(cmd), sum)
			return nil
		},
	}
}

// summary is the outcome of a headless run
type summary struct {
	Ticks       int64
	ElapsedMs   int64
	X, Y        int
	VelX, VelY  int64
	Airborne    bool
	Landings    int
	Takeoffs    int
	CeilingHits int
	Exhausted   int
}

func (s summary) String() string {
	return fmt.Sprintf("ticks=%d elapsed=%dms pos=%d,%d vel=%d,%d airborne=%t landings=%d takeoffs=%d ceiling_hits=%d jump_exhausted=%d",
		s.Ticks, s.ElapsedMs, s.X, s.Y, s.VelX, s.VelY, s.Airborne, s.Landings, s.Takeoffs, s.CeilingHits, s.Exhausted)
}

// runSimulation steps a fresh player through the level. ticks <= 0 runs the
// whole script; dt <= 0 takes the script's tick length, then the clock minimum.
// dt never exceeds the clock maximum, the same cap a live frame gets.
func runSimulation(ctx context.Context, cfg game.Config, grid *game.TileGrid, script *game.Script, ticks int, dt int64, log *zap.Logger) (summary, error) {
	var sum summary

	player, err := cfg.NewPlayer()
	if err != nil {
		return sum, err
	}

	var input game.InputProvider
	if script != nil {
		input = game.NewScriptedInput(script)
		if ticks <= 0 {
			ticks = script.TotalTicks()
		}
		if dt <= 0 {
			dt = script.Dt
		}
	}
	if ticks <= 0 {
		return sum, errNoTicks
	}
	if dt <= 0 {
		dt = cfg.Clock.MinTick.Milliseconds()
	}
	if limit := cfg.Clock.MaxTick.Milliseconds(); limit > 0 && dt > limit {
		log.Warn("tick length capped",
			zap.Int64("dt_ms", dt),
			zap.Int64("max_ms", limit))
		dt = limit
	}

	sim := game.NewSimulation(grid, player, cfg.Physics, cfg.World.TileSize, input, log)
	log.Info("simulation start",
		zap.Int("ticks", ticks),
		zap.Int64("dt_ms", dt),
		zap.Int("spawn_x", player.X),
		zap.Int("spawn_y", player.Y))

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res := sim.Step(dt)
		if res.Landed {
			sum.Landings++
		}
		if res.TookOff {
			sum.Takeoffs++
		}
		if res.HitCeiling {
			sum.CeilingHits++
		}
		if res.JumpExhausted {
			sum.Exhausted++
		}
		log.Debug("tick",
			zap.Int64("tick", sim.Ticks),
			zap.Int("x", player.X),
			zap.Int("y", player.Y),
			zap.Int64("vel_x", player.VelX),
			zap.Int64("vel_y", player.VelY),
			zap.Int("state", player.SpriteState),
			zap.Bool("airborne", res.Airborne))
	}

	sum.Ticks = sim.Ticks
	sum.ElapsedMs = sim.ElapsedMs
	sum.X, sum.Y = player.X, player.Y
	sum.VelX, sum.VelY = player.VelX, player.VelY
	sum.Airborne = player.Airborne()

	log.Info("simulation done",
		zap.Int64("ticks", sum.Ticks),
		zap.Int("x", sum.X),
		zap.Int("y", sum.Y),
		zap.Int("landings", sum.Landings))
	return sum, nil
}
