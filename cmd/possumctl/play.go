package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"possum/game"
	"possum/level"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play a level in the terminal, one character per tile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Usage: "level file (defaults to the configured one)"},
			&cli.IntFlag{Name: "hold", Value: 250, Usage: "ms a key press stays held; terminals report no key release"},
			&cli.BoolFlag{Name: "sound", Value: true, Usage: "play tones on jump, landing and ceiling bumps"},
			&cli.StringFlag{Name: "log-file", Usage: "write logs here; the screen is in use so logs are off otherwise"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := zap.NewNop()
			if path := cmd.String("log-file"); path != "" {
				cfg.Logging.Output = path
				if log, err = newLogger(cfg); err != nil {
					return err
				}
				defer log.Sync()
			}

			path := cmd.String("level")
			if path == "" {
				path = cfg.World.LevelPath
			}
			grid, err := level.Load(path)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			sound := newCues(cmd.Bool("sound"), log)
			defer sound.close()

			p, err := newPlayer(cfg, grid, int64(cmd.Int("hold")), log)
			if err != nil {
				return err
			}
			return p.run(ctx, screen, sound)
		},
	}
}

// player drives a simulation from terminal key events
type player struct {
	cfg   game.Config
	sim   *game.Simulation
	input *game.HeldInput
	clock *game.FrameClock
	log   *zap.Logger
}

func newPlayer(cfg game.Config, grid *game.TileGrid, holdMs int64, log *zap.Logger) (*player, error) {
	body, err := cfg.NewPlayer()
	if err != nil {
		return nil, err
	}
	input := game.NewHeldInput(holdMs)
	return &player{
		cfg:   cfg,
		sim:   game.NewSimulation(grid, body, cfg.Physics, cfg.World.TileSize, input, log),
		input: input,
		clock: game.NewFrameClock(game.RealTimeProvider{}, cfg.Clock.MinTick, cfg.Clock.MaxTick),
		log:   log,
	}, nil
}

func (p *player) run(ctx context.Context, screen tcell.Screen, sound *cues) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(p.cfg.Clock.MinTick)
	defer ticker.Stop()

	cols, rows := screen.Size()
	v := newView(cols, rows-1, p.cfg.World.TileSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !p.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				cols, rows = screen.Size()
				v = newView(cols, rows-1, p.cfg.World.TileSize)
			}

		case <-ticker.C:
			dt, stalled, ok := p.clock.Poll()
			if !ok {
				continue
			}
			if stalled {
				p.log.Warn("frame stall", zap.Int("stalls", p.clock.Stalls))
			}
			p.input.Advance(dt)
			res := p.sim.Step(dt)
			switch {
			case res.TookOff:
				sound.jump()
			case res.Landed:
				sound.land()
			case res.HitCeiling:
				sound.ceiling()
			}
			p.draw(screen, v)
		}
	}
}

// handleKey maps a key to a control; it returns false to quit
func (p *player) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		p.input.Press(game.ControlLeft)
	case tcell.KeyRight:
		p.input.Press(game.ControlRight)
	case tcell.KeyUp:
		p.input.Press(game.ControlUp)
	case tcell.KeyDown:
		p.input.Press(game.ControlDown)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ', 'z', 'x':
			p.input.Press(game.ControlJump)
		case 'r':
			p.sim.Respawn(p.cfg.Player.SpawnX, p.cfg.Player.SpawnY)
			p.clock.Reset()
		}
	}
	return true
}

func (p *player) draw(screen tcell.Screen, v *view) {
	screen.Clear()
	body := p.sim.Player
	for r, line := range v.frame(p.sim.Grid, body) {
		for c, ch := range line {
			style := tcell.StyleDefault
			switch ch {
			case '#':
				style = style.Foreground(tcell.ColorGreen)
			case '+':
				style = style.Foreground(tcell.ColorGray)
			case ' ':
			default:
				style = style.Foreground(tcell.ColorYellow).Bold(true)
			}
			screen.SetContent(c, r, ch, nil, style)
		}
	}

	status := fmt.Sprintf(" pos %d,%d  vel %d,%d  air %dms  ticks %d  [arrows move, space jump, r respawn, q quit]",
		body.X, body.Y, body.VelX, body.VelY, body.AirborneTimer, p.sim.Ticks)
	_, rows := screen.Size()
	for i, ch := range status {
		screen.SetContent(i, rows-1, ch, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}
