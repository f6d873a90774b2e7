package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"possum/game"
	"possum/level"
)

var errMissingPath = errors.New("missing level file argument")

func levelCommand() *cli.Command {
	return &cli.Command{
		Name:  "level",
		Usage: "create and inspect level files",
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "write a blank level, optionally with a solid floor",
				ArgsUsage: "OUT.dat",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Value: game.MaxGridWidth, Usage: "width in cells"},
					&cli.IntFlag{Name: "height", Value: game.MaxGridHeight, Usage: "height in cells"},
					&cli.IntFlag{Name: "floor", Usage: "solid rows at the bottom"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return errMissingPath
					}
					grid, err := newLevel(int(cmd.Int("width")), int(cmd.Int("height")), int(cmd.Int("floor")))
					if err != nil {
						return err
					}
					if err := level.Save(path, grid); err != nil {
						return err
					}
					fmt.Fprintf(output(cmd), "wrote %s (%dx%d)\n", path, grid.Width(), grid.Height())
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "convert an ASCII drawing ('#' solid, 'b' backdrop, 'f' foreground) to a level file",
				ArgsUsage: "IN.txt OUT.dat",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return errors.New("import needs an input and an output path")
					}
					data, err := os.ReadFile(cmd.Args().Get(0))
					if err != nil {
						return fmt.Errorf("read drawing: %w", err)
					}
					grid, err := level.ParseString(string(data))
					if err != nil {
						return err
					}
					out := cmd.Args().Get(1)
					if err := level.Save(out, grid); err != nil {
						return err
					}
					fmt.Fprintf(output(cmd), "wrote %s (%dx%d)\n", out, grid.Width(), grid.Height())
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "print a level as ASCII, top row first",
				ArgsUsage: "FILE.dat",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return errMissingPath
					}
					grid, err := level.Load(path)
					if err != nil {
						return err
					}
					w := output(cmd)
					fmt.Fprintf(w, "%s: %dx%d cells\n", path, grid.Width(), grid.Height())
					return level.Dump(w, grid)
				},
			},
		},
	}
}

// newLevel creates a blank level with floor solid rows along the bottom
func newLevel(width, height, floor int) (*game.TileGrid, error) {
	grid, err := level.NewEmpty(width, height)
	if err != nil {
		return nil, err
	}
	if floor < 0 || floor > height {
		return nil, fmt.Errorf("floor %d outside 0..%d", floor, height)
	}
	grid.Fill(0, 0, width, floor, game.LayerCollision, level.SolidTile)
	return grid, nil
}
