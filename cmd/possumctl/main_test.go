package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"possum/game"
	"possum/level"
)

func TestNewLevel(t *testing.T) {
	grid, err := newLevel(10, 8, 2)
	require.NoError(t, err)
	assert.True(t, grid.Solid(0, 0))
	assert.True(t, grid.Solid(9, 1))
	assert.False(t, grid.Solid(9, 2))

	_, err = newLevel(10, 8, 9)
	assert.Error(t, err)
	_, err = newLevel(100, 8, 0)
	assert.ErrorIs(t, err, level.ErrTooLarge)
}

func TestRunSimulationWalksRight(t *testing.T) {
	grid, err := newLevel(64, 64, 1)
	require.NoError(t, err)
	cfg := game.DefaultConfig()
	cfg.Player.SpawnY = 12

	script := &game.Script{Dt: 20, Steps: []game.ScriptStep{
		{Ticks: 25, Intent: game.Intent{Right: true}},
	}}
	sum, err := runSimulation(context.Background(), cfg, grid, script, 0, 0, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, int64(25), sum.Ticks)
	assert.Equal(t, int64(500), sum.ElapsedMs)
	assert.Greater(t, sum.X, cfg.Player.SpawnX)
	assert.Equal(t, 12, sum.Y)
	assert.False(t, sum.Airborne)
	assert.Zero(t, sum.Takeoffs)
}

func TestRunSimulationFallsToFloor(t *testing.T) {
	grid, err := newLevel(64, 64, 0)
	require.NoError(t, err)
	cfg := game.DefaultConfig()

	sum, err := runSimulation(context.Background(), cfg, grid, nil, 100, 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(100*20), sum.ElapsedMs, "dt defaults to the clock minimum")
	assert.Equal(t, 0, sum.Y)
	assert.Equal(t, 1, sum.Landings)
}

func TestRunSimulationCapsTickLength(t *testing.T) {
	grid, err := newLevel(64, 64, 0)
	require.NoError(t, err)
	cfg := game.DefaultConfig()

	sum, err := runSimulation(context.Background(), cfg, grid, nil, 3, 5000, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(3*100), sum.ElapsedMs, "ticks longer than the clock maximum are capped")

	script := &game.Script{Dt: 5000, Steps: []game.ScriptStep{{Ticks: 2}}}
	sum, err = runSimulation(context.Background(), cfg, grid, script, 0, 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(2*100), sum.ElapsedMs)
}

func TestUnknownLogLevelFails(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run(context.Background(), []string{"possumctl", "--log-level", "verbos", "simulate", "--ticks", "1"})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestRunSimulationNeedsTicks(t *testing.T) {
	grid, err := newLevel(8, 8, 0)
	require.NoError(t, err)
	_, err = runSimulation(context.Background(), game.DefaultConfig(), grid, &game.Script{}, 0, 0, zap.NewNop())
	assert.ErrorIs(t, err, errNoTicks)
}

func TestRunSimulationHonoursCancel(t *testing.T) {
	grid, err := newLevel(8, 8, 0)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runSimulation(ctx, game.DefaultConfig(), grid, nil, 10, 20, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

// runApp runs the command line with a fresh app and returns what it printed
func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run(context.Background(), append([]string{"possumctl"}, args...)))
	return buf.String()
}

func TestLevelCommands(t *testing.T) {
	out := filepath.Join(t.TempDir(), "floor.dat")

	printed := runApp(t, "level", "new", "--width", "6", "--height", "3", "--floor", "1", out)
	assert.Contains(t, printed, "6x3")

	printed = runApp(t, "level", "show", out)
	lines := strings.Split(strings.TrimSpace(printed), "\n")
	assert.Equal(t, []string{out + ": 6x3 cells", "......", "......", "######"}, lines)
}

func TestLevelImport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cave.txt")
	out := filepath.Join(dir, "cave.dat")
	require.NoError(t, os.WriteFile(in, []byte("#..#\n####\n"), 0o644))

	runApp(t, "level", "import", in, out)

	grid, err := level.Load(out)
	require.NoError(t, err)
	assert.True(t, grid.Solid(3, 1))
	assert.False(t, grid.Solid(1, 1))
}

func TestViewFrame(t *testing.T) {
	grid, err := newLevel(64, 64, 1)
	require.NoError(t, err)
	grid.Set(2, 3, game.LayerBackNear, 2)
	cfg := game.DefaultConfig()
	p, err := game.NewCharacter(18, 12, cfg.Player.Width, cfg.Player.Height, cfg.Player.Insets)
	require.NoError(t, err)

	v := newView(20, 10, 16)
	frame := v.frame(grid, p)
	require.Len(t, frame, 10)

	assert.Equal(t, strings.Repeat("#", 20), string(frame[9]), "floor on the bottom row")
	assert.Equal(t, '+', frame[6][2])
	// Collision box spans pixels x 26..63, y 16..74: columns 1..3, rows 1..4
	for r := 5; r <= 8; r++ {
		assert.Equal(t, " >>>", string(frame[r][:4]), "row %d", r)
	}
	assert.Equal(t, ' ', frame[4][1])
}
