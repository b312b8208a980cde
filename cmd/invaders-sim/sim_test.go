package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/engine"
	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/logging"
	"github.com/opd-ai/go-invaders/pkg/physics"
	"github.com/opd-ai/go-invaders/pkg/render"
)

type stillRand float64

func (r stillRand) Float64() float64 { return float64(r) }

func invaderAt(id entity.ID, x, y float64) *entity.Ship {
	return entity.NewShip(id, entity.VariantGrunt, entity.SideInvader, physics.Vector2D{X: x, Y: y}, physics.Vector2D{})
}

func TestLowestInvader(t *testing.T) {
	tests := []struct {
		name     string
		invaders []*entity.Ship
		x        float64
		want     entity.ID
	}{
		{"none", nil, 0, 0},
		{"lowest wins", []*entity.Ship{invaderAt(1, 100, 80), invaderAt(2, 400, 120)}, 100, 2},
		{"tie nearest x", []*entity.Ship{invaderAt(1, 100, 120), invaderAt(2, 300, 120), invaderAt(3, 500, 120)}, 320, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lowestInvader(tt.invaders, tt.x)
			if tt.want == 0 {
				if got != nil {
					t.Errorf("lowestInvader() = %v, want nil", got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Errorf("lowestInvader() = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestSteer_MovesAndFires(t *testing.T) {
	game, err := engine.NewGame(config.DefaultConfig(), engine.WithRand(stillRand(0.5)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	x := game.Defender.Position.X

	steer(game)

	moved := game.Defender.Position.X - x
	if moved == 0 || moved > game.Config.GameRules.DefenderSpeed || moved < -game.Config.GameRules.DefenderSpeed {
		t.Errorf("defender moved %v, want a step of at most %v", moved, game.Config.GameRules.DefenderSpeed)
	}
}

func TestSimulate_RecordsFrames(t *testing.T) {
	var buf bytes.Buffer
	opts := simOptions{
		Ticks:  200,
		Every:  50,
		Frames: render.NewFrameWriter(&buf),
		Extra:  []engine.Option{engine.WithRand(stillRand(0.5))},
	}

	summary, err := simulate(context.Background(), config.DefaultConfig(), logging.NewNopLogger(), opts)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if summary.Ticks != 200 || summary.Status != "running" {
		t.Errorf("summary = %+v, want 200 running ticks", summary)
	}
	if summary.Frames != 4 {
		t.Errorf("Frames = %d, want 4", summary.Frames)
	}
	if summary.Shots == 0 {
		t.Error("autopilot never fired")
	}

	reader := render.NewFrameReader(&buf)
	var ticks []uint64
	for {
		state, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		ticks = append(ticks, state.Tick)
	}
	want := []uint64{50, 100, 150, 200}
	if len(ticks) != len(want) {
		t.Fatalf("frame ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("frame ticks = %v, want %v", ticks, want)
		}
	}
}

func TestSimulate_StopsOnLoss(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Shields.Count = 0
	cfg.GameRules.StartingLives = 1

	var buf bytes.Buffer
	opts := simOptions{
		Ticks:  3000,
		Every:  1000,
		Frames: render.NewFrameWriter(&buf),
		Extra:  []engine.Option{engine.WithRand(stillRand(0))},
	}

	summary, err := simulate(context.Background(), cfg, logging.NewNopLogger(), opts)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if summary.Status != "lost" {
		t.Fatalf("Status = %q, want lost", summary.Status)
	}
	if summary.Ticks >= 3000 {
		t.Errorf("simulation ran all %d ticks after loss", summary.Ticks)
	}
	if summary.Lives != 0 {
		t.Errorf("Lives = %d, want 0", summary.Lives)
	}

	// the losing tick is always recorded
	reader := render.NewFrameReader(&buf)
	var last *engine.GameState
	for {
		state, err := reader.Next()
		if err != nil {
			break
		}
		last = state
	}
	if last == nil || last.Status != "lost" {
		t.Errorf("last frame = %+v, want lost", last)
	}
}

func TestSimulate_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Arena.Height = -1

	if _, err := simulate(context.Background(), cfg, logging.NewNopLogger(), simOptions{Ticks: 1}); err == nil {
		t.Fatal("simulate accepted an invalid config")
	}
}

func TestLoadSimConfig_Seed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invaders.json")
	fileConfig := config.DefaultConfig()
	fileConfig.GameRules.Seed = 7
	if err := config.SaveConfig(fileConfig, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	tests := []struct {
		name string
		path string
		env  string
		flag uint64
		want uint64
	}{
		{"file seed kept", path, "", 0, 7},
		{"env overrides file", path, "11", 0, 11},
		{"flag overrides env", path, "11", 5, 5},
		{"env without file", filepath.Join(t.TempDir(), "missing.json"), "987654", 0, 987654},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvSeed, tt.env)
			cfg, err := loadSimConfig(context.Background(), tt.path, tt.flag, logging.NewNopLogger())
			if err != nil {
				t.Fatalf("loadSimConfig failed: %v", err)
			}
			if cfg.GameRules.Seed != tt.want {
				t.Errorf("Seed = %d, want %d", cfg.GameRules.Seed, tt.want)
			}
		})
	}
}

func seededFrame(t *testing.T, seed uint64) *engine.GameState {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.GameRules.Seed = seed

	var buf bytes.Buffer
	opts := simOptions{Ticks: 1, Frames: render.NewFrameWriter(&buf)}
	if _, err := simulate(context.Background(), cfg, logging.NewNopLogger(), opts); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	state, err := render.NewFrameReader(&buf).Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	return state
}

func TestSimulate_SeedDrivesWorld(t *testing.T) {
	a := seededFrame(t, 11)
	again := seededFrame(t, 11)
	b := seededFrame(t, 987654)

	if !reflect.DeepEqual(a.Stars, again.Stars) {
		t.Error("same seed produced different starfields")
	}
	if reflect.DeepEqual(a.Stars, b.Stars) {
		t.Error("seeds 11 and 987654 produced the same starfield")
	}
}

func TestRun_WritesFramesAndExitCodes(t *testing.T) {
	t.Setenv(config.EnvSeed, "")
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	frames := filepath.Join(dir, "frames.msgpack")

	if got := run([]string{"-config", missing, "-ticks", "20", "-every", "10", "-frames", frames}); got != 0 {
		t.Fatalf("run() = %d, want 0", got)
	}
	f, err := os.Open(frames)
	if err != nil {
		t.Fatalf("frame stream missing: %v", err)
	}
	defer f.Close()
	reader := render.NewFrameReader(f)
	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			break
		}
		count++
	}
	if count != 2 {
		t.Errorf("frame stream holds %d frames, want 2", count)
	}

	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-renderer", "engo"}, 2},
		{"unreadable config", []string{"-config", badJSON}, 1},
		{"unwritable frames", []string{"-config", missing, "-ticks", "1", "-frames", filepath.Join(dir, "no", "frames")}, 1},
		{"write default", []string{"-default", "-config", filepath.Join(dir, "default.json")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
