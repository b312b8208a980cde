// cmd/invaders-sim/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/logging"
	"github.com/opd-ai/go-invaders/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("invaders-sim", flag.ContinueOnError)
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

	configPath := flags.String("config", "invaders.json", "Path to configuration file")
	createDefault := flags.Bool("default", false, "Create default configuration file")
	ticks := flags.Int("ticks", 3600, "Number of ticks to simulate")
	seed := flags.Uint64("seed", 0, "Random seed (overrides config, 0 keeps it)")
	framesPath := flags.String("frames", "", "Write a msgpack frame stream to this file")
	every := flags.Int("every", 1, "Record every Nth tick in the frame stream")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			return 1
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return 0
	}

	gameConfig, err := loadSimConfig(ctx, *configPath, *seed, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		return 1
	}

	opts := simOptions{Ticks: *ticks, Every: *every}
	if *framesPath != "" {
		f, err := os.Create(*framesPath)
		if err != nil {
			logger.Error(ctx, "Failed to create frame stream", err, "frames_path", *framesPath)
			return 1
		}
		defer f.Close()
		opts.Frames = render.NewFrameWriter(f)
	}

	summary, err := simulate(ctx, gameConfig, logger, opts)
	if err != nil {
		logger.Error(ctx, "Simulation failed", err)
		return 1
	}

	logger.Info(ctx, "Simulation finished",
		"ticks", summary.Ticks,
		"status", summary.Status,
		"score", summary.Score,
		"round", summary.Round,
		"lives", summary.Lives,
		"kills", summary.Kills,
		"shots", summary.Shots,
		"frames", summary.Frames,
	)
	return 0
}

// loadSimConfig reads path (defaults when missing), applies INVADERS_*
// overrides, then the -seed flag when it is non-zero.
func loadSimConfig(ctx context.Context, path string, seed uint64, logger *logging.Logger) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, logging.WrapError(err, "failed to apply environment configuration")
	}
	if seed != 0 {
		gameConfig.GameRules.Seed = seed
	}
	return gameConfig, nil
}
