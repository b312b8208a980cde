// cmd/invaders/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-invaders/pkg/audio"
	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/engine"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("invaders", flag.ContinueOnError)
	configPath := flags.String("config", "invaders.json", "Path to configuration file")
	renderer := flags.String("renderer", "", "Renderer type: 'terminal' or 'engo' (overrides config)")
	seed := flags.Uint64("seed", 0, "Random seed (overrides config, 0 keeps it)")
	sound := flags.Bool("sound", false, "Play sound effects")
	logPath := flags.String("log", "", "Write JSON logs to this file (terminal renderer logs nowhere by default)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithSessionID(ctx, logging.GenerateSessionID())

	bootLogger := logging.NewLoggerTo(os.Stderr)

	gameConfig, err := loadConfig(ctx, *configPath, bootLogger)
	if err != nil {
		bootLogger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		return 1
	}
	if *renderer != "" {
		gameConfig.Display.Renderer = *renderer
	}
	if *seed != 0 {
		gameConfig.GameRules.Seed = *seed
	}
	if *sound {
		gameConfig.Display.Sound = true
	}
	if err := gameConfig.Validate(); err != nil {
		bootLogger.Error(ctx, "Invalid configuration", err)
		return 1
	}

	logger, closeLog, err := openLogger(*logPath, gameConfig.Display.Renderer)
	if err != nil {
		bootLogger.Error(ctx, "Failed to open log file", err, "log_path", *logPath)
		return 1
	}
	defer closeLog()

	bus := event.NewEventBus()
	if gameConfig.Display.Sound {
		sounds := audio.NewSoundManager(ctx, logger)
		if err := sounds.Initialize(); err != nil {
			logger.Warn(ctx, "Audio unavailable, continuing without sound", "error", err.Error())
		} else {
			sounds.Attach(bus)
			defer sounds.Cleanup()
		}
	}

	var game *engine.Game
	switch gameConfig.Display.Renderer {
	case "engo":
		game = runEngo(ctx, gameConfig, logger, bus)
	default:
		game, err = runTerminal(ctx, gameConfig, logger, bus)
		if err != nil {
			logger.Error(ctx, "Terminal renderer failed", err)
			bootLogger.Error(ctx, "Terminal renderer failed", err)
			return 1
		}
	}

	if game != nil {
		logger.Info(ctx, "Game finished",
			"status", game.Status.String(),
			"score", game.Score,
			"round", game.Round,
			"ticks", game.CurrentTick)
	}
	return 0
}

// loadConfig reads path, falling back to defaults when the file is missing,
// and applies INVADERS_* overrides.
func loadConfig(ctx context.Context, path string, logger *logging.Logger) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug(ctx, "Configuration file not found, using default configuration",
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
	return gameConfig, nil
}

// openLogger picks the run's log destination. The terminal renderer owns
// the screen, so without a log file it logs nowhere.
func openLogger(path, renderer string) (*logging.Logger, func(), error) {
	if path == "" {
		if renderer == "terminal" {
			return logging.NewNopLogger(), func() {}, nil
		}
		return logging.NewLogger(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewLoggerTo(f), func() { f.Close() }, nil
}
