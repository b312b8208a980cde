// cmd/invaders/engo.go
package main

import (
	"context"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/engine"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
	engorender "github.com/opd-ai/go-invaders/pkg/render/engo"
)

// runEngo plays one game in an Engo window sized to the arena. It returns
// when the window closes.
func runEngo(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, bus *event.Bus) *engine.Game {
	scene := engorender.NewGameScene(ctx, cfg, logger, bus)

	opts := engo.RunOptions{
		Title:  "Go Invaders",
		Width:  int(cfg.Arena.Width),
		Height: int(cfg.Arena.Height),
		VSync:  true,
	}

	engo.Run(opts, scene)
	return scene.Game()
}
