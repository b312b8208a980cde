// cmd/invaders-sim/sim.go
package main

import (
	"context"
	"errors"
	"math"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/engine"
	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
	"github.com/opd-ai/go-invaders/pkg/render"
)

type simOptions struct {
	Ticks int
	// Every records one frame per Every ticks; values below 1 mean 1.
	Every  int
	Frames *render.FrameWriter
	Extra  []engine.Option
}

type simSummary struct {
	Ticks  uint64
	Status string
	Score  int
	Round  int
	Lives  int
	Kills  int
	Shots  int
	Frames int
}

// simView records the game's Stop call.
type simView struct{ stopped bool }

func (v *simView) Stop() { v.stopped = true }

// simulate runs a headless game with an autopilot defender for up to
// opts.Ticks ticks, stopping early when the game is lost.
func simulate(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, opts simOptions) (*simSummary, error) {
	every := max(opts.Every, 1)
	bus := event.NewEventBus()
	summary := &simSummary{}

	bus.Subscribe(event.InvaderDestroyed, func(event.Event) { summary.Kills++ })
	bus.Subscribe(event.BulletFired, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok && se.Side == entity.SideDefender.String() {
			summary.Shots++
		}
	})

	view := &simView{}
	game, err := engine.NewGame(cfg, append([]engine.Option{
		engine.WithSurface(render.NewNullRenderer(ctx, logger)),
		engine.WithView(view),
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx),
	}, opts.Extra...)...)
	if err != nil {
		return nil, err
	}

	var walls *engine.WallWatcher
	if cfg.Display.AutoReverse {
		walls = engine.NewWallWatcher(cfg.Display.WallMargin)
	}

	for i := 0; i < opts.Ticks; i++ {
		steer(game)
		stepErr := game.Step()
		if walls != nil {
			walls.Check(game)
		}

		if opts.Frames != nil && (game.CurrentTick%uint64(every) == 0 || stepErr != nil) {
			if err := opts.Frames.WriteFrame(game.GetGameState()); err != nil {
				return nil, logging.WrapError(err, "failed to record frame", "tick", game.CurrentTick)
			}
		}
		if errors.Is(stepErr, engine.ErrGameOver) {
			break
		}
	}

	summary.Ticks = game.CurrentTick
	summary.Status = game.Status.String()
	summary.Score = game.Score
	summary.Round = game.Round
	summary.Lives = game.DefenderLives
	if opts.Frames != nil {
		summary.Frames = opts.Frames.Frames()
	}
	return summary, nil
}

// steer moves the defender toward the invader closest to the ground and
// fires whenever it can.
func steer(game *engine.Game) {
	if game.Status == engine.StatusLost {
		return
	}
	target := lowestInvader(game.InvaderShips, game.Defender.Position.X)
	if target == nil {
		return
	}
	speed := game.Config.GameRules.DefenderSpeed
	dx := target.Position.X - game.Defender.Position.X
	game.MoveDefender(math.Max(-speed, math.Min(speed, dx)))
	if math.Abs(dx) <= target.Radius {
		game.FireDefender()
	}
}

// lowestInvader returns the invader with the greatest y, preferring the
// one horizontally nearest x on ties.
func lowestInvader(invaders []*entity.Ship, x float64) *entity.Ship {
	var best *entity.Ship
	for _, s := range invaders {
		switch {
		case best == nil, s.Position.Y > best.Position.Y:
			best = s
		case s.Position.Y == best.Position.Y &&
			math.Abs(s.Position.X-x) < math.Abs(best.Position.X-x):
			best = s
		}
	}
	return best
}
