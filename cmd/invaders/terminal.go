// cmd/invaders/terminal.go
package main

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/engine"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
	"github.com/opd-ai/go-invaders/pkg/physics"
	"github.com/opd-ai/go-invaders/pkg/render"
)

const (
	// keyNudge is how many ticks of defender movement one key press is worth;
	// terminals report presses and repeats but never releases.
	keyNudge = 4
	// loseLinger is how long the red screen stays up before the driver exits.
	loseLinger = 2 * time.Second
)

// terminalDriver runs the game on a tcell screen. It is the game's View.
type terminalDriver struct {
	screen  tcell.Screen
	surface *render.TerminalSurface
	game    *engine.Game
	walls   *engine.WallWatcher
	nudge   float64

	stopped bool
	quit    bool

	logger *logging.Logger
	ctx    context.Context
}

func newTerminalDriver(ctx context.Context, screen tcell.Screen, cfg *config.GameConfig, logger *logging.Logger, bus *event.Bus, opts ...engine.Option) (*terminalDriver, error) {
	d := &terminalDriver{
		screen:  screen,
		surface: render.NewTerminalSurface(screen, physicsBounds(cfg), nil),
		nudge:   cfg.GameRules.DefenderSpeed * keyNudge,
		logger:  logger.WithComponent("terminal"),
		ctx:     ctx,
	}
	if cfg.Display.AutoReverse {
		d.walls = engine.NewWallWatcher(cfg.Display.WallMargin)
	}

	game, err := engine.NewGame(cfg, append([]engine.Option{
		engine.WithSurface(d.surface),
		engine.WithView(d),
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx),
	}, opts...)...)
	if err != nil {
		return nil, err
	}
	d.game = game
	return d, nil
}

// Stop implements engine.View.
func (d *terminalDriver) Stop() {
	d.stopped = true
}

// handleEvent applies one tcell event to the game.
func (d *terminalDriver) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			d.quit = true
		case tcell.KeyLeft:
			d.game.MoveDefender(-d.nudge)
		case tcell.KeyRight:
			d.game.MoveDefender(d.nudge)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				d.quit = true
			case ' ':
				d.game.FireDefender()
			case 'a', 'h':
				d.game.MoveDefender(-d.nudge)
			case 'd', 'l':
				d.game.MoveDefender(d.nudge)
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
}

// tick advances the game one step and redraws.
func (d *terminalDriver) tick() {
	if err := d.game.Step(); errors.Is(err, engine.ErrGameOver) {
		return
	}
	if d.walls != nil {
		d.walls.Check(d.game)
	}
	d.game.Draw(d.surface)
}

// run drives the game until it is lost, the player quits or ctx ends.
func (d *terminalDriver) run(tickRate int) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(d.screen, events, done)

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	d.game.Draw(d.surface)
	var lostAt time.Time
	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info(d.ctx, "interrupted")
			return
		case ev := <-events:
			d.handleEvent(ev)
			if d.quit {
				d.logger.Info(d.ctx, "quit requested", "tick", d.game.CurrentTick)
				return
			}
		case now := <-ticker.C:
			if !d.stopped {
				d.tick()
				continue
			}
			if lostAt.IsZero() {
				lostAt = now
			}
			if now.Sub(lostAt) >= loseLinger {
				return
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func physicsBounds(cfg *config.GameConfig) physics.Bounds {
	return physics.Bounds{Width: cfg.Arena.Width, Height: cfg.Arena.Height}
}

// runTerminal plays one game in the terminal.
func runTerminal(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, bus *event.Bus) (*engine.Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, logging.WrapError(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, logging.WrapError(err, "failed to initialize screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	d, err := newTerminalDriver(ctx, screen, cfg, logger, bus)
	if err != nil {
		return nil, err
	}
	d.run(cfg.Display.TickRate)
	return d.game, nil
}
