// pkg/render/engo/scene.go
package engo

import (
	"context"
	"errors"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/engine"
	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
)

// DefaultExitDelay is how long, in seconds, the lose screen stays up.
const DefaultExitDelay = 2

// Clock converts frame time into whole game ticks.
type Clock struct {
	step float32
	acc  float32
	// MaxCatchUp bounds the ticks run for one frame after a stall.
	MaxCatchUp int
}

// NewClock creates a clock for the given tick rate in ticks per second.
func NewClock(tickRate int) *Clock {
	return &Clock{
		step:       1 / float32(tickRate),
		MaxCatchUp: 5,
	}
}

// Advance adds dt seconds and returns the number of ticks now due.
func (c *Clock) Advance(dt float32) int {
	c.acc += dt
	n := int(c.acc / c.step)
	c.acc -= float32(n) * c.step
	if n > c.MaxCatchUp {
		n = c.MaxCatchUp
		c.acc = 0
	}
	return n
}

// GameScene runs one invaders game inside an Engo window. It is the game's
// View: when the game is lost the red screen stays up for ExitDelay seconds
// and the window closes.
type GameScene struct {
	Config *config.GameConfig
	// Font draws the HUD. Nil hides the status line.
	Font      *common.Font
	ExitDelay float32

	logger *logging.Logger
	ctx    context.Context
	bus    *event.Bus
	opts   []engine.Option

	game     *engine.Game
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
	clock    *Clock
	walls    *engine.WallWatcher

	stopped   bool
	sinceStop float32
	exited    bool
	exit      func()
}

// NewGameScene creates a scene for cfg. Extra options are passed to
// engine.NewGame after the scene's own.
func NewGameScene(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, bus *event.Bus, opts ...engine.Option) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	return &GameScene{
		Config:    cfg,
		ExitDelay: DefaultExitDelay,
		logger:    logger.WithComponent("engo_scene"),
		ctx:       ctx,
		bus:       bus,
		opts:      opts,
		exit:      engo.Exit,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "InvadersScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(scene.ctx, "unexpected updater", errors.New("not an ecs.World"))
		scene.exit()
		return
	}
	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		scene.logger.Error(scene.ctx, "failed to load assets", err)
	}
	if scene.Font == nil {
		font, err := LoadHUDFont()
		if err != nil {
			scene.logger.Warn(scene.ctx, "HUD disabled", "error", err.Error())
		}
		scene.Font = font
	}

	if err := scene.start(renderSystem, assets); err != nil {
		scene.logger.Error(scene.ctx, "failed to start game", err)
		scene.exit()
		return
	}

	world.AddSystem(scene.input)
	world.AddSystem(&gameSystem{scene: scene})
	world.AddSystem(scene.hud)
}

// start builds the game and the scene's collaborators on top of system.
func (scene *GameScene) start(system SpriteSystem, assets entity.AssetResolver[common.Drawable]) error {
	scene.renderer = NewEngoRenderer(system, assets)

	opts := append([]engine.Option{
		engine.WithSurface(scene.renderer),
		engine.WithView(scene),
		engine.WithLogger(scene.logger),
		engine.WithEventBus(scene.bus),
		engine.WithContext(scene.ctx),
	}, scene.opts...)

	game, err := engine.NewGame(scene.Config, opts...)
	if err != nil {
		return err
	}
	scene.game = game

	scene.input = NewInputSystem(game, scene.Config.GameRules.DefenderSpeed)
	scene.hud = NewHUDSystem(system, scene.Font)
	scene.clock = NewClock(scene.Config.Display.TickRate)
	if scene.Config.Display.AutoReverse {
		scene.walls = engine.NewWallWatcher(scene.Config.Display.WallMargin)
	}

	game.Draw(scene.renderer)
	scene.hud.UpdateGameState(game.GetGameState())
	return nil
}

// Advance runs the ticks due after dt seconds and redraws the frame.
func (scene *GameScene) Advance(dt float32) {
	if scene.input.QuitRequested() {
		scene.close("quit requested")
		return
	}
	if scene.stopped {
		scene.sinceStop += dt
		if scene.sinceStop >= scene.ExitDelay {
			scene.close("game over")
		}
		return
	}

	for range scene.clock.Advance(dt) {
		scene.input.Tick()
		if err := scene.game.Step(); errors.Is(err, engine.ErrGameOver) {
			break
		}
		if scene.walls != nil {
			scene.walls.Check(scene.game)
		}
	}

	if scene.game.Status != engine.StatusLost {
		scene.game.Draw(scene.renderer)
	}
	scene.hud.UpdateGameState(scene.game.GetGameState())
}

// Stop implements engine.View.
func (scene *GameScene) Stop() {
	scene.stopped = true
	scene.logger.Info(scene.ctx, "view stopped", "exit_delay", scene.ExitDelay)
}

// Game returns the running game, nil before Setup.
func (scene *GameScene) Game() *engine.Game {
	return scene.game
}

func (scene *GameScene) close(reason string) {
	if scene.exited {
		return
	}
	scene.exited = true
	scene.logger.Info(scene.ctx, "closing window", "reason", reason)
	scene.exit()
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	if scene.game == nil {
		return
	}
	scene.logger.Info(scene.ctx, "scene exiting",
		"score", scene.game.Score,
		"round", scene.game.Round,
		"ticks", scene.game.CurrentTick)
}

// gameSystem hands Engo's frame time to the scene.
type gameSystem struct {
	scene *GameScene
}

// Remove satisfies the ecs.System interface
func (s *gameSystem) Remove(basic ecs.BasicEntity) {}

// Update satisfies the ecs.System interface
func (s *gameSystem) Update(dt float32) {
	s.scene.Advance(dt)
}
