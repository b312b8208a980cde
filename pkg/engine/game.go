// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/opd-ai/go-invaders/pkg/config"
	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/event"
	"github.com/opd-ai/go-invaders/pkg/logging"
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// GameStatus is the orchestrator's lifecycle state.
type GameStatus int

const (
	StatusConstructing GameStatus = iota
	StatusRunning
	StatusRoundTransition
	StatusLost
)

// String returns the status name.
func (s GameStatus) String() string {
	switch s {
	case StatusConstructing:
		return "constructing"
	case StatusRunning:
		return "running"
	case StatusRoundTransition:
		return "round_transition"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// ErrGameOver is returned by Step once the defender has no lives left.
var ErrGameOver = errors.New("game over")

var (
	// BackgroundColor fills the arena before entities are drawn.
	BackgroundColor = color.RGBA{A: 0xff}
	// LoseColor fills the arena when the game is lost.
	LoseColor = color.RGBA{R: 0xff, A: 0xff}
)

// View is the render loop that drives the game. Stop is called exactly once,
// when the game is lost.
type View interface {
	Stop()
}

// Game owns every entity collection and sequences the tick. It is not safe
// for concurrent use: the driver calls Step, Draw and the player methods from
// a single goroutine.
type Game struct {
	Config *config.GameConfig
	Bounds physics.Bounds

	Defender     *entity.Ship
	InvaderShips []*entity.Ship
	Bullets      []*entity.Bullet
	Shields      []*entity.Shield
	ShieldPieces []*entity.ShieldPiece
	Stars        []*entity.Star

	Score         int
	DefenderLives int
	Round         int
	CurrentTick   uint64
	Status        GameStatus

	EventBus     *event.Bus
	SpatialIndex *physics.QuadTree

	ids     entity.IDGenerator
	rng     physics.Rand
	surface entity.Surface
	view    View
	logger  *logging.Logger
	ctx     context.Context
}

// Option customises a Game at construction.
type Option func(*Game)

// WithRand injects the random source used for stars and enemy fire.
func WithRand(rng physics.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithSurface sets the surface painted by Lose.
func WithSurface(surface entity.Surface) Option {
	return func(g *Game) { g.surface = surface }
}

// WithView sets the view stopped on loss.
func WithView(view View) Option {
	return func(g *Game) { g.view = view }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus shares an existing bus, so subscribers can attach before the
// game publishes GameStarted.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// WithContext sets the context carried into log entries.
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// NewGame validates cfg, spawns the starting world and returns a running game.
func NewGame(cfg *config.GameConfig, opts ...Option) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "cannot create game")
	}

	game := &Game{
		Config:        cfg,
		Bounds:        physics.Bounds{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		DefenderLives: cfg.GameRules.StartingLives,
		Round:         1,
		Status:        StatusConstructing,
	}
	for _, opt := range opts {
		opt(game)
	}
	game.applyDefaults()
	game.initSpatialIndex()

	game.addStars()
	game.addDefenderShip()
	game.addInvaderShips()
	game.addShields()

	game.Status = StatusRunning
	game.logger.Info(game.ctx, "game started",
		"width", cfg.Arena.Width,
		"height", cfg.Arena.Height,
		"invaders", len(game.InvaderShips),
		"shield_pieces", len(game.ShieldPieces),
		"lives", game.DefenderLives)
	game.EventBus.Publish(game.scoreEvent(event.GameStarted))

	return game, nil
}

func (g *Game) applyDefaults() {
	if g.rng == nil {
		seed := g.Config.GameRules.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if g.logger == nil {
		g.logger = logging.NewNopLogger()
	}
	if g.ctx == nil {
		g.ctx = logging.WithSessionID(context.Background(), "")
	}
	if g.EventBus == nil {
		g.EventBus = event.NewEventBus()
	}
}

// initSpatialIndex creates the broad-phase tree covering the arena plus a
// ship radius on every side.
func (g *Game) initSpatialIndex() {
	g.SpatialIndex = physics.NewQuadTree(g.Bounds.Rect(entity.ShipRadius), 8)
}

// Step advances the world by one tick: move, cull escaped bullets, resolve
// collisions, let invaders fire, then check for a cleared wave. After the
// game is lost Step does nothing and returns ErrGameOver.
func (g *Game) Step() error {
	if g.Status == StatusLost {
		return ErrGameOver
	}
	g.CurrentTick++

	g.MoveObjects()
	g.removeEscapedBullets()
	g.CheckCollisions()
	if g.Status == StatusLost {
		return ErrGameOver
	}
	g.EnemyFire()
	g.WinRound()
	return nil
}

// MoveObjects advances every entity except the defender, which only moves
// on player input.
func (g *Game) MoveObjects() {
	for _, object := range g.GetAllObjects() {
		object.Move()
	}
}

func (g *Game) removeEscapedBullets() {
	for _, bullet := range append([]*entity.Bullet(nil), g.Bullets...) {
		if g.IsOutOfBounds(bullet.Position) {
			g.Remove(bullet)
		}
	}
}

// EnemyFire gives each invader one chance per tick to fire, succeeding when
// a uniform draw scaled by EnemyFireOdds lands below 1. An invader whose
// bullet is still live does not fire again.
func (g *Game) EnemyFire() {
	odds := g.Config.GameRules.EnemyFireOdds
	for _, invader := range g.InvaderShips {
		if g.rng.Float64()*odds >= 1 || invader.CurrentBullet != nil {
			continue
		}
		g.fire(invader)
	}
}

func (g *Game) fire(ship *entity.Ship) *entity.Bullet {
	bullet := ship.FireBullet(g.ids.Next(), g.Config.GameRules.BulletSpeed)
	if bullet == nil {
		return nil
	}
	g.Bullets = append(g.Bullets, bullet)
	g.EventBus.Publish(g.shipEvent(event.BulletFired, ship))
	return bullet
}

// WinRound respawns the formation and awards a life once every invader is
// gone. It reports whether a new round began.
func (g *Game) WinRound() bool {
	if len(g.InvaderShips) != 0 || g.Status == StatusLost {
		return false
	}

	g.Status = StatusRoundTransition
	g.addInvaderShips()
	g.DefenderLives++
	g.Round++
	g.logger.Info(g.ctx, "round won",
		"round", g.Round,
		"score", g.Score,
		"lives", g.DefenderLives)
	g.EventBus.Publish(g.scoreEvent(event.RoundWon))
	g.Status = StatusRunning
	return true
}

// Lose paints the arena red and stops the view. Only the first call has any
// effect.
func (g *Game) Lose() {
	if g.Status == StatusLost {
		return
	}
	g.Status = StatusLost

	if g.surface != nil {
		g.surface.Clear()
		g.surface.FillRect(0, 0, g.Bounds.Width, g.Bounds.Height, LoseColor)
		g.surface.Present()
	}
	if g.view != nil {
		g.view.Stop()
	}

	g.logger.Info(g.ctx, "game lost",
		"round", g.Round,
		"score", g.Score,
		"tick", g.CurrentTick)
	g.EventBus.Publish(g.scoreEvent(event.GameLost))
}

// IncreaseInvadersSpeed speeds up every remaining invader by SpeedIncrement.
func (g *Game) IncreaseInvadersSpeed() {
	for _, invader := range g.InvaderShips {
		invader.IncreaseSpeed(g.Config.GameRules.SpeedIncrement)
	}
}

// ReverseAllInvaders flips the horizontal direction of the whole formation.
func (g *Game) ReverseAllInvaders() {
	for _, invader := range g.InvaderShips {
		invader.Reverse()
	}
}

// IsOutOfBounds reports whether pos lies strictly outside the arena.
func (g *Game) IsOutOfBounds(pos physics.Vector2D) bool {
	return g.Bounds.IsOutOfBounds(pos)
}

// GetAllObjects returns every movable entity except the defender: shield
// pieces, bullets, invaders and stars, in that order.
func (g *Game) GetAllObjects() []entity.Entity {
	objects := make([]entity.Entity, 0,
		len(g.ShieldPieces)+len(g.Bullets)+len(g.InvaderShips)+len(g.Stars))
	for _, p := range g.ShieldPieces {
		objects = append(objects, p)
	}
	for _, b := range g.Bullets {
		objects = append(objects, b)
	}
	for _, s := range g.InvaderShips {
		objects = append(objects, s)
	}
	for _, s := range g.Stars {
		objects = append(objects, s)
	}
	return objects
}

// CollisionObjects returns the entities that can take part in a collision:
// bullets, invaders, the defender and shield pieces.
func (g *Game) CollisionObjects() []entity.Entity {
	objects := make([]entity.Entity, 0,
		len(g.Bullets)+len(g.InvaderShips)+1+len(g.ShieldPieces))
	for _, b := range g.Bullets {
		objects = append(objects, b)
	}
	for _, s := range g.InvaderShips {
		objects = append(objects, s)
	}
	objects = append(objects, g.Defender)
	for _, p := range g.ShieldPieces {
		objects = append(objects, p)
	}
	return objects
}

// Draw renders one frame: background, the defender, then every other object.
func (g *Game) Draw(surface entity.Surface) {
	surface.Clear()
	surface.FillRect(0, 0, g.Bounds.Width, g.Bounds.Height, BackgroundColor)
	g.Defender.Draw(surface)
	for _, object := range g.GetAllObjects() {
		object.Draw(surface)
	}
	surface.Present()
}

// MoveDefender shifts the defender horizontally by dx, keeping its hull
// inside the arena.
func (g *Game) MoveDefender(dx float64) {
	if g.Status == StatusLost {
		return
	}
	r := g.Defender.Radius
	x := g.Defender.Position.X + dx
	x = max(r, min(x, g.Bounds.Width-r))
	g.Defender.Position.X = x
}

// FireDefender launches a defender bullet. It reports false while the
// previous one is still in flight or the game is over.
func (g *Game) FireDefender() bool {
	if g.Status == StatusLost {
		return false
	}
	return g.fire(g.Defender) != nil
}

func (g *Game) shipEvent(eventType event.Type, ship *entity.Ship) *event.ShipEvent {
	return event.NewShipEvent(eventType, g, uint64(ship.ID), string(ship.Variant),
		ship.Side().String(), ship.Position.X, ship.Position.Y)
}

func (g *Game) scoreEvent(eventType event.Type) *event.ScoreEvent {
	return event.NewScoreEvent(eventType, g, g.Score, g.DefenderLives, g.Round)
}
