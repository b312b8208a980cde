package engine

import (
	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// GameState is a copy of the world for renderers, HUDs and frame streams.
type GameState struct {
	Tick         uint64             `msgpack:"tick"`
	Status       string             `msgpack:"status"`
	Score        int                `msgpack:"score"`
	Lives        int                `msgpack:"lives"`
	Round        int                `msgpack:"round"`
	Width        float64            `msgpack:"width"`
	Height       float64            `msgpack:"height"`
	Defender     ShipState          `msgpack:"defender"`
	Invaders     []ShipState        `msgpack:"invaders"`
	Bullets      []BulletState      `msgpack:"bullets"`
	ShieldPieces []ShieldPieceState `msgpack:"shield_pieces"`
	Stars        []physics.Vector2D `msgpack:"stars"`
}

// ShipState represents a snapshot of a ship's state
type ShipState struct {
	ID       entity.ID        `msgpack:"id"`
	Image    string           `msgpack:"image"`
	Position physics.Vector2D `msgpack:"pos"`
	Velocity physics.Vector2D `msgpack:"vel"`
	Armed    bool             `msgpack:"armed"`
}

// BulletState represents a snapshot of a bullet's state
type BulletState struct {
	ID       entity.ID        `msgpack:"id"`
	Side     string           `msgpack:"side"`
	Position physics.Vector2D `msgpack:"pos"`
}

// ShieldPieceState represents a snapshot of one shield piece
type ShieldPieceState struct {
	ID       entity.ID        `msgpack:"id"`
	ShieldID entity.ID        `msgpack:"shield"`
	Position physics.Vector2D `msgpack:"pos"`
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	state := &GameState{
		Tick:     g.CurrentTick,
		Status:   g.Status.String(),
		Score:    g.Score,
		Lives:    g.DefenderLives,
		Round:    g.Round,
		Width:    g.Bounds.Width,
		Height:   g.Bounds.Height,
		Defender: shipState(g.Defender),
	}

	state.Invaders = make([]ShipState, 0, len(g.InvaderShips))
	for _, ship := range g.InvaderShips {
		state.Invaders = append(state.Invaders, shipState(ship))
	}
	state.Bullets = make([]BulletState, 0, len(g.Bullets))
	for _, b := range g.Bullets {
		state.Bullets = append(state.Bullets, BulletState{ID: b.ID, Side: b.Side().String(), Position: b.Position})
	}
	state.ShieldPieces = make([]ShieldPieceState, 0, len(g.ShieldPieces))
	for _, p := range g.ShieldPieces {
		state.ShieldPieces = append(state.ShieldPieces, ShieldPieceState{ID: p.ID, ShieldID: p.ShieldID, Position: p.Position})
	}
	state.Stars = make([]physics.Vector2D, 0, len(g.Stars))
	for _, s := range g.Stars {
		state.Stars = append(state.Stars, s.Position)
	}
	return state
}

func shipState(ship *entity.Ship) ShipState {
	return ShipState{
		ID:       ship.ID,
		Image:    ship.Image(),
		Position: ship.Position,
		Velocity: ship.Velocity,
		Armed:    ship.CurrentBullet == nil,
	}
}
