// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// ID identifies an entity within the world that created it.
type ID uint64

// Kind is the closed set of entity variants.
type Kind int

const (
	KindStar Kind = iota
	KindBullet
	KindShip
	KindShieldPiece
)

// String returns the lower-case kind name used in logs and events.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindBullet:
		return "bullet"
	case KindShip:
		return "ship"
	case KindShieldPiece:
		return "shield_piece"
	default:
		return "unknown"
	}
}

// Side is the affiliation that decides collision eligibility and fire direction.
type Side int

const (
	SideNone Side = iota
	SideDefender
	SideInvader
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideDefender:
		return "defender"
	case SideInvader:
		return "invader"
	default:
		return "none"
	}
}

// Opposes reports whether s and other are the two opposing sides.
func (s Side) Opposes(other Side) bool {
	return s != SideNone && other != SideNone && s != other
}

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	Kind() Kind
	Side() Side
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Move()
	Draw(s Surface)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Faction  Side
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// Side returns the entity's affiliation
func (e *BaseEntity) Side() Side {
	return e.Faction
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape at its current position
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// Move advances the position by exactly one velocity step.
func (e *BaseEntity) Move() {
	e.Position = e.Position.Add(e.Velocity)
}

// IsCollidedWith is the geometric overlap test between two entities.
func IsCollidedWith(a, b Entity) bool {
	return a.GetCollider().Collides(b.GetCollider())
}

// IDGenerator hands out increasing IDs. Each world owns one.
type IDGenerator struct {
	last ID
}

// Next returns a fresh ID; the first is 1.
func (g *IDGenerator) Next() ID {
	g.last++
	return g.last
}
