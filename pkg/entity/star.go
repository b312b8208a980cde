package entity

import (
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// Star is background decoration. It wraps around the arena and never collides.
type Star struct {
	BaseEntity
	Bounds physics.Bounds
}

// NewStar creates a star that wraps within bounds.
func NewStar(id ID, bounds physics.Bounds, position, velocity physics.Vector2D) *Star {
	return &Star{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Velocity: velocity,
			Radius:   1,
		},
		Bounds: bounds,
	}
}

// Kind implements Entity.
func (s *Star) Kind() Kind {
	return KindStar
}

// Move advances the star and wraps it back into the arena.
func (s *Star) Move() {
	s.BaseEntity.Move()
	s.Position = s.Bounds.Wrap(s.Position)
}

// Draw implements Entity.
func (s *Star) Draw(surface Surface) {
	surface.DrawStar(s)
}
