package entity

import (
	"image/color"

	"github.com/opd-ai/go-invaders/pkg/physics"
)

// ShieldColor is the paint colour of shield pieces.
var ShieldColor = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}

// Shield is a cluster of independently destructible pieces around a center.
type Shield struct {
	ID     ID
	Center physics.Vector2D
	Radius float64
	Pieces []*ShieldPiece
}

// ShieldPiece is one erodible cell of a shield.
type ShieldPiece struct {
	BaseEntity
	ShieldID ID
}

// NewShield lays pieces on a square grid of the given spacing, keeping every
// grid point within radius of center. Radius 15 with spacing 5 yields 29 pieces.
func NewShield(ids *IDGenerator, center physics.Vector2D, radius, spacing float64) *Shield {
	shield := &Shield{
		ID:     ids.Next(),
		Center: center,
		Radius: radius,
	}
	if spacing <= 0 || radius < 0 {
		return shield
	}

	steps := int(radius / spacing)
	for row := -steps; row <= steps; row++ {
		for col := -steps; col <= steps; col++ {
			offset := physics.Vector2D{X: float64(col) * spacing, Y: float64(row) * spacing}
			if offset.LengthSquared() > radius*radius {
				continue
			}
			shield.Pieces = append(shield.Pieces, &ShieldPiece{
				BaseEntity: BaseEntity{
					ID:       ids.Next(),
					Position: center.Add(offset),
					Radius:   spacing / 2,
				},
				ShieldID: shield.ID,
			})
		}
	}
	return shield
}

// Kind implements Entity.
func (p *ShieldPiece) Kind() Kind {
	return KindShieldPiece
}

// Draw implements Entity.
func (p *ShieldPiece) Draw(surface Surface) {
	surface.DrawShieldPiece(p)
}
