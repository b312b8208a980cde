package engine

import (
	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// defenderInset and defenderLift place the defender near the bottom centre.
const (
	defenderInset = 30
	defenderLift  = 70
)

func (g *Game) addStars() {
	stars := g.Config.Stars
	for i := 0; i < stars.Count; i++ {
		g.Stars = append(g.Stars, entity.NewStar(
			g.ids.Next(),
			g.Bounds,
			g.Bounds.RandomPosition(g.rng),
			physics.RandomVec(g.rng, stars.MaxSpeed),
		))
	}
}

func (g *Game) addDefenderShip() {
	pos := physics.Vector2D{
		X: (g.Bounds.Width - defenderInset) * 0.52,
		Y: g.Bounds.Height - defenderLift,
	}
	g.Defender = entity.NewShip(g.ids.Next(), entity.VariantDefender, entity.SideDefender, pos, physics.Vector2D{})
}

// addInvaderShips appends a full formation: one row per configured variant,
// columns numbered from 1 so the first ship sits one spacing from the wall.
func (g *Game) addInvaderShips() {
	f := g.Config.Formation
	vel := physics.Vector2D{X: f.VelocityX}
	for row, variant := range f.RowVariants {
		y := f.TopY + float64(row)*f.RowSpacing
		for col := 1; col <= f.Columns; col++ {
			pos := physics.Vector2D{X: float64(col) * f.ColumnSpacing, Y: y}
			g.InvaderShips = append(g.InvaderShips,
				entity.NewShip(g.ids.Next(), entity.Variant(variant), entity.SideInvader, pos, vel))
		}
	}
}

// addShields builds the shield clusters along the configured x fractions.
func (g *Game) addShields() {
	s := g.Config.Shields
	y := g.Bounds.Height * s.HeightFraction
	for i := 0; i < s.Count; i++ {
		x := g.Bounds.Width * (s.FirstFraction + float64(i)*s.FractionStep)
		shield := entity.NewShield(&g.ids, physics.Vector2D{X: x, Y: y}, s.Radius, s.PieceSpacing)
		g.Shields = append(g.Shields, shield)
		g.ShieldPieces = append(g.ShieldPieces, shield.Pieces...)
	}
}
