// pkg/entity/ship.go
package entity

import (
	"math"

	"github.com/opd-ai/go-invaders/pkg/physics"
)

// Variant is the visual and scoring flavour of a ship.
type Variant string

const (
	VariantInvader  Variant = "invader"
	VariantSoldier  Variant = "soldier"
	VariantGrunt    Variant = "grunt"
	VariantDefender Variant = "defender"
)

// ShipRadius is the collision radius shared by every ship.
const ShipRadius = 15

// Ship is an invader in the formation or the player's defender.
type Ship struct {
	BaseEntity
	Variant Variant
	// Speed is the horizontal speed magnitude; it only grows.
	Speed float64
	// CurrentBullet is the ship's one outstanding bullet, nil when it may fire.
	CurrentBullet *Bullet
}

// NewShip creates a ship. Its scalar speed starts at the horizontal velocity magnitude.
func NewShip(id ID, variant Variant, side Side, position, velocity physics.Vector2D) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Velocity: velocity,
			Radius:   ShipRadius,
			Faction:  side,
		},
		Variant: variant,
		Speed:   math.Abs(velocity.X),
	}
}

// Kind implements Entity.
func (s *Ship) Kind() Kind {
	return KindShip
}

// Draw implements Entity.
func (s *Ship) Draw(surface Surface) {
	surface.DrawShip(s)
}

// Image returns the asset name the view resolves to a drawable.
func (s *Ship) Image() string {
	if s.Variant == VariantDefender {
		return "defender"
	}
	return string(s.Variant) + "-1"
}

// Points returns the score awarded for destroying this ship.
func (s *Ship) Points() int {
	switch s.Variant {
	case VariantInvader:
		return 30
	case VariantSoldier:
		return 20
	case VariantGrunt:
		return 10
	default:
		return 0
	}
}

// Reverse flips the horizontal direction of travel.
func (s *Ship) Reverse() {
	s.Velocity.X = -s.Velocity.X
}

// IncreaseSpeed raises the speed scalar by delta and applies it to the
// horizontal velocity, keeping its direction. Non-positive deltas are ignored.
func (s *Ship) IncreaseSpeed(delta float64) {
	if delta <= 0 {
		return
	}
	s.Speed += delta
	if s.Velocity.X != 0 {
		s.Velocity.X = math.Copysign(s.Speed, s.Velocity.X)
	}
}

// FireBullet launches a bullet travelling vertically away from the ship:
// up for the defender, down for invaders. It returns nil while a previous
// bullet is still live.
func (s *Ship) FireBullet(id ID, speed float64) *Bullet {
	if s.CurrentBullet != nil {
		return nil
	}

	direction := 1.0
	if s.Faction == SideDefender {
		direction = -1.0
	}

	bullet := &Bullet{
		BaseEntity: BaseEntity{
			ID: id,
			Position: physics.Vector2D{
				X: s.Position.X,
				Y: s.Position.Y + direction*(s.Radius+BulletRadius),
			},
			Velocity: physics.Vector2D{X: 0, Y: direction * speed},
			Radius:   BulletRadius,
			Faction:  s.Faction,
		},
		Owner: s,
	}
	s.CurrentBullet = bullet
	return bullet
}

// ReleaseBullet clears the outstanding bullet if it is b, re-arming the ship.
func (s *Ship) ReleaseBullet(b *Bullet) {
	if s.CurrentBullet == b {
		s.CurrentBullet = nil
	}
}
