// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// Draw layers, lowest first.
const (
	layerBackground float32 = iota
	layerStars
	layerShields
	layerShips
)

var (
	defenderBulletColor = color.RGBA{255, 255, 255, 255}
	invaderBulletColor  = color.RGBA{255, 64, 64, 255}
	shieldColor         = color.RGBA{0, 255, 0, 255}
	starColor           = color.RGBA{160, 160, 160, 255}
	shipColor           = color.RGBA{255, 255, 255, 255}
)

// SpriteSystem is the part of common.RenderSystem the renderer needs.
type SpriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one drawable entity in the ECS world.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements entity.Surface on top of an Engo render system.
// Every game entity keeps one sprite, keyed by its ID; sprites not drawn
// between Clear and Present are removed. Arena units map 1:1 to game units.
type EngoRenderer struct {
	system SpriteSystem
	assets entity.AssetResolver[common.Drawable]

	background *sprite
	sprites    map[entity.ID]*sprite
	drawn      map[entity.ID]bool
}

// NewEngoRenderer creates a renderer that adds its sprites to system.
func NewEngoRenderer(system SpriteSystem, assets entity.AssetResolver[common.Drawable]) *EngoRenderer {
	return &EngoRenderer{
		system:  system,
		assets:  assets,
		sprites: make(map[entity.ID]*sprite),
		drawn:   make(map[entity.ID]bool),
	}
}

// Clear implements entity.Surface
func (r *EngoRenderer) Clear() {
	clear(r.drawn)
}

// FillRect implements entity.Surface. The arena has one background
// rectangle; each call resizes and recolours it.
func (r *EngoRenderer) FillRect(x, y, width, height float64, c color.Color) {
	if r.background == nil {
		r.background = r.newSprite(common.Rectangle{}, layerBackground)
	}
	r.background.Color = c
	r.background.Position = engo.Point{X: float32(x), Y: float32(y)}
	r.background.Width = float32(width)
	r.background.Height = float32(height)
}

// DrawShip implements entity.Surface
func (r *EngoRenderer) DrawShip(ship *entity.Ship) {
	r.place(ship.ID, ship.Image(), layerShips, ship.Position, ship.Radius, shipColor)
}

// DrawBullet implements entity.Surface
func (r *EngoRenderer) DrawBullet(bullet *entity.Bullet) {
	c := invaderBulletColor
	if bullet.Side() == entity.SideDefender {
		c = defenderBulletColor
	}
	r.place(bullet.ID, SpriteBullet, layerShips, bullet.Position, bullet.Radius, c)
}

// DrawShieldPiece implements entity.Surface
func (r *EngoRenderer) DrawShieldPiece(piece *entity.ShieldPiece) {
	r.place(piece.ID, SpriteShield, layerShields, piece.Position, piece.Radius, shieldColor)
}

// DrawStar implements entity.Surface
func (r *EngoRenderer) DrawStar(star *entity.Star) {
	r.place(star.ID, SpriteStar, layerStars, star.Position, star.Radius, starColor)
}

// Present implements entity.Surface. The render system draws on its own
// schedule, so presenting only drops the sprites of vanished entities.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !r.drawn[id] {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// SpriteCount returns the number of live entity sprites.
func (r *EngoRenderer) SpriteCount() int {
	return len(r.sprites)
}

// place moves the entity's sprite so that it is centred on pos, creating
// the sprite on first sight.
func (r *EngoRenderer) place(id entity.ID, image string, layer float32, pos physics.Vector2D, radius float64, c color.Color) {
	s, ok := r.sprites[id]
	if !ok {
		s = r.newSprite(r.resolve(image), layer)
		r.sprites[id] = s
	}
	r.drawn[id] = true

	size := float32(2 * radius)
	s.Color = c
	s.Position = engo.Point{X: float32(pos.X - radius), Y: float32(pos.Y - radius)}
	s.Width = size
	s.Height = size
	if w := s.Drawable.Width(); w > 0 {
		s.Scale = engo.Point{X: size / w, Y: size / s.Drawable.Height()}
	}
}

// resolve falls back to a plain rectangle for images without a texture.
func (r *EngoRenderer) resolve(image string) common.Drawable {
	if r.assets != nil {
		if drawable, ok := r.assets.Resolve(image); ok {
			return drawable
		}
	}
	return common.Rectangle{}
}

func (r *EngoRenderer) newSprite(drawable common.Drawable, layer float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = drawable
	s.Scale = engo.Point{X: 1, Y: 1}
	s.StartZIndex = layer
	r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}
