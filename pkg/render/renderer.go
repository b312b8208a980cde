// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/logging"
)

// NullRenderer is a headless entity.Surface. It draws nothing, logs each
// call at debug level and counts presented frames.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	Frames int
	// LastFill is the colour of the most recent FillRect, nil before any.
	LastFill color.Color
}

// NewNullRenderer creates a NullRenderer logging through logger. A nil logger
// discards output.
func NewNullRenderer(ctx context.Context, logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{logger: logger.WithComponent("null_renderer"), ctx: ctx}
}

// Clear implements entity.Surface.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called")
}

// FillRect implements entity.Surface.
func (d *NullRenderer) FillRect(x, y, width, height float64, c color.Color) {
	d.LastFill = c
	r, g, b, _ := c.RGBA()
	d.logger.Debug(d.ctx, "FillRect called",
		"x", x, "y", y, "width", width, "height", height,
		"rgb", [3]uint32{r >> 8, g >> 8, b >> 8})
}

// DrawShip implements entity.Surface.
func (d *NullRenderer) DrawShip(ship *entity.Ship) {
	if ship == nil {
		d.logger.Debug(d.ctx, "DrawShip called with nil ship")
		return
	}
	d.logger.Debug(d.ctx, "DrawShip called",
		"ship_id", ship.ID,
		"image", ship.Image(),
		"x", ship.Position.X,
		"y", ship.Position.Y)
}

// DrawBullet implements entity.Surface.
func (d *NullRenderer) DrawBullet(bullet *entity.Bullet) {
	if bullet == nil {
		d.logger.Debug(d.ctx, "DrawBullet called with nil bullet")
		return
	}
	d.logger.Debug(d.ctx, "DrawBullet called",
		"bullet_id", bullet.ID,
		"side", bullet.Side().String())
}

// DrawShieldPiece implements entity.Surface.
func (d *NullRenderer) DrawShieldPiece(piece *entity.ShieldPiece) {}

// DrawStar implements entity.Surface.
func (d *NullRenderer) DrawStar(star *entity.Star) {}

// Present implements entity.Surface.
func (d *NullRenderer) Present() {
	d.Frames++
	d.logger.Debug(d.ctx, "Present called", "frame", d.Frames)
}
