package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/physics"
)

// Glyph is how one ship image looks in a terminal cell.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

// GlyphSet resolves ship image names to glyphs.
type GlyphSet map[string]Glyph

// Resolve implements entity.AssetResolver.
func (g GlyphSet) Resolve(name string) (Glyph, bool) {
	glyph, ok := g[name]
	return glyph, ok
}

// DefaultGlyphs covers every ship image the game produces.
var DefaultGlyphs = GlyphSet{
	"invader-1": {'W', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	"soldier-1": {'M', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	"grunt-1":   {'V', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"defender":  {'A', tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)},
}

var unknownGlyph = Glyph{'?', tcell.StyleDefault.Foreground(tcell.ColorWhite)}

// TerminalSurface draws the arena scaled onto a tcell screen, one glyph per
// entity. Stars only fill empty cells.
type TerminalSurface struct {
	screen tcell.Screen
	arena  physics.Bounds
	glyphs entity.AssetResolver[Glyph]
	fill   tcell.Style
}

// NewTerminalSurface creates a surface for an arena of the given bounds.
// A nil resolver uses DefaultGlyphs.
func NewTerminalSurface(screen tcell.Screen, arena physics.Bounds, glyphs entity.AssetResolver[Glyph]) *TerminalSurface {
	if glyphs == nil {
		glyphs = DefaultGlyphs
	}
	return &TerminalSurface{
		screen: screen,
		arena:  arena,
		glyphs: glyphs,
		fill:   tcell.StyleDefault,
	}
}

// Cell maps an arena position to a screen cell. It reports false for
// positions that fall outside the screen.
func (s *TerminalSurface) Cell(pos physics.Vector2D) (int, int, bool) {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 || s.arena.Width <= 0 || s.arena.Height <= 0 {
		return 0, 0, false
	}
	if pos.X < 0 || pos.Y < 0 {
		return 0, 0, false
	}
	x := int(pos.X / s.arena.Width * float64(cols))
	y := int(pos.Y / s.arena.Height * float64(rows))
	return x, y, x < cols && y < rows
}

func (s *TerminalSurface) put(pos physics.Vector2D, r rune, style tcell.Style) {
	if x, y, ok := s.Cell(pos); ok {
		s.screen.SetContent(x, y, r, nil, style)
	}
}

// Clear implements entity.Surface.
func (s *TerminalSurface) Clear() {
	s.screen.Clear()
}

// FillRect implements entity.Surface. The rectangle's colour becomes the
// background of every covered cell and of later glyphs.
func (s *TerminalSurface) FillRect(x, y, width, height float64, c color.Color) {
	s.fill = tcell.StyleDefault.Background(toTcell(c))
	x0, y0, _ := s.Cell(physics.Vector2D{X: max(x, 0), Y: max(y, 0)})
	cols, rows := s.screen.Size()
	x1, y1, ok := s.Cell(physics.Vector2D{X: x + width, Y: y + height})
	if !ok {
		x1, y1 = cols, rows
	}
	for row := y0; row < min(y1, rows); row++ {
		for col := x0; col < min(x1, cols); col++ {
			s.screen.SetContent(col, row, ' ', nil, s.fill)
		}
	}
}

// DrawShip implements entity.Surface.
func (s *TerminalSurface) DrawShip(ship *entity.Ship) {
	glyph, ok := s.glyphs.Resolve(ship.Image())
	if !ok {
		glyph = unknownGlyph
	}
	s.put(ship.Position, glyph.Rune, s.withFill(glyph.Style))
}

// DrawBullet implements entity.Surface.
func (s *TerminalSurface) DrawBullet(bullet *entity.Bullet) {
	fg := tcell.ColorWhite
	if bullet.Side() == entity.SideInvader {
		fg = tcell.ColorRed
	}
	s.put(bullet.Position, '|', s.fill.Foreground(fg))
}

// DrawShieldPiece implements entity.Surface.
func (s *TerminalSurface) DrawShieldPiece(piece *entity.ShieldPiece) {
	s.put(piece.Position, '█', s.fill.Foreground(toTcell(entity.ShieldColor)))
}

// DrawStar implements entity.Surface.
func (s *TerminalSurface) DrawStar(star *entity.Star) {
	x, y, ok := s.Cell(star.Position)
	if !ok {
		return
	}
	if r, _, _, _ := s.screen.GetContent(x, y); r != ' ' && r != 0 {
		return
	}
	s.screen.SetContent(x, y, '.', nil, s.fill.Foreground(tcell.ColorGray))
}

// Present implements entity.Surface.
func (s *TerminalSurface) Present() {
	s.screen.Show()
}

func (s *TerminalSurface) withFill(style tcell.Style) tcell.Style {
	_, bg, _ := s.fill.Decompose()
	return style.Background(bg)
}

func toTcell(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
