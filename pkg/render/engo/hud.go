// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-invaders/pkg/engine"
)

const (
	layerHUD = layerShips + 1

	hudFontURL  = "gomono.ttf"
	hudFontSize = 16
)

// LoadHUDFont registers the Go Mono face with Engo's file loader and
// prepares it for drawing. It needs a live OpenGL context.
func LoadHUDFont() (*common.Font, error) {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}
	font := &common.Font{
		URL:  hudFontURL,
		FG:   color.White,
		Size: hudFontSize,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to prepare HUD font: %w", err)
	}
	return font, nil
}

// HUDSystem shows score, lives and round along the top of the window.
type HUDSystem struct {
	system SpriteSystem
	font   *common.Font

	label *sprite
	text  string
	dirty bool

	hudColor color.Color
}

// NewHUDSystem creates a HUD. Without a font the status line is tracked but
// not drawn.
func NewHUDSystem(system SpriteSystem, font *common.Font) *HUDSystem {
	return &HUDSystem{
		system:   system,
		font:     font,
		hudColor: color.RGBA{255, 255, 255, 255},
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update redraws the status line when it has changed.
func (hud *HUDSystem) Update(dt float32) {
	if !hud.dirty || hud.font == nil {
		return
	}
	hud.dirty = false

	if hud.label == nil {
		hud.label = &sprite{BasicEntity: ecs.NewBasic()}
		hud.label.Scale = engo.Point{X: 1, Y: 1}
		hud.label.StartZIndex = layerHUD
		hud.label.Position = engo.Point{X: 10, Y: 10}
		hud.label.Drawable = common.Text{Font: hud.font, Text: hud.text}
		hud.label.Color = hud.hudColor
		hud.system.Add(&hud.label.BasicEntity, &hud.label.RenderComponent, &hud.label.SpaceComponent)
		return
	}
	hud.label.Drawable = common.Text{Font: hud.font, Text: hud.text}
}

// UpdateGameState takes the latest snapshot.
func (hud *HUDSystem) UpdateGameState(state *engine.GameState) {
	text := StatusLine(state)
	if text != hud.text {
		hud.text = text
		hud.dirty = true
	}
}

// Text returns the current status line.
func (hud *HUDSystem) Text() string {
	return hud.text
}

// StatusLine formats a snapshot for the HUD.
func StatusLine(state *engine.GameState) string {
	if state.Status == engine.StatusLost.String() {
		return fmt.Sprintf("GAME OVER  SCORE %d  ROUND %d", state.Score, state.Round)
	}
	return fmt.Sprintf("SCORE %d  LIVES %d  ROUND %d", state.Score, state.Lives, state.Round)
}
