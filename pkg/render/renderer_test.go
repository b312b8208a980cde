// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/opd-ai/go-invaders/pkg/entity"
	"github.com/opd-ai/go-invaders/pkg/logging"
	"github.com/opd-ai/go-invaders/pkg/physics"
)

func captureRenderer(t *testing.T) (*NullRenderer, *bytes.Buffer) {
	t.Helper()
	t.Setenv(logging.LevelEnv, "DEBUG")
	var buf bytes.Buffer
	return NewNullRenderer(context.Background(), logging.NewLoggerTo(&buf)), &buf
}

func TestNullRenderer_LogsCalls(t *testing.T) {
	ship := entity.NewShip(123, entity.VariantSoldier, entity.SideInvader, physics.Vector2D{X: 100, Y: 200}, physics.Vector2D{})
	bullet := &entity.Bullet{BaseEntity: entity.BaseEntity{ID: 7, Faction: entity.SideDefender}}

	tests := []struct {
		name     string
		call     func(r *NullRenderer)
		expected []string
	}{
		{"Clear", func(r *NullRenderer) { r.Clear() }, []string{"Clear called"}},
		{"Present", func(r *NullRenderer) { r.Present() }, []string{"Present called", `"frame":1`}},
		{"DrawShip", func(r *NullRenderer) { r.DrawShip(ship) }, []string{"DrawShip called", `"image":"soldier-1"`, `"ship_id":123`}},
		{"DrawShip nil", func(r *NullRenderer) { r.DrawShip(nil) }, []string{"nil ship"}},
		{"DrawBullet", func(r *NullRenderer) { r.DrawBullet(bullet) }, []string{"DrawBullet called", `"side":"defender"`}},
		{"FillRect", func(r *NullRenderer) { r.FillRect(0, 0, 10, 20, color.RGBA{R: 0xff, A: 0xff}) }, []string{"FillRect called", `"rgb":[255,0,0]`}},
		{"component", func(r *NullRenderer) { r.Clear() }, []string{`"component":"null_renderer"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, buf := captureRenderer(t)
			tt.call(renderer)
			for _, want := range tt.expected {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log %q does not contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestNullRenderer_CountsFramesAndFills(t *testing.T) {
	renderer := NewNullRenderer(context.Background(), nil)
	for i := 0; i < 3; i++ {
		renderer.Present()
	}
	if renderer.Frames != 3 {
		t.Errorf("Frames = %d, want 3", renderer.Frames)
	}
	if renderer.LastFill != nil {
		t.Error("LastFill set before any FillRect")
	}
	red := color.RGBA{R: 0xff, A: 0xff}
	renderer.FillRect(0, 0, 1, 1, red)
	if renderer.LastFill != red {
		t.Errorf("LastFill = %v, want %v", renderer.LastFill, red)
	}
}

var _ entity.Surface = (*NullRenderer)(nil)
