// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"
	"maps"
	"slices"

	"github.com/EngoEngine/engo/common"
)

// Sprite names beyond the ship images produced by entity.Ship.Image.
const (
	SpriteBullet = "bullet"
	SpriteShield = "shield"
	SpriteStar   = "star"
)

// Pattern is a 1-bit bitmap, one string per row; '#' marks a lit pixel.
type Pattern []string

var spritePatterns = map[string]Pattern{
	"invader-1": {
		"...#....#...",
		"....#..#....",
		"...######...",
		"..##.##.##..",
		".##########.",
		".#.######.#.",
		".#.#....#.#.",
		"....##.##...",
	},
	"soldier-1": {
		"....####....",
		".##########.",
		"############",
		"###..##..###",
		"############",
		"...##..##...",
		"..##.##.##..",
		"##........##",
	},
	"grunt-1": {
		".....##.....",
		"....####....",
		"...######...",
		"..##.##.##..",
		"..########..",
		"....#..#....",
		"...#.##.#...",
		"..#.#..#.#..",
	},
	"defender": {
		".....##.....",
		"....####....",
		"....####....",
		".##########.",
		"############",
		"############",
		"############",
		"############",
	},
	SpriteBullet: {
		"#",
		"#",
		"#",
		"#",
	},
	SpriteShield: {
		"####",
		"####",
		"####",
		"####",
	},
	SpriteStar: {
		"#",
	},
}

// AssetManager builds the sprite textures and resolves them by image name.
type AssetManager struct {
	sprites map[string]common.Drawable
}

// NewAssetManager creates an empty asset manager. LoadAssets fills it.
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[string]common.Drawable),
	}
}

// LoadAssets uploads every sprite pattern as a texture. It needs a live
// OpenGL context, so it is called from the scene's Setup.
func (am *AssetManager) LoadAssets() error {
	for name, pattern := range spritePatterns {
		am.sprites[name] = am.convertToEngoTexture(PatternImage(pattern))
	}
	return nil
}

// Resolve implements entity.AssetResolver.
func (am *AssetManager) Resolve(name string) (common.Drawable, bool) {
	sprite, ok := am.sprites[name]
	return sprite, ok
}

// SpriteNames lists every sprite the manager builds, sorted.
func SpriteNames() []string {
	return slices.Sorted(maps.Keys(spritePatterns))
}

// PatternImage rasterises a pattern in white on a transparent background.
// Sprites are tinted through the render component's colour.
func PatternImage(pattern Pattern) *image.NRGBA {
	width := 0
	for _, row := range pattern {
		width = max(width, len(row))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, len(pattern)))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == '#' {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// convertToEngoTexture converts an image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.NRGBA) common.Drawable {
	texture := common.NewImageObject(img)
	return common.NewTextureSingle(texture)
}
