package entity

import "image/color"

// Surface is the drawing target supplied by the view. The simulation only
// hands over positions, sizes and variants; pixels are the surface's concern.
type Surface interface {
	Clear()
	FillRect(x, y, width, height float64, c color.Color)
	DrawShip(ship *Ship)
	DrawBullet(bullet *Bullet)
	DrawShieldPiece(piece *ShieldPiece)
	DrawStar(star *Star)
	Present()
}

// AssetResolver maps a ship image name ("invader-1", "soldier-1", "grunt-1",
// "defender") to whatever handle a particular surface draws with.
type AssetResolver[H any] interface {
	Resolve(name string) (H, bool)
}
