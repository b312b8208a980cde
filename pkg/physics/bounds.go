package physics

// Bounds is the immutable rectangular arena, anchored at the origin.
type Bounds struct {
	Width  float64
	Height float64
}

// Wrap maps a position back into the arena on both axes.
func (b Bounds) Wrap(pos Vector2D) Vector2D {
	return Vector2D{
		X: Wrap(pos.X, b.Width),
		Y: Wrap(pos.Y, b.Height),
	}
}

// IsOutOfBounds reports whether pos lies strictly outside the arena.
// Points on the edge are still inside.
func (b Bounds) IsOutOfBounds(pos Vector2D) bool {
	return pos.X < 0 || pos.Y < 0 || pos.X > b.Width || pos.Y > b.Height
}

// Contains reports whether pos lies inside the arena, edges included.
func (b Bounds) Contains(pos Vector2D) bool {
	return !b.IsOutOfBounds(pos)
}

// RandomPosition returns a uniformly random point inside the arena.
func (b Bounds) RandomPosition(rng Rand) Vector2D {
	return Vector2D{
		X: b.Width * rng.Float64(),
		Y: b.Height * rng.Float64(),
	}
}

// Rect returns the arena as a centered Rect, grown by margin on every side.
func (b Bounds) Rect(margin float64) Rect {
	return Rect{
		Center: Vector2D{X: b.Width / 2, Y: b.Height / 2},
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}
