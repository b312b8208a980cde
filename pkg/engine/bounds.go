package engine

// WallWatcher reverses the invader formation when its leading ship comes
// within Margin of a side wall. Drivers that want invaders to bounce call
// Check after every Step; the game itself never reverses on its own.
type WallWatcher struct {
	Margin float64
}

// NewWallWatcher creates a watcher with the given wall margin.
func NewWallWatcher(margin float64) *WallWatcher {
	return &WallWatcher{Margin: margin}
}

// Check reverses the formation if any invader moving toward a wall has
// reached it. It reports whether the formation was reversed.
func (w *WallWatcher) Check(g *Game) bool {
	if g.Status == StatusLost {
		return false
	}
	for _, invader := range g.InvaderShips {
		x, vx, r := invader.Position.X, invader.Velocity.X, invader.Radius
		if (vx > 0 && x+r >= g.Bounds.Width-w.Margin) || (vx < 0 && x-r <= w.Margin) {
			g.ReverseAllInvaders()
			return true
		}
	}
	return false
}
