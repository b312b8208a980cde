// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a position or velocity in arena coordinates.
// The arena origin is the top-left corner; Y grows downward.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by factor
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction, or the zero vector.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rand is the randomness source consumed by the simulation.
// *math/rand/v2.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
}

// RandomVec returns a vector whose components are drawn independently
// and uniformly from [-maxMagnitude, maxMagnitude].
func RandomVec(rng Rand, maxMagnitude float64) Vector2D {
	return Vector2D{
		X: (rng.Float64()*2 - 1) * maxMagnitude,
		Y: (rng.Float64()*2 - 1) * maxMagnitude,
	}
}

// Wrap maps value into [0, max). Negative values wrap to the high end.
// A non-positive max yields 0.
func Wrap(value, max float64) float64 {
	if max <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	wrapped := math.Mod(value, max)
	if wrapped < 0 {
		wrapped += max
	}
	// -tiny + max rounds to max in floating point
	if wrapped >= max {
		wrapped = 0
	}
	return wrapped
}
