// pkg/physics/vector_test.go
package physics

import (
	"math"
	"math/rand/v2"
	"testing"
)

// scriptedRand replays a fixed sequence of draws.
type scriptedRand struct {
	values []float64
	next   int
}

func (s *scriptedRand) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add_mixed_signs", Vector2D{X: 5, Y: -3}.Add(Vector2D{X: -2, Y: 7}), Vector2D{X: 3, Y: 4}},
		{"add_zero", Vector2D{}.Add(Vector2D{X: 5, Y: -3}), Vector2D{X: 5, Y: -3}},
		{"sub", Vector2D{X: 10, Y: 8}.Sub(Vector2D{X: 3, Y: 2}), Vector2D{X: 7, Y: 6}},
		{"scale", Vector2D{X: 1.5, Y: -2}.Scale(2), Vector2D{X: 3, Y: -4}},
		{"normalize_zero", Vector2D{}.Normalize(), Vector2D{}},
		{"normalize", Vector2D{X: 3, Y: 4}.Normalize(), Vector2D{X: 0.6, Y: 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got.X-tt.expected.X) > 1e-12 || math.Abs(tt.got.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_LengthAndDistance(t *testing.T) {
	v := Vector2D{X: 3, Y: 4}
	if v.Length() != 5 {
		t.Errorf("Length() = %f, expected 5", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("LengthSquared() = %f, expected 25", v.LengthSquared())
	}
	if d := (Vector2D{X: 1, Y: 1}).Distance(Vector2D{X: 4, Y: 5}); d != 5 {
		t.Errorf("Distance() = %f, expected 5", d)
	}
	if dot := v.Dot(Vector2D{X: 2, Y: -1}); dot != 2 {
		t.Errorf("Dot() = %f, expected 2", dot)
	}
}

func TestRandomVec_Range(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		v := RandomVec(rng, 8)
		if v.X < -8 || v.X > 8 || v.Y < -8 || v.Y > 8 {
			t.Fatalf("RandomVec out of range: %v", v)
		}
	}
}

func TestRandomVec_Extremes(t *testing.T) {
	rng := &scriptedRand{values: []float64{0, 0.5}}
	v := RandomVec(rng, 8)
	if v.X != -8 || v.Y != 0 {
		t.Errorf("RandomVec(0, 0.5) = %v, expected {-8 0}", v)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		max      float64
		expected float64
	}{
		{"inside", 50, 200, 50},
		{"zero", 0, 200, 0},
		{"at_max", 200, 200, 0},
		{"just_over", 201, 200, 1},
		{"negative", -1, 200, 199},
		{"far_negative", -1010, 200, 190},
		{"far_positive", 2050, 200, 50},
		{"fractional", -0.5, 10, 9.5},
		{"zero_max", 5, 0, 0},
		{"negative_max", 5, -3, 0},
		{"nan", math.NaN(), 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.value, tt.max)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Wrap(%v, %v) = %v, expected %v", tt.value, tt.max, got, tt.expected)
			}
		})
	}
}

func TestWrap_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 5000; i++ {
		value := (rng.Float64()*2 - 1) * 1e6
		got := Wrap(value, 300)
		if got < 0 || got >= 300 {
			t.Fatalf("Wrap(%v, 300) = %v, out of [0, 300)", value, got)
		}
	}
	if got := Wrap(-1e-18, 300); got < 0 || got >= 300 {
		t.Errorf("Wrap(-1e-18, 300) = %v, out of [0, 300)", got)
	}
}
