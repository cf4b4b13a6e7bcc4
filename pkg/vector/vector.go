// Package vector provides a small 2-D vector value type used for window
// geometry and layout math. All operations return new values.
package vector

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vec2 is a two component float64 vector. The zero value is the origin.
type Vec2 struct {
	X float64
	Y float64
}

// New constructs a vector from its components.
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat constructs a vector with both components set to s.
func Splat(s float64) Vec2 {
	return Vec2{X: s, Y: s}
}

// Add returns the elementwise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the elementwise difference.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the elementwise product.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Div returns the elementwise quotient.
func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{X: v.X / o.X, Y: v.Y / o.Y}
}

// Mod returns the elementwise floating point remainder.
func (v Vec2) Mod(o Vec2) Vec2 {
	return Vec2{X: math.Mod(v.X, o.X), Y: math.Mod(v.Y, o.Y)}
}

// Pow raises each component to the matching component of o.
func (v Vec2) Pow(o Vec2) Vec2 {
	return Vec2{X: math.Pow(v.X, o.X), Y: math.Pow(v.Y, o.Y)}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return v.Mul(Splat(s))
}

// Neg returns the vector with both components negated.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Swap returns the vector with its components exchanged.
func (v Vec2) Swap() Vec2 {
	return Vec2{X: v.Y, Y: v.X}
}

// Max returns the componentwise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y)}
}

// Min returns the componentwise minimum of v and o.
func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// Round rounds both components to the nearest integer, halves away from zero.
func (v Vec2) Round() Vec2 {
	return Vec2{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// Floor rounds both components down.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// Ceil rounds both components up.
func (v Vec2) Ceil() Vec2 {
	return Vec2{X: math.Ceil(v.X), Y: math.Ceil(v.Y)}
}

// Equal reports exact component equality.
func (v Vec2) Equal(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// Less reports whether both components of v are smaller than those of o.
func (v Vec2) Less(o Vec2) bool {
	return v.X < o.X && v.Y < o.Y
}

// Greater reports whether both components of v are larger than those of o.
func (v Vec2) Greater(o Vec2) bool {
	return v.X > o.X && v.Y > o.Y
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) String() string {
	return fmt.Sprintf("x=%v, y=%v", v.X, v.Y)
}

// MarshalJSON renders the vector as a two element array.
func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

// UnmarshalJSON parses a two element array.
func (v *Vec2) UnmarshalJSON(data []byte) error {
	var parts []float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("vector: decode: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("vector: expected two components, got %d", len(parts))
	}
	v.X, v.Y = parts[0], parts[1]
	return nil
}
