// Package vector2 provides a 2D float64 vector value type and a library of
// geometric functions over it. Angles are expressed in degrees.
//
// Degenerate inputs (zero-length vectors, zero divisors) are not guarded:
// they propagate IEEE-754 NaN and Inf rather than returning errors.
package vector2

import (
	"math"
	"reflect"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/planar/mathf"
)

// XY is anything exposing read-only planar coordinates.
// The package-level functions accept XY so callers are not forced to
// convert their own point types into Vector2.
type XY interface {
	XY() (x, y float64)
}

// Point is a plain read-only coordinate pair.
type Point struct {
	X, Y float64
}

// XY implements XY.
func (p Point) XY() (float64, float64) {
	return p.X, p.Y
}

// Vector2 is a 2D vector with float64 components.
type Vector2 struct {
	X, Y float64
}

// Named directions. They are functions so the values can never be mutated
// through a shared reference.
func Zero() Vector2  { return Vector2{0, 0} }
func One() Vector2   { return Vector2{1, 1} }
func Up() Vector2    { return Vector2{0, 1} }
func Down() Vector2  { return Vector2{0, -1} }
func Left() Vector2  { return Vector2{-1, 0} }
func Right() Vector2 { return Vector2{1, 0} }

// Of builds a vector from two scalars.
func Of(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// From copies the coordinates of any point-like value.
func From(p XY) Vector2 {
	x, y := p.XY()
	return Vector2{X: x, Y: y}
}

// XY implements XY.
func (v Vector2) XY() (float64, float64) {
	return v.X, v.Y
}

// Plus returns v + other.
func (v Vector2) Plus(other XY) Vector2 {
	return FromR2(r2.Add(v.R2(), toR2(other)))
}

// Minus returns v - other.
func (v Vector2) Minus(other XY) Vector2 {
	return FromR2(r2.Sub(v.R2(), toR2(other)))
}

// Times returns v scaled by s.
func (v Vector2) Times(s float64) Vector2 {
	return FromR2(r2.Scale(s, v.R2()))
}

// Div returns v with each component divided by s.
func (v Vector2) Div(s float64) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// Magnitude returns the Euclidean length of v.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.SqrMagnitude())
}

// SqrMagnitude returns the squared length of v.
func (v Vector2) SqrMagnitude() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns v scaled to unit length. A zero vector yields NaN components.
func (v Vector2) Normalized() Vector2 {
	return v.Copy().Div(v.Magnitude())
}

// Normalize scales v to unit length in place.
func (v *Vector2) Normalize() {
	m := v.Magnitude()
	v.X = v.X / m
	v.Y = v.Y / m
}

// Copy returns an independent duplicate of v.
func (v Vector2) Copy() Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

// Equals reports whether other has the same components as v.
// A nil interface or nil pointer is never equal. Components compare with ==,
// so a vector holding NaN is not equal to anything, itself included.
func (v Vector2) Equals(other XY) bool {
	if isNil(other) {
		return false
	}
	x, y := other.XY()
	return v.X == x && v.Y == y
}

// ApproxEquals reports whether other matches v within a small tolerance.
func (v Vector2) ApproxEquals(other XY) bool {
	if isNil(other) {
		return false
	}
	x, y := other.XY()
	return mathf.Approximately(v.X, x) && mathf.Approximately(v.Y, y)
}

func isNil(p XY) bool {
	if p == nil {
		return true
	}
	rv := reflect.ValueOf(p)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
