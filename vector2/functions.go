package vector2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/planar/mathf"
)

// Angle returns the unsigned angle in degrees between from and to, in [0, 180].
// The result is NaN if either vector has zero length.
func Angle(from, to XY) float64 {
	return math.Acos(Dot(from, to)/(From(from).Magnitude()*From(to).Magnitude())) * mathf.Rad2Deg
}

// SignedAngle returns the angle in degrees from a to b, positive when
// counter-clockwise. The result lies in (-360, 360) and is not wrapped;
// use mathf.DeltaAngle(0, SignedAngle(a, b)) for the shortest rotation.
func SignedAngle(a, b XY) float64 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return (math.Atan2(by, bx) - math.Atan2(ay, ax)) * mathf.Rad2Deg
}

// ClampMagnitude rescales v to exactly maxLength. Vectors shorter than
// maxLength are scaled up as well; callers wanting a true limit should
// check Magnitude first.
func ClampMagnitude(v XY, maxLength float64) Vector2 {
	vec := From(v)
	t := maxLength / vec.Magnitude()
	return Vector2{X: vec.X * t, Y: vec.Y * t}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b XY) float64 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return math.Sqrt((ax-bx)*(ax-bx) + (ay-by)*(ay-by))
}

// Dot returns the dot product of a and b.
func Dot(a, b XY) float64 {
	return r2.Dot(toR2(a), toR2(b))
}

// Lerp interpolates between a and b with t clamped to [0, 1].
func Lerp(a, b XY, t float64) Vector2 {
	return LerpUnclamped(a, b, mathf.Clamp01(t))
}

// LerpUnclamped interpolates between a and b without clamping t.
func LerpUnclamped(a, b XY, t float64) Vector2 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return Vector2{X: ax + (bx-ax)*t, Y: ay + (by-ay)*t}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b XY) Vector2 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return Vector2{X: math.Max(ax, bx), Y: math.Max(ay, by)}
}

// Min returns the component-wise minimum of a and b.
func Min(a, b XY) Vector2 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return Vector2{X: math.Min(ax, bx), Y: math.Min(ay, by)}
}

// MoveTowards moves a towards b by at most maxDelta. The step never
// overshoots b, and a non-positive maxDelta returns a unchanged.
func MoveTowards(a, b XY, maxDelta float64) Vector2 {
	return Lerp(a, b, maxDelta/Distance(a, b))
}

// Perpendicular returns direction rotated 90 degrees counter-clockwise.
func Perpendicular(direction XY) Vector2 {
	x, y := direction.XY()
	return Vector2{X: -y, Y: x}
}

// Reflect mirrors direction off a surface with the given normal.
// normal must already be unit length.
func Reflect(direction, normal XY) Vector2 {
	n := From(normal)
	return From(direction).Minus(n.Times(Dot(direction, normal) * 2))
}

// Scale multiplies a and b component-wise.
func Scale(a, b XY) Vector2 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return Vector2{X: ax * bx, Y: ay * by}
}
