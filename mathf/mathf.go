// Package mathf provides scalar helpers shared by the vector types.
package mathf

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Angle conversion factors.
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Epsilon is the tolerance used by Approximately.
const Epsilon = 1e-9

// Clamp01 clamps t to the [0, 1] range. NaN passes through unchanged.
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Clamp clamps v between minVal and maxVal.
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Lerp interpolates between a and b with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// Approximately reports whether a and b are equal within Epsilon,
// either absolutely or relative to their magnitude.
func Approximately(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, Epsilon, Epsilon)
}

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest difference between two angles in degrees,
// wrapped to (-180, 180].
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}
