package vector2

import (
	"math"
	"strconv"
	"strings"
)

// String renders v as Vector2{x:<x>, y:<y>}.
func (v Vector2) String() string {
	var b strings.Builder
	b.WriteString("Vector2{x:")
	b.WriteString(formatComponent(v.X))
	b.WriteString(", y:")
	b.WriteString(formatComponent(v.Y))
	b.WriteString("}")
	return b.String()
}

// formatComponent prints the shortest decimal that round-trips, switching to
// exponent form only for very large or very small magnitudes.
func formatComponent(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
