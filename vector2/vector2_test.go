package vector2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNamedDirections(t *testing.T) {
	require.Equal(t, Vector2{0, 0}, Zero())
	require.Equal(t, Vector2{1, 1}, One())
	require.Equal(t, Vector2{0, 1}, Up())
	require.Equal(t, Vector2{0, -1}, Down())
	require.Equal(t, Vector2{-1, 0}, Left())
	require.Equal(t, Vector2{1, 0}, Right())
}

func TestNamedDirectionsCannotBeMutated(t *testing.T) {
	up := Up()
	up.X = 5
	up.Normalize()
	require.Equal(t, Vector2{0, 1}, Up())
}

func TestConstructors(t *testing.T) {
	require.Equal(t, Vector2{}, Zero())
	require.Equal(t, Vector2{3, 4}, Of(3, 4))
	require.Equal(t, Vector2{3, 4}, From(Point{X: 3, Y: 4}))
	require.Equal(t, Vector2{3, 4}, From(Of(3, 4)))
}

func TestPlus(t *testing.T) {
	require.Equal(t, Of(4, 6), Of(1, 2).Plus(Point{3, 4}))
}

func TestPlusZeroIsIdentity(t *testing.T) {
	for _, v := range []Vector2{Of(1, 2), Of(-3.5, 0.25), Of(1e9, -1e-9), Zero()} {
		require.True(t, v.Plus(Zero()).Equals(v), "%v", v)
	}
}

func TestMinus(t *testing.T) {
	require.Equal(t, Zero(), Of(1, 2).Minus(Point{1, 2}))
}

func TestTimes(t *testing.T) {
	require.Equal(t, Of(4, 8), Of(1, 2).Times(4))
}

func TestDiv(t *testing.T) {
	require.Equal(t, Of(2, -1), Of(4, -2).Div(2))
}

func TestTimesDivRoundTrip(t *testing.T) {
	vectors := []Vector2{Of(1, 2), Of(-3.3, 7.7), Of(0.001, 1000)}
	scalars := []float64{3, -0.5, 1e-3, 12345.678}
	for _, v := range vectors {
		for _, s := range scalars {
			got := v.Times(s).Div(s)
			require.InDelta(t, v.X, got.X, 1e-9)
			require.InDelta(t, v.Y, got.Y, 1e-9)
		}
	}
}

func TestDivByZero(t *testing.T) {
	got := Of(1, -1).Div(0)
	require.True(t, math.IsInf(got.X, 1))
	require.True(t, math.IsInf(got.Y, -1))

	got = Zero().Div(0)
	require.True(t, math.IsNaN(got.X))
	require.True(t, math.IsNaN(got.Y))
}

func TestMagnitude(t *testing.T) {
	require.InDelta(t, 1.0, Of(0.6, 0.8).Magnitude(), 1e-12)
	require.Equal(t, 5.0, Of(3, 4).Magnitude())
}

func TestSqrMagnitude(t *testing.T) {
	require.Equal(t, 25.0, Of(3, 4).SqrMagnitude())
}

func TestNormalized(t *testing.T) {
	v := Of(3, 4)
	require.Equal(t, Of(0.6, 0.8), v.Normalized())
	require.Equal(t, Of(3, 4), v, "Normalized must not mutate the receiver")
}

func TestNormalize(t *testing.T) {
	v := Of(3, 4)
	v.Normalize()
	require.Equal(t, Of(0.6, 0.8), v)
}

func TestNormalizedZeroIsNaN(t *testing.T) {
	got := Zero().Normalized()
	require.True(t, math.IsNaN(got.X))
	require.True(t, math.IsNaN(got.Y))

	v := Zero()
	v.Normalize()
	require.True(t, math.IsNaN(v.X))
	require.True(t, math.IsNaN(v.Y))
}

func TestCopy(t *testing.T) {
	origin := Of(1, 2)
	cp := origin.Copy()
	require.Equal(t, origin, cp)

	origin.X = 10
	require.NotEqual(t, origin, cp)
	require.Equal(t, Of(1, 2), cp)
}

func TestEquals(t *testing.T) {
	origin := Of(1, 2)

	t.Run("self", func(t *testing.T) {
		require.True(t, origin.Equals(origin))
		require.True(t, origin.Equals(&origin))
	})

	t.Run("nil", func(t *testing.T) {
		require.False(t, origin.Equals(nil))

		var vp *Vector2
		require.False(t, origin.Equals(vp))

		var pp *Point
		require.False(t, origin.Equals(pp))
	})

	t.Run("structural", func(t *testing.T) {
		require.True(t, origin.Equals(origin.Copy()))
		require.True(t, origin.Equals(Point{1, 2}))
	})

	t.Run("different", func(t *testing.T) {
		require.False(t, origin.Equals(Of(3, 2)))
		require.False(t, origin.Equals(Of(1, 3)))
	})

	t.Run("NaN never equal", func(t *testing.T) {
		v := Zero().Normalized()
		require.False(t, v.Equals(v))
		require.False(t, v.Equals(&v))
		require.False(t, v.ApproxEquals(v))
	})

	t.Run("negative zero", func(t *testing.T) {
		require.True(t, Zero().Equals(Of(math.Copysign(0, -1), 0)))
	})
}

func TestApproxEquals(t *testing.T) {
	tenth := 0.1
	sum := Of(tenth+0.2, 1)
	require.True(t, sum.ApproxEquals(Of(0.3, 1)))
	require.False(t, sum.Equals(Of(0.3, 1)))
	require.False(t, Of(1, 1).ApproxEquals(Of(1, 1.01)))
	require.False(t, Of(1, 1).ApproxEquals(nil))
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2
		want string
	}{
		{"integers", Of(1, 2), "Vector2{x:1, y:2}"},
		{"decimals", Of(0.6, -0.8), "Vector2{x:0.6, y:-0.8}"},
		{"negative zero", Of(math.Copysign(0, -1), 0), "Vector2{x:0, y:0}"},
		{"large", Of(1e6, 1e21), "Vector2{x:1000000, y:1e+21}"},
		{"small", Of(1e-7, 0.000001), "Vector2{x:1e-7, y:0.000001}"},
		{"non finite", Of(math.Inf(1), math.NaN()), "Vector2{x:Infinity, y:NaN}"},
		{"negative infinity", Of(math.Inf(-1), 1.5), "Vector2{x:-Infinity, y:1.5}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.v.String())
		})
	}
}

func TestR2RoundTrip(t *testing.T) {
	v := Of(1.5, -2.5)
	require.Equal(t, r2.Vec{X: 1.5, Y: -2.5}, v.R2())
	require.Equal(t, v, FromR2(v.R2()))
	require.InDelta(t, v.Magnitude(), r2.Norm(v.R2()), 1e-12)
}
