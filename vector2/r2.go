package vector2

import "gonum.org/v1/gonum/spatial/r2"

// R2 converts v to a gonum r2.Vec.
func (v Vector2) R2() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// FromR2 converts a gonum r2.Vec to a Vector2.
func FromR2(p r2.Vec) Vector2 {
	return Vector2{X: p.X, Y: p.Y}
}

func toR2(p XY) r2.Vec {
	x, y := p.XY()
	return r2.Vec{X: x, Y: y}
}
