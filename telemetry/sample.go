package telemetry

import (
	"github.com/pthm-cable/planar/mathf"
	"github.com/pthm-cable/planar/vector2"
)

// Sample is one row of the trajectory log.
type Sample struct {
	Tick           int32   `csv:"tick"`
	Body           string  `csv:"body"`
	X              float64 `csv:"x"`
	Y              float64 `csv:"y"`
	VX             float64 `csv:"vx"`
	VY             float64 `csv:"vy"`
	Speed          float64 `csv:"speed"`
	Heading        float64 `csv:"heading_deg"` // (-180, 180], 0 = +X, counter-clockwise positive
	TargetDistance float64 `csv:"target_distance"`
	Arrived        bool    `csv:"arrived"`
}

// NewSample builds a trajectory sample from an entity's state.
func NewSample(tick int32, body string, pos, vel, target vector2.XY, arrived bool) Sample {
	p := vector2.From(pos)
	v := vector2.From(vel)
	return Sample{
		Tick:           tick,
		Body:           body,
		X:              p.X,
		Y:              p.Y,
		VX:             v.X,
		VY:             v.Y,
		Speed:          v.Magnitude(),
		Heading:        mathf.DeltaAngle(0, vector2.SignedAngle(vector2.Right(), v)),
		TargetDistance: vector2.Distance(p, target),
		Arrived:        arrived,
	}
}
