package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planar/components"
	"github.com/pthm-cable/planar/vector2"
)

// orbitPull blends a little of the radial direction into the orbit tangent
// so orbiters spiral in slightly instead of drifting outward.
const orbitPull = 0.1

// SteeringSystem eases each seeker's velocity toward its target.
type SteeringSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.Body, components.Seeker]
}

// NewSteeringSystem creates a new steering system.
func NewSteeringSystem(w *ecs.World) *SteeringSystem {
	return &SteeringSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Seeker](w),
	}
}

// Update steers every seeker for dt seconds and returns how many had not
// arrived at the start of the tick.
func (s *SteeringSystem) Update(dt float64) int {
	steered := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, seek := query.Get()
		if seek.Arrived {
			continue
		}
		steered++

		dist := vector2.Distance(pos, seek.Target)
		if !seek.Orbit && dist <= seek.ArriveRadius {
			if dist > 0 {
				pos.Vector2 = vector2.MoveTowards(pos, seek.Target, seek.ArriveRadius)
			}
			vel.Vector2 = vector2.Zero()
			seek.Arrived = true
			continue
		}

		desired, ok := desiredVelocity(pos.Vector2, seek, body.MaxSpeed)
		if !ok {
			continue
		}
		vel.Vector2 = vector2.Lerp(vel, desired, seek.Responsiveness*dt)
	}
	return steered
}

// desiredVelocity returns the velocity a seeker at pos wants, at full speed.
// ok is false when there is no defined direction.
func desiredVelocity(pos vector2.Vector2, seek *components.Seeker, maxSpeed float64) (vector2.Vector2, bool) {
	toTarget := seek.Target.Minus(pos)
	desired := toTarget
	if seek.Orbit {
		desired = vector2.Perpendicular(toTarget).Plus(toTarget.Times(orbitPull))
	}
	if desired.SqrMagnitude() == 0 {
		return vector2.Vector2{}, false
	}
	return vector2.ClampMagnitude(desired, maxSpeed), true
}
