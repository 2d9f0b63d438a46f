// Package systems contains ECS systems for the kinematics demo.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planar/components"
	"github.com/pthm-cable/planar/vector2"
)

// PhysicsSystem integrates positions, applies the speed limit and friction,
// and bounces entities off the world walls.
type PhysicsSystem struct {
	filter      ecs.Filter3[components.Position, components.Velocity, components.Body]
	bounds      Bounds
	friction    float64
	restitution float64
}

// Bounds represents the simulation bounds. The world spans [0, Width] x [0, Height].
type Bounds struct {
	Width, Height float64
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds, friction, restitution float64) *PhysicsSystem {
	return &PhysicsSystem{
		filter:      *ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		bounds:      bounds,
		friction:    friction,
		restitution: restitution,
	}
}

// Update advances every entity by dt seconds and returns how many moved.
func (s *PhysicsSystem) Update(dt float64) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		n++

		// Limit velocity
		if vel.Magnitude() > body.MaxSpeed {
			vel.Vector2 = vector2.ClampMagnitude(vel, body.MaxSpeed)
		}

		pos.Vector2 = pos.Plus(vel.Times(dt))
		vel.Vector2 = vel.Times(s.friction)

		s.collideWalls(pos, vel, body.Radius)
	}
	return n
}

// collideWalls keeps the entity inside the bounds inset by radius and
// reflects the velocity off any wall it crossed.
func (s *PhysicsSystem) collideWalls(pos *components.Position, vel *components.Velocity, radius float64) {
	lo := vector2.Of(radius, radius)
	hi := vector2.Of(s.bounds.Width-radius, s.bounds.Height-radius)

	if pos.X < lo.X {
		vel.Vector2 = s.bounce(vel.Vector2, vector2.Right())
	}
	if pos.X > hi.X {
		vel.Vector2 = s.bounce(vel.Vector2, vector2.Left())
	}
	if pos.Y < lo.Y {
		vel.Vector2 = s.bounce(vel.Vector2, vector2.Up())
	}
	if pos.Y > hi.Y {
		vel.Vector2 = s.bounce(vel.Vector2, vector2.Down())
	}

	pos.Vector2 = vector2.Min(vector2.Max(pos, lo), hi)
}

// bounce reflects v off a wall with the given inward normal, only when v
// points into the wall.
func (s *PhysicsSystem) bounce(v, normal vector2.Vector2) vector2.Vector2 {
	if vector2.Dot(v, normal) >= 0 {
		return v
	}
	return vector2.Reflect(v, normal).Times(s.restitution)
}
