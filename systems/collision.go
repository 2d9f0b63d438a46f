package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planar/components"
	"github.com/pthm-cable/planar/vector2"
)

// CollisionSystem separates overlapping bodies and bounces them apart.
// All bodies have equal mass.
type CollisionSystem struct {
	filter      ecs.Filter3[components.Position, components.Velocity, components.Body]
	posMap      *ecs.Map[components.Position]
	velMap      *ecs.Map[components.Velocity]
	bodyMap     *ecs.Map[components.Body]
	grid        *SpatialGrid
	restitution float64

	neighbors []Neighbor
}

// NewCollisionSystem creates a collision system. cellSize should be at least
// the largest body diameter.
func NewCollisionSystem(w *ecs.World, bounds Bounds, cellSize, restitution float64) *CollisionSystem {
	return &CollisionSystem{
		filter:      *ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		posMap:      ecs.NewMap[components.Position](w),
		velMap:      ecs.NewMap[components.Velocity](w),
		bodyMap:     ecs.NewMap[components.Body](w),
		grid:        NewSpatialGrid(bounds, cellSize),
		restitution: restitution,
	}
}

// Update resolves every overlapping pair once and returns the number of pairs.
func (s *CollisionSystem) Update() int {
	contacts := 0
	s.grid.Clear()
	maxRadius := 0.0

	query := s.filter.Query()
	for query.Next() {
		pos, _, body := query.Get()
		s.grid.Insert(query.Entity(), pos)
		maxRadius = max(maxRadius, body.Radius)
	}

	query = s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		self := query.Entity()

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos, body.Radius+maxRadius, self, s.posMap)
		for _, n := range s.neighbors {
			other := s.bodyMap.Get(n.E)
			if other.ID <= body.ID {
				continue
			}
			if s.resolve(pos, vel, body.Radius, s.posMap.Get(n.E), s.velMap.Get(n.E), other.Radius) {
				contacts++
			}
		}
	}
	return contacts
}

// resolve pushes a and b apart along the contact normal and reflects their
// approach speed scaled by restitution. It reports whether they overlapped.
func (s *CollisionSystem) resolve(posA *components.Position, velA *components.Velocity, ra float64,
	posB *components.Position, velB *components.Velocity, rb float64) bool {
	delta := posB.Minus(posA)
	dist := delta.Magnitude()
	overlap := ra + rb - dist
	if overlap <= 0 {
		return false
	}

	normal := vector2.Right()
	if dist > 0 {
		normal = delta.Times(1 / dist)
	}

	push := normal.Times(overlap / 2)
	posA.Vector2 = posA.Minus(push)
	posB.Vector2 = posB.Plus(push)

	approach := vector2.Dot(velB.Minus(velA), normal)
	if approach >= 0 {
		return true
	}
	impulse := normal.Times(-(1 + s.restitution) * approach / 2)
	velA.Vector2 = velA.Minus(impulse)
	velB.Vector2 = velB.Plus(impulse)
	return true
}
