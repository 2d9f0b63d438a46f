package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planar/components"
	"github.com/pthm-cable/planar/vector2"
)

func TestSpatialGridQueryRadius(t *testing.T) {
	tw := newTestWorld()
	a := tw.spawn(vector2.Of(10, 10), vector2.Zero(), components.Body{ID: 0, Radius: 1})
	b := tw.spawn(vector2.Of(14, 13), vector2.Zero(), components.Body{ID: 1, Radius: 1})
	tw.spawn(vector2.Of(90, 90), vector2.Zero(), components.Body{ID: 2, Radius: 1})

	grid := NewSpatialGrid(Bounds{Width: 100, Height: 100}, 8)
	grid.Insert(a, tw.posMap.Get(a))
	grid.Insert(b, tw.posMap.Get(b))

	got := grid.QueryRadiusInto(nil, vector2.Of(10, 10), 5, a, tw.posMap)
	if len(got) != 1 {
		t.Fatalf("expected 1 neighbor, got %d", len(got))
	}
	if got[0].E != b {
		t.Errorf("expected neighbor b, got %v", got[0].E)
	}
	if !vecClose(got[0].Delta, vector2.Of(4, 3)) || got[0].DistSq != 25 {
		t.Errorf("unexpected neighbor data: %+v", got[0])
	}

	if got := grid.QueryRadiusInto(nil, vector2.Of(10, 10), 4.9, a, tw.posMap); len(got) != 0 {
		t.Errorf("expected no neighbors inside 4.9, got %d", len(got))
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, vector2.Of(10, 10), 50, a, tw.posMap); len(got) != 0 {
		t.Errorf("expected empty grid after Clear, got %d", len(got))
	}
}

func TestSpatialGridClampsOutsidePositions(t *testing.T) {
	tw := newTestWorld()
	e := tw.spawn(vector2.Of(-3, 102), vector2.Zero(), components.Body{Radius: 1})

	grid := NewSpatialGrid(Bounds{Width: 100, Height: 100}, 10)
	grid.Insert(e, tw.posMap.Get(e))

	var none ecs.Entity
	if got := grid.QueryRadiusInto(nil, vector2.Of(0, 100), 5, none, tw.posMap); len(got) != 1 {
		t.Errorf("expected the clamped entity, got %d neighbors", len(got))
	}
}

func TestCollisionResolvesHeadOn(t *testing.T) {
	tests := []struct {
		name        string
		restitution float64
		wantVelA    vector2.Vector2
		wantVelB    vector2.Vector2
	}{
		{"elastic", 1, vector2.Of(-10, 0), vector2.Of(10, 0)},
		{"damped", 0.5, vector2.Of(-5, 0), vector2.Of(5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tw := newTestWorld()
			a := tw.spawn(vector2.Of(50, 50), vector2.Of(10, 0), components.Body{ID: 0, Radius: 4})
			b := tw.spawn(vector2.Of(55, 50), vector2.Of(-10, 0), components.Body{ID: 1, Radius: 4})

			if n := NewCollisionSystem(tw.world, Bounds{Width: 100, Height: 100}, 8, tc.restitution).Update(); n != 1 {
				t.Errorf("expected 1 contact, got %d", n)
			}

			if pos := tw.posMap.Get(a); !vecClose(pos.Vector2, vector2.Of(48.5, 50)) {
				t.Errorf("a position: got %v", pos.Vector2)
			}
			if pos := tw.posMap.Get(b); !vecClose(pos.Vector2, vector2.Of(56.5, 50)) {
				t.Errorf("b position: got %v", pos.Vector2)
			}
			if vel := tw.velMap.Get(a); !vecClose(vel.Vector2, tc.wantVelA) {
				t.Errorf("a velocity: got %v, want %v", vel.Vector2, tc.wantVelA)
			}
			if vel := tw.velMap.Get(b); !vecClose(vel.Vector2, tc.wantVelB) {
				t.Errorf("b velocity: got %v, want %v", vel.Vector2, tc.wantVelB)
			}
		})
	}
}

func TestCollisionSeparatingBodiesKeepVelocity(t *testing.T) {
	tw := newTestWorld()
	a := tw.spawn(vector2.Of(50, 50), vector2.Of(0, -3), components.Body{ID: 0, Radius: 4})
	b := tw.spawn(vector2.Of(50, 56), vector2.Of(0, 3), components.Body{ID: 1, Radius: 4})

	NewCollisionSystem(tw.world, Bounds{Width: 100, Height: 100}, 8, 1).Update()

	if pos := tw.posMap.Get(a); !vecClose(pos.Vector2, vector2.Of(50, 49)) {
		t.Errorf("a position: got %v", pos.Vector2)
	}
	if pos := tw.posMap.Get(b); !vecClose(pos.Vector2, vector2.Of(50, 57)) {
		t.Errorf("b position: got %v", pos.Vector2)
	}
	if vel := tw.velMap.Get(a); !vel.Equals(vector2.Of(0, -3)) {
		t.Errorf("a velocity changed: %v", vel.Vector2)
	}
	if vel := tw.velMap.Get(b); !vel.Equals(vector2.Of(0, 3)) {
		t.Errorf("b velocity changed: %v", vel.Vector2)
	}
}

func TestCollisionIgnoresDistantBodies(t *testing.T) {
	tw := newTestWorld()
	a := tw.spawn(vector2.Of(20, 20), vector2.Of(1, 1), components.Body{ID: 0, Radius: 4})
	b := tw.spawn(vector2.Of(30, 20), vector2.Of(-1, 1), components.Body{ID: 1, Radius: 4})

	if n := NewCollisionSystem(tw.world, Bounds{Width: 100, Height: 100}, 8, 1).Update(); n != 0 {
		t.Errorf("expected no contacts, got %d", n)
	}

	if pos := tw.posMap.Get(a); !pos.Equals(vector2.Of(20, 20)) {
		t.Errorf("a moved: %v", pos.Vector2)
	}
	if pos := tw.posMap.Get(b); !pos.Equals(vector2.Of(30, 20)) {
		t.Errorf("b moved: %v", pos.Vector2)
	}
}

func TestCollisionCoincidentBodies(t *testing.T) {
	tw := newTestWorld()
	a := tw.spawn(vector2.Of(50, 50), vector2.Zero(), components.Body{ID: 0, Radius: 2})
	b := tw.spawn(vector2.Of(50, 50), vector2.Zero(), components.Body{ID: 1, Radius: 2})

	NewCollisionSystem(tw.world, Bounds{Width: 100, Height: 100}, 4, 1).Update()

	if pos := tw.posMap.Get(a); !vecClose(pos.Vector2, vector2.Of(48, 50)) {
		t.Errorf("a position: got %v", pos.Vector2)
	}
	if pos := tw.posMap.Get(b); !vecClose(pos.Vector2, vector2.Of(52, 50)) {
		t.Errorf("b position: got %v", pos.Vector2)
	}
}
