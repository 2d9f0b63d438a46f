package components

import "github.com/pthm-cable/planar/vector2"

// Position represents an entity's world position.
type Position struct {
	vector2.Vector2
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	vector2.Vector2
}
