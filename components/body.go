// Package components defines ECS components for the kinematics demo.
package components

import (
	"github.com/pthm-cable/planar/config"
	"github.com/pthm-cable/planar/vector2"
)

// Body holds identity and physical size of an entity.
type Body struct {
	ID       uint32
	Name     string
	Radius   float64
	MaxSpeed float64
}

// Seeker steers an entity toward a target point.
type Seeker struct {
	Target         vector2.Vector2
	Responsiveness float64 // lerp rate toward the desired velocity, per second
	ArriveRadius   float64
	Orbit          bool // circle the target instead of stopping on it
	Arrived        bool
}

// SeekerFromConfig builds a seeker for the given body using the shared steering defaults.
func SeekerFromConfig(body *config.BodyConfig, steering config.SteeringConfig) Seeker {
	return Seeker{
		Target:         vector2.From(body.Target),
		Responsiveness: steering.Responsiveness,
		ArriveRadius:   steering.ArriveRadius,
		Orbit:          body.Orbit,
	}
}

// BodyFromConfig builds the Body component for a configured body.
func BodyFromConfig(id uint32, body *config.BodyConfig) Body {
	return Body{
		ID:       id,
		Name:     body.Name,
		Radius:   body.Radius,
		MaxSpeed: body.MaxSpeed,
	}
}
