package boids

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// PoseHandle is an opaque reference to a render-side scene node. The
// engine only ever writes through it (Translate/Rotate); it never
// reads the handle back.
type PoseHandle interface {
	SetLocalTranslation(p geometry.Vector3)
	SetLocalRotation(rot Rotation)
}

// Rotation is the engine's view of a 3-D orientation: whatever
// geometry.RotationBetween returns, passed opaquely through to the
// render adapter. It is an alias of geometry.Rotation, so any type
// whose SetLocalRotation takes a geometry.Rotation (such as
// render.Node) satisfies PoseHandle.
type Rotation = geometry.Rotation

// Agent is one flock member. Acceleration and NeighborVelocity are
// accumulators that the engine zeroes at the start of every tick.
type Agent struct {
	ID int

	Position     geometry.Vector3
	Velocity     geometry.Vector3
	Acceleration geometry.Vector3

	// NeighborVelocity accumulates the alignment contribution from
	// pair enumeration; consumed and reset every tick.
	NeighborVelocity geometry.Vector3

	// Pose is never read by the engine, only written during the pose
	// push step. It may be nil, e.g. in headless tests.
	Pose PoseHandle
}

// Flock is an ordered, dense collection of Agents addressable by their
// stable id, which is always the agent's index into Agents.
type Flock struct {
	Agents []Agent
	Params Params
}

// NewFlock validates params and returns an empty Flock ready to be
// populated by Generate. Returns a *ConfigError if params violate the
// Params invariants.
func NewFlock(params Params) (*Flock, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Flock{Params: params}, nil
}

// Len reports the number of agents currently in the flock.
func (f *Flock) Len() int { return len(f.Agents) }
