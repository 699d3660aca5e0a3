// Package render defines the narrow seam between the simulation core
// and a host renderer: a scene that vends groups, groups that
// instantiate mesh-backed nodes, and nodes that the engine pushes a
// position and rotation to every tick. The core never imports a
// concrete renderer; pkg/app wires an EbitenScene in.
package render

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// Mesh is an opaque, shared, immutable render asset. The core never
// looks inside one; it only ever hands a Mesh back to Group.AddMesh so
// every agent's Node shares the exact same asset.
type Mesh interface{}

// Node is a render-side scene node an agent pushes its pose to every
// tick. It implements boids.PoseHandle.
type Node interface {
	SetColor(r, g, b float64)
	SetLocalTranslation(p geometry.Vector3)
	SetLocalRotation(rot geometry.Rotation)
}

// Group is a collection of Nodes that can be detached from the scene
// as a unit, used on restart to drop an entire flock's nodes at once.
type Group interface {
	AddMesh(mesh Mesh, uniformScale float64) Node
	Unlink()
}

// Scene is the renderer's entry point: it vends groups and owns the
// one shared mesh every boid instances against.
type Scene interface {
	NewGroup() Group
	SharedMesh() Mesh
}
