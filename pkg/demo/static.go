// Package demo implements six non-boid "distribution" scenes that only
// place static points to demonstrate a sampling method. They exercise
// nothing but the render adapter: no Agent, no Flock, no Engine.
package demo

import (
	"math"
	"math/rand"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/render"
)

// Names is the closed set of recognized demo scene names.
var Names = []string{"boid", "cube", "sphere", "sphere_biased1", "sphere_biased2", "distribution"}

// pointCount is the number of points in each sampled point set: the
// cube and sphere scenes place one set, distribution places two, and
// boid places a single marker instead.
const pointCount = 1000

// red and green are the only two tints the demo scenes use.
var (
	red   = [3]float64{1, 0, 0}
	green = [3]float64{0, 1, 0}
)

// Build populates group with the named demo scene's static points,
// sampled with rng. It returns false for an unrecognized name and
// places nothing.
func Build(name string, scene render.Scene, group render.Group, rng *rand.Rand) bool {
	switch name {
	case "boid":
		buildBoidMarker(scene, group)
	case "cube":
		buildCube(scene, group, rng)
	case "sphere":
		buildSphere(scene, group, rng)
	case "sphere_biased1":
		buildSphereBiased1(scene, group, rng)
	case "sphere_biased2":
		buildSphereBiased2(scene, group, rng)
	case "distribution":
		buildDistribution(scene, group, rng)
	default:
		return false
	}
	return true
}

func placePoint(scene render.Scene, group render.Group, p geometry.Vector3, tint [3]float64) {
	node := group.AddMesh(scene.SharedMesh(), 0.005)
	node.SetColor(tint[0], tint[1], tint[2])
	node.SetLocalTranslation(p)
}

// buildBoidMarker places a single, full-size red boid mesh at the
// origin: a static preview of the shared asset every flocking preset
// animates.
func buildBoidMarker(scene render.Scene, group render.Group) {
	node := group.AddMesh(scene.SharedMesh(), 1e-1)
	node.SetColor(red[0], red[1], red[2])
	node.SetLocalTranslation(geometry.Zero3)
}

// buildCube scatters pointCount points uniformly inside a cube of
// side 0.5 centered on the origin.
func buildCube(scene render.Scene, group render.Group, rng *rand.Rand) {
	const side = 0.5
	for i := 0; i < pointCount; i++ {
		p := geometry.Vector3{
			X: rng.Float64()*side - side/2,
			Y: rng.Float64()*side - side/2,
			Z: rng.Float64()*side - side/2,
		}
		placePoint(scene, group, p, red)
	}
}

// buildSphereBiased1 samples r uniformly in [0, R) and theta uniformly
// in [0, pi): a deliberately non-uniform distribution (points bunch
// near the poles, and near the center) used to contrast against
// buildSphere's corrected construction.
func buildSphereBiased1(scene render.Scene, group render.Group, rng *rand.Rand) {
	const radius = 0.5
	for i := 0; i < pointCount; i++ {
		r := radius * rng.Float64()
		theta := math.Pi * rng.Float64()
		phi := 2 * math.Pi * rng.Float64()
		placePoint(scene, group, sphericalToCartesian(r, theta, phi), red)
	}
}

// buildSphereBiased2 fixes the theta bias of buildSphereBiased1 (theta
// is now acos(2u-1), the correct angular distribution) but still draws
// r uniformly in [0, R) rather than R*u^(1/3), so points still bunch
// toward the center.
func buildSphereBiased2(scene render.Scene, group render.Group, rng *rand.Rand) {
	const radius = 0.5
	for i := 0; i < pointCount; i++ {
		r := radius * rng.Float64()
		theta := math.Acos(2*rng.Float64() - 1)
		phi := 2 * math.Pi * rng.Float64()
		placePoint(scene, group, sphericalToCartesian(r, theta, phi), red)
	}
}

// buildSphere is the fully corrected uniform-in-volume ball sample,
// the same construction pkg/boids.Generate uses for flock generation.
func buildSphere(scene render.Scene, group render.Group, rng *rand.Rand) {
	const radius = 0.5
	for i := 0; i < pointCount; i++ {
		r := radius * math.Cbrt(rng.Float64())
		theta := math.Acos(2*rng.Float64() - 1)
		phi := 2 * math.Pi * rng.Float64()
		placePoint(scene, group, sphericalToCartesian(r, theta, phi), red)
	}
}

// buildDistribution draws two half-disks in the z=0 plane, pointCount
// points each: the upper half (y >= 0) red with r = R*sqrt(u), the
// lower half green with r uniform in [0, R), to contrast two
// different radial samplings side by side.
func buildDistribution(scene render.Scene, group render.Group, rng *rand.Rand) {
	const radius = 0.5
	for i := 0; i < pointCount; i++ {
		r := radius * math.Sqrt(rng.Float64())
		theta := math.Pi * rng.Float64()
		p := geometry.Vector3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: 0}
		placePoint(scene, group, p, red)
	}
	for i := 0; i < pointCount; i++ {
		r := radius * rng.Float64()
		theta := math.Pi + math.Pi*rng.Float64()
		p := geometry.Vector3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: 0}
		placePoint(scene, group, p, green)
	}
}

func sphericalToCartesian(r, theta, phi float64) geometry.Vector3 {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	return geometry.Vector3{
		X: r * sinTheta * cosPhi,
		Y: r * sinTheta * sinPhi,
		Z: r * cosTheta,
	}
}
