package boids

import (
	"math"
	"math/rand"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Generate populates flock with n freshly-sampled agents, replacing
// any existing ones. Positions are drawn uniformly inside a ball of
// the given radius; velocities are drawn in a uniformly random
// direction with speed uniform in [flock.Params.MinSpeed,
// flock.Params.MaxSpeed]. Acceleration and NeighborVelocity start at
// zero.
//
// rng is taken explicitly rather than using the global math/rand
// source so that callers can seed it for deterministic trajectories.
func Generate(flock *Flock, n int, radius float64, rng *rand.Rand) {
	agents := make([]Agent, n)
	for i := range agents {
		agents[i] = Agent{
			ID:       i,
			Position: samplePointInBall(rng, radius),
			Velocity: sampleVelocity(rng, flock.Params.MinSpeed, flock.Params.MaxSpeed),
		}
	}
	flock.Agents = agents
}

// samplePointInBall draws a point uniformly distributed inside a ball
// of the given radius, using the inverse-CDF construction
// r = R*u1^(1/3), theta = acos(2*u2-1), phi = 2*pi*u3.
func samplePointInBall(rng *rand.Rand, radius float64) geometry.Vector3 {
	u1 := rng.Float64()
	u2 := rng.Float64()
	u3 := rng.Float64()

	r := radius * math.Cbrt(u1)
	theta := math.Acos(2*u2 - 1)
	phi := 2 * math.Pi * u3

	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)

	return geometry.Vector3{
		X: r * sinTheta * cosPhi,
		Y: r * sinTheta * sinPhi,
		Z: r * cosTheta,
	}
}

// sampleVelocity draws a uniformly random direction by normalizing a
// vector of three i.i.d. uniform(-1/2, 1/2) components, then scales it
// by a speed uniform in [minSpeed, maxSpeed].
func sampleVelocity(rng *rand.Rand, minSpeed, maxSpeed float64) geometry.Vector3 {
	dir := geometry.Vector3{
		X: rng.Float64() - 0.5,
		Y: rng.Float64() - 0.5,
		Z: rng.Float64() - 0.5,
	}.Unit()

	speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
	return dir.Scale(speed)
}
