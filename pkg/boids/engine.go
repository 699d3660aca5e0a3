package boids

import (
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/spatial"
)

// Engine runs one tick of the update algorithm over a Flock. It owns
// no state beyond the scratch buffers it reuses across ticks, to
// avoid an allocation per tick at the flock sizes this simulator
// targets (up to a few thousand agents).
type Engine struct {
	visited map[pairKey]struct{}
}

// NewEngine returns an Engine ready to tick flocks of any size.
func NewEngine() *Engine {
	return &Engine{visited: make(map[pairKey]struct{})}
}

// pairKey is an unordered pair (min(i,j), max(i,j)) used to dedup
// pairwise scoring so each pair is scored at most once per tick.
type pairKey struct{ lo, hi int }

func makePairKey(i, j int) pairKey {
	if i < j {
		return pairKey{i, j}
	}
	return pairKey{j, i}
}

// Tick advances flock by one step. It is total over a validly
// constructed Flock: it never returns an error.
func (e *Engine) Tick(flock *Flock) {
	n := flock.Len()
	if n == 0 {
		return
	}
	p := flock.Params

	for i := range flock.Agents {
		flock.Agents[i].Acceleration = geometry.Zero3
		flock.Agents[i].NeighborVelocity = geometry.Zero3
	}

	ids := make([]int, n)
	positions := make([]geometry.Vector3, n)
	for i, a := range flock.Agents {
		ids[i] = a.ID
		positions[i] = a.Position
	}
	index := spatial.Build(ids, positions)

	for k := range e.visited {
		delete(e.visited, k)
	}

	e.scorePairs(flock, index)
	e.applySelfRules(flock)
}

// scorePairs walks each agent's nearest neighbors in nondecreasing
// distance, stopping at max_neighbors or cohesion_range, and scores
// each unvisited pair exactly once.
func (e *Engine) scorePairs(flock *Flock, index *spatial.Index) {
	p := flock.Params
	cohesionSqr := p.CohesionRange * p.CohesionRange

	// Cap the requested neighbor count at the number of other agents in
	// the flock: max_neighbors may be UnboundedNeighbors (math.MaxInt),
	// which would otherwise overflow or ask the index for a heap far
	// larger than the flock itself.
	k := p.MaxNeighbors
	if maxPossible := flock.Len() - 1; k > maxPossible {
		k = maxPossible
	}

	for i := range flock.Agents {
		agent := flock.Agents[i]
		neighbors := index.Nearest(agent.Position, k)

		count := 0
		skippedSelf := false
		for _, nb := range neighbors {
			if !skippedSelf && nb.ID == agent.ID {
				skippedSelf = true
				continue
			}
			if nb.Distance > cohesionSqr {
				break
			}
			if count >= p.MaxNeighbors {
				break
			}
			count++

			key := makePairKey(agent.ID, nb.ID)
			if _, seen := e.visited[key]; seen {
				continue
			}
			e.visited[key] = struct{}{}

			e.scorePair(flock, agent.ID, nb.ID)
		}
	}
}

// scorePair applies the separation or cohesion+alignment contribution
// for one accepted, not-yet-visited pair (i,j).
func (e *Engine) scorePair(flock *Flock, i, j int) {
	p := flock.Params
	ai := flock.Agents[i]
	aj := flock.Agents[j]

	d := aj.Position.Sub(ai.Position)
	r := d.Norm()

	switch {
	case r <= p.SeparationRange && p.SeparationRange > 0:
		t := (p.SeparationRange - r) / p.SeparationRange
		f := d.Scale(-(t * t * 1e-2))
		flock.Agents[i].Acceleration = flock.Agents[i].Acceleration.Add(f)
		flock.Agents[j].Acceleration = flock.Agents[j].Acceleration.Sub(f)

	case r <= p.CohesionRange && p.CohesionRange > p.SeparationRange:
		t := (p.CohesionRange - r) / (p.CohesionRange - p.SeparationRange)
		f := d.Scale(t * t * 1e-4)
		flock.Agents[i].Acceleration = flock.Agents[i].Acceleration.Add(f)
		flock.Agents[j].Acceleration = flock.Agents[j].Acceleration.Sub(f)

		a := t * t * 1e-2
		flock.Agents[i].NeighborVelocity = flock.Agents[i].NeighborVelocity.Add(aj.Velocity.Scale(a))
		flock.Agents[j].NeighborVelocity = flock.Agents[j].NeighborVelocity.Add(ai.Velocity.Scale(a))
	}
}

// applySelfRules runs the per-agent update steps, in order, for every
// agent: attraction, alignment, coherence, integrate velocity and
// position, then push the resulting pose.
func (e *Engine) applySelfRules(flock *Flock) {
	p := flock.Params
	for i := range flock.Agents {
		a := &flock.Agents[i]

		applyAttraction(a, p)
		applyAlignment(a, p)
		applyCoherence(a, p)

		a.Velocity = a.Velocity.Add(a.Acceleration)
		a.Velocity = clampSpeed(a.Velocity, p.MinSpeed, p.MaxSpeed)
		a.Position = a.Position.Add(a.Velocity)

		pushPose(a)
	}
}

// applyAttraction pulls an agent toward the configured attraction
// center once it strays past attraction_min_range. A min range of
// NoAttraction (math.MaxFloat64) makes the guard below false for any
// finite distance, disabling the rule.
func applyAttraction(a *Agent, p Params) {
	delta := p.AttractionCenter.Sub(a.Position)
	d := delta.Norm()
	if d > 0 && d >= p.AttractionMinRange {
		strength := (d - p.AttractionMinRange)
		a.Acceleration = a.Acceleration.Add(delta.Scale(1 / d).Scale(strength * strength * 1e-3))
	}
}

// applyAlignment blends velocity direction toward the accumulated
// neighbor direction, preserving speed.
func applyAlignment(a *Agent, p Params) {
	speed := a.Velocity.Norm()
	neighborSpeed := a.NeighborVelocity.Norm()
	if speed <= 0 || neighborSpeed <= 0 {
		return
	}
	uv := a.Velocity.Scale(1 / speed)
	un := a.NeighborVelocity.Scale(1 / neighborSpeed)
	u := geometry.Slerp(uv, un, p.AlignmentStrength)
	target := u.Scale(speed)
	a.Acceleration = a.Acceleration.Add(target.Sub(a.Velocity))
}

// applyCoherence bends the acceleration back toward the current
// heading.
func applyCoherence(a *Agent, p Params) {
	accelMag := a.Acceleration.Norm()
	speed := a.Velocity.Norm()
	if accelMag <= 0 || speed <= 0 {
		return
	}
	ua := a.Acceleration.Scale(1 / accelMag)
	uv := a.Velocity.Scale(1 / speed)
	u := geometry.Slerp(ua, uv, p.CoherenceStrength)
	a.Acceleration = u.Scale(accelMag)
}

// clampSpeed rescales v to have magnitude in [minSpeed, maxSpeed],
// preserving direction. Behavior is undefined if v is the zero
// vector; no shipped preset reaches that state.
func clampSpeed(v geometry.Vector3, minSpeed, maxSpeed float64) geometry.Vector3 {
	speed := v.Norm()
	if speed <= 0 {
		return v
	}
	clamped := speed
	if clamped < minSpeed {
		clamped = minSpeed
	}
	if clamped > maxSpeed {
		clamped = maxSpeed
	}
	return v.Scale(clamped / speed)
}

// pushPose pushes the agent's new translation and the rotation from
// canonical "up" to its velocity direction to the render adapter, if
// one is attached.
func pushPose(a *Agent) {
	if a.Pose == nil {
		return
	}
	a.Pose.SetLocalTranslation(a.Position)
	up := geometry.Vector3{Y: 1}
	a.Pose.SetLocalRotation(geometry.RotationBetween(up, a.Velocity))
}
