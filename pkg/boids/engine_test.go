package boids

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

func newFlockFromPreset(t *testing.T, name string, seed int64) *Flock {
	t.Helper()
	preset, err := LookupPreset(name)
	if err != nil {
		t.Fatal(err)
	}
	flock, err := NewFlock(preset.Params)
	if err != nil {
		t.Fatal(err)
	}
	Generate(flock, preset.N, preset.Radius, rand.New(rand.NewSource(seed)))
	return flock
}

func boundingSphereRadius(flock *Flock) float64 {
	var maxDist float64
	for _, a := range flock.Agents {
		if d := a.Position.Norm(); d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

func centerOfMass(flock *Flock) geometry.Vector3 {
	sum := geometry.Zero3
	for _, a := range flock.Agents {
		sum = sum.Add(a.Position)
	}
	return sum.Scale(1 / float64(len(flock.Agents)))
}

func minPairwiseDistance(flock *Flock) float64 {
	min := math.Inf(1)
	for i := range flock.Agents {
		for j := i + 1; j < len(flock.Agents); j++ {
			d := flock.Agents[i].Position.DistanceTo(flock.Agents[j].Position)
			if d < min {
				min = d
			}
		}
	}
	return min
}

func assertNoNaN(t *testing.T, flock *Flock) {
	t.Helper()
	for _, a := range flock.Agents {
		for _, v := range []geometry.Vector3{a.Position, a.Velocity, a.Acceleration} {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
				t.Fatalf("agent %d has NaN field: %+v", a.ID, v)
			}
			if math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0) {
				t.Fatalf("agent %d has Inf field: %+v", a.ID, v)
			}
		}
	}
}

func TestEngine_SpeedStaysClamped(t *testing.T) {
	flock := newFlockFromPreset(t, "coherence", 0)
	engine := NewEngine()

	for tick := 0; tick < 50; tick++ {
		engine.Tick(flock)
		for _, a := range flock.Agents {
			speed := a.Velocity.Norm()
			if speed < flock.Params.MinSpeed-1e-9 || speed > flock.Params.MaxSpeed+1e-9 {
				t.Fatalf("tick %d agent %d: speed %v outside [%v,%v]",
					tick, a.ID, speed, flock.Params.MinSpeed, flock.Params.MaxSpeed)
			}
		}
	}
	assertNoNaN(t, flock)
}

func TestEngine_AccumulatorsZeroAtTickStart(t *testing.T) {
	flock := newFlockFromPreset(t, "coherence", 1)
	engine := NewEngine()

	engine.Tick(flock)
	for i := range flock.Agents {
		flock.Agents[i].Acceleration = geometry.Vector3{X: 1, Y: 1, Z: 1}
		flock.Agents[i].NeighborVelocity = geometry.Vector3{X: 1, Y: 1, Z: 1}
	}
	engine.Tick(flock)
	for _, a := range flock.Agents {
		// Acceleration/NeighborVelocity are reset at the start of Tick
		// before any rule runs, so the stale 1,1,1 sentinel must not
		// survive into the first thing a rule reads.
		if a.Acceleration == (geometry.Vector3{X: 1, Y: 1, Z: 1}) {
			t.Fatalf("agent %d: stale acceleration sentinel survived a tick reset", a.ID)
		}
	}
}

func TestEngine_NoConstraintsNeverScoresAPair(t *testing.T) {
	flock := newFlockFromPreset(t, "no_constraints", 0)
	engine := NewEngine()

	for tick := 0; tick < 10; tick++ {
		engine.Tick(flock)
		if len(engine.visited) != 0 {
			t.Fatalf("tick %d: expected no pairs scored under no_constraints, got %d", tick, len(engine.visited))
		}
	}
}

func TestEngine_NoConstraintsSpreadsOut(t *testing.T) {
	preset, _ := LookupPreset("no_constraints")
	preset.N = 10
	flock, _ := NewFlock(preset.Params)
	Generate(flock, preset.N, preset.Radius, rand.New(rand.NewSource(0)))

	before := minPairwiseDistance(flock)
	engine := NewEngine()
	for tick := 0; tick < 50; tick++ {
		engine.Tick(flock)
	}
	after := minPairwiseDistance(flock)

	if after <= before {
		t.Errorf("expected minimum pairwise distance to grow under pure ballistic spread: before=%v after=%v", before, after)
	}
}

func TestEngine_CohesionDriftsLessThanNoConstraints(t *testing.T) {
	cohesion := newFlockFromPreset(t, "cohesion", 0)
	none := newFlockFromPreset(t, "no_constraints", 0)

	cohesionStart := centerOfMass(cohesion)
	noneStart := centerOfMass(none)

	ec := NewEngine()
	en := NewEngine()
	for tick := 0; tick < 100; tick++ {
		ec.Tick(cohesion)
		en.Tick(none)
	}

	cohesionDrift := centerOfMass(cohesion).DistanceTo(cohesionStart)
	noneDrift := centerOfMass(none).DistanceTo(noneStart)

	if cohesionDrift >= noneDrift {
		t.Errorf("expected cohesion preset to drift less than no_constraints: cohesion=%v none=%v",
			cohesionDrift, noneDrift)
	}
}

func TestEngine_CohesionShrinksBoundingSphereOver200Ticks(t *testing.T) {
	flock := newFlockFromPreset(t, "cohesion", 0)
	start := boundingSphereRadius(flock)

	engine := NewEngine()
	for tick := 0; tick < 200; tick++ {
		engine.Tick(flock)
	}
	end := boundingSphereRadius(flock)

	if end >= start {
		t.Errorf("expected bounding sphere to shrink under cohesion: start=%v end=%v", start, end)
	}
}

func TestEngine_SeparationIncreasesDistanceForClosePair(t *testing.T) {
	preset, _ := LookupPreset("separation")
	flock, _ := NewFlock(preset.Params)
	flock.Agents = []Agent{
		{ID: 0, Position: geometry.Vector3{X: 0}},
		{ID: 1, Position: geometry.Vector3{X: 0.5 * preset.Params.SeparationRange}},
	}

	before := flock.Agents[0].Position.DistanceTo(flock.Agents[1].Position)
	NewEngine().Tick(flock)
	after := flock.Agents[0].Position.DistanceTo(flock.Agents[1].Position)

	if after <= before {
		t.Errorf("expected separation to increase distance: before=%v after=%v", before, after)
	}
}

func TestEngine_TwoAgentsSeparationPushesApartAlongX(t *testing.T) {
	preset, _ := LookupPreset("separation")
	flock, _ := NewFlock(preset.Params)
	flock.Agents = []Agent{
		{ID: 0, Position: geometry.Vector3{X: 0}},
		{ID: 1, Position: geometry.Vector3{X: 0.01}},
	}

	before := flock.Agents[1].Position.X - flock.Agents[0].Position.X
	NewEngine().Tick(flock)
	after := flock.Agents[1].Position.X - flock.Agents[0].Position.X

	if after <= before {
		t.Errorf("expected agents to separate further along +x: before=%v after=%v", before, after)
	}
}

func TestEngine_CoherenceBendsAccelerationTowardHeading(t *testing.T) {
	flock := &Flock{Params: Params{
		CoherenceStrength: 0.5, AttractionMinRange: NoAttraction,
		MinSpeed: 0, MaxSpeed: 1,
	}}
	flock.Agents = []Agent{{
		ID:           0,
		Position:     geometry.Zero3,
		Velocity:     geometry.Vector3{X: 0.001},
		Acceleration: geometry.Vector3{Y: 0.001},
	}}

	applyCoherence(&flock.Agents[0], flock.Params)
	a := flock.Agents[0].Acceleration

	if a.X <= 0 || a.Y <= 0 {
		t.Errorf("expected acceleration strictly between +x and +y, got %v", a)
	}
}

func TestEngine_AlignmentTurnsTowardPositiveX(t *testing.T) {
	preset, _ := LookupPreset("alignment")
	flock, _ := NewFlock(preset.Params)
	n := 20
	agents := make([]Agent, n)
	rng := rand.New(rand.NewSource(0))
	for i := range agents {
		agents[i] = Agent{
			ID:       i,
			Position: samplePointInBall(rng, preset.Radius),
			Velocity: geometry.Vector3{X: preset.Params.MaxSpeed},
		}
	}
	flock.Agents = agents

	engine := NewEngine()
	for tick := 0; tick < 10; tick++ {
		engine.Tick(flock)
	}
	for _, a := range flock.Agents {
		if a.Velocity.X <= 0 {
			t.Errorf("agent %d: expected positive x-velocity after alignment, got %v", a.ID, a.Velocity.X)
		}
	}
}

func TestEngine_AttractionMinRangeInfinityDisablesAttraction(t *testing.T) {
	p := Params{AttractionMinRange: NoAttraction, AttractionCenter: geometry.Vector3{X: 100}}
	a := &Agent{Position: geometry.Zero3}
	applyAttraction(a, p)
	if a.Acceleration != geometry.Zero3 {
		t.Errorf("expected zero acceleration contribution, got %v", a.Acceleration)
	}
}

func TestEngine_MaxNeighborsCapsVisitedSetSize(t *testing.T) {
	flock := newFlockFromPreset(t, "neighbors5_small", 0)
	engine := NewEngine()
	limit := 5 * len(flock.Agents) / 2

	for tick := 0; tick < 20; tick++ {
		engine.Tick(flock)
		if len(engine.visited) > limit {
			t.Fatalf("tick %d: visited set size %d exceeds 5*N/2=%d", tick, len(engine.visited), limit)
		}
	}
}

func TestEngine_Determinism(t *testing.T) {
	run := func() []geometry.Vector3 {
		flock := newFlockFromPreset(t, "coherence", 42)
		engine := NewEngine()
		for tick := 0; tick < 20; tick++ {
			engine.Tick(flock)
		}
		out := make([]geometry.Vector3, len(flock.Agents))
		for i, a := range flock.Agents {
			out[i] = a.Position
		}
		return out
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("agent %d diverged between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEngine_PauseIsNoOp(t *testing.T) {
	flock := newFlockFromPreset(t, "cohesion", 0)
	before := make([]Agent, len(flock.Agents))
	copy(before, flock.Agents)

	// "paused": the engine is simply never ticked.
	for i, a := range flock.Agents {
		if a != before[i] {
			t.Fatalf("agent %d mutated without a tick", i)
		}
	}
}
