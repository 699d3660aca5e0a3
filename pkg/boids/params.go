// Package boids implements the core flocking simulation: the flock
// data model, the per-tick update engine, and the preset
// configurations that parameterize it.
package boids

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Params is the tunable rule set for one simulation. A Flock and its
// Params are created together at preset instantiation and never
// change shape afterward; the update engine only mutates Agents.
type Params struct {
	AttractionCenter    geometry.Vector3 `json:"attractionCenter"`
	AttractionMinRange  float64          `json:"attractionMinRange"`
	SeparationRange     float64          `json:"separationRange"`
	CohesionRange       float64          `json:"cohesionRange"`
	AlignmentStrength   float64          `json:"alignmentStrength"`
	CoherenceStrength   float64          `json:"coherenceStrength"`
	MaxNeighbors        int              `json:"maxNeighbors"`
	MinSpeed            float64          `json:"minSpeed"`
	MaxSpeed            float64          `json:"maxSpeed"`
}

// NoAttraction disables the attraction rule: an attraction_min_range
// of math.MaxFloat64 (standing in for +inf) means an agent can never
// be far enough away to trigger it.
const NoAttraction = math.MaxFloat64

// UnboundedNeighbors represents an unlimited max_neighbors: the
// pair-enumeration count check is then never satisfied for any flock
// size this simulator is run at.
const UnboundedNeighbors = math.MaxInt

// ConfigError reports a fatal, startup-time configuration problem: an
// unknown preset name or parameters that violate the Params
// invariants. The tick function itself never returns an error; all
// fallibility lives here, in construction.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("boids: configuration error: %s", e.Reason)
}

// Validate checks the invariants required before a Flock may be
// constructed from these Params: separation_range <= cohesion_range,
// min_speed <= max_speed, alignment_strength and coherence_strength
// in [0,1], and max_neighbors >= 0.
func (p Params) Validate() error {
	if p.SeparationRange > p.CohesionRange {
		return &ConfigError{Reason: fmt.Sprintf(
			"separation_range (%g) cannot exceed cohesion_range (%g)",
			p.SeparationRange, p.CohesionRange)}
	}
	if p.MinSpeed > p.MaxSpeed {
		return &ConfigError{Reason: fmt.Sprintf(
			"min_speed (%g) cannot exceed max_speed (%g)",
			p.MinSpeed, p.MaxSpeed)}
	}
	if p.AlignmentStrength < 0 || p.AlignmentStrength > 1 {
		return &ConfigError{Reason: fmt.Sprintf(
			"alignment_strength (%g) must be in [0,1]", p.AlignmentStrength)}
	}
	if p.CoherenceStrength < 0 || p.CoherenceStrength > 1 {
		return &ConfigError{Reason: fmt.Sprintf(
			"coherence_strength (%g) must be in [0,1]", p.CoherenceStrength)}
	}
	if p.MaxNeighbors < 0 {
		return &ConfigError{Reason: fmt.Sprintf(
			"max_neighbors (%d) cannot be negative", p.MaxNeighbors)}
	}
	return nil
}
