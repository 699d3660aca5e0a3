package boids

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// Preset is a named, fixed parameter bundle that defines one
// demonstration scene. It is a closed tagged union: every preset is a
// fixed entry of presetRegistry (all but no_constraints built by
// scene), so there is no open-ended plugin surface.
type Preset struct {
	Name string

	// N is the agent count, Radius the initial generation-sphere
	// radius (the same initial sphere radius is used for every
	// preset).
	N      int
	Radius float64

	Params Params
}

// initialRadius is the initial sphere radius for generation, constant
// across every preset.
const initialRadius = 0.1

// scene builds the common shape of an "on" preset row: separation_range
// = 1.0*scale, cohesion_range = 5.0*scale, attraction_min_range = 0.1,
// max_speed = 0.1*scale, min_speed = 0.01*scale.
func scene(name string, n int, scale float64, alignment, coherence float64, attraction bool, maxNeighbors int) Preset {
	params := Params{
		SeparationRange:   1.0 * scale,
		CohesionRange:     5.0 * scale,
		AlignmentStrength: alignment,
		CoherenceStrength: coherence,
		MaxSpeed:          0.1 * scale,
		MinSpeed:          0.01 * scale,
		MaxNeighbors:      maxNeighbors,
	}
	if attraction {
		params.AttractionCenter = geometry.Zero3
		params.AttractionMinRange = 0.1
	} else {
		params.AttractionMinRange = NoAttraction
	}
	return Preset{Name: name, N: n, Radius: initialRadius, Params: params}
}

// presetRegistry is the closed enumeration of recognized preset names.
// Successive rows switch on one more rule at a time, by design, so the
// table also reads as the natural structure of a regression suite.
var presetRegistry = map[string]Preset{
	"no_constraints": {
		Name: "no_constraints", N: 1000, Radius: initialRadius,
		Params: Params{AttractionMinRange: NoAttraction, MaxNeighbors: UnboundedNeighbors,
			MaxSpeed: 0.1 * 0.03, MinSpeed: 0.01 * 0.03},
	},
	"cohesion":         scene("cohesion", 100, 0.03, 0, 0, false, UnboundedNeighbors),
	"separation":       scene("separation", 100, 0.03, 0, 0, false, UnboundedNeighbors),
	"alignment":        scene("alignment", 100, 0.03, 0.1, 0, false, UnboundedNeighbors),
	"attraction":       scene("attraction", 100, 0.03, 0.1, 0, true, UnboundedNeighbors),
	"coherence":        scene("coherence", 100, 0.03, 0.1, 0.5, true, UnboundedNeighbors),
	"neighbors5_small": scene("neighbors5_small", 100, 0.03, 0.1, 0.5, true, 5),
	"neighbors5_big":   scene("neighbors5_big", 2000, 0.01, 0.1, 0.5, true, 5),
	"leaders":          scene("leaders", 500, 0.01, 0.1, 0.5, true, 5),
}

// cohesion and separation are "cohesion-only"/"separation-only" rows:
// cohesion must run with separation off (0), while separation keeps
// its own separation on, both with cohesion on. scene() defaults
// SeparationRange to 1.0*scale unconditionally, which is wrong for the
// cohesion row; corrected below rather than threading another
// parameter through scene's signature for a single outlier.
func init() {
	c := presetRegistry["cohesion"]
	c.Params.SeparationRange = 0
	presetRegistry["cohesion"] = c
}

// PresetNames returns the recognized preset names, for building CLI
// usage/help text.
func PresetNames() []string {
	names := make([]string, 0, len(presetRegistry))
	for name := range presetRegistry {
		names = append(names, name)
	}
	return names
}

// LookupPreset returns the named preset, or a *ConfigError if name is
// not one of the recognized set. An unknown name is a fatal startup
// error for any caller that can't fall back to a different registry.
func LookupPreset(name string) (Preset, error) {
	p, ok := presetRegistry[name]
	if !ok {
		return Preset{}, &ConfigError{Reason: "unknown preset name: " + name}
	}
	return p, nil
}
