package boids

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Overrides is an optional, partial replacement for some of a
// preset's Params fields, loaded from a JSON file and validated
// against config_schema.json. Every field is a pointer so an absent
// JSON key leaves the corresponding preset value untouched: a config
// file can only ever narrow or adjust a preset, not stand alone.
type Overrides struct {
	AttractionCenter   *geometry.Vector3 `json:"attractionCenter,omitempty"`
	AttractionMinRange *float64          `json:"attractionMinRange,omitempty"`
	SeparationRange    *float64          `json:"separationRange,omitempty"`
	CohesionRange      *float64          `json:"cohesionRange,omitempty"`
	AlignmentStrength  *float64          `json:"alignmentStrength,omitempty"`
	CoherenceStrength  *float64          `json:"coherenceStrength,omitempty"`
	MaxNeighbors       *int              `json:"maxNeighbors,omitempty"`
	MinSpeed           *float64          `json:"minSpeed,omitempty"`
	MaxSpeed           *float64          `json:"maxSpeed,omitempty"`
}

// Apply returns a copy of base with every non-nil field of o written
// over the corresponding Params field.
func (o Overrides) Apply(base Params) Params {
	p := base
	if o.AttractionCenter != nil {
		p.AttractionCenter = *o.AttractionCenter
	}
	if o.AttractionMinRange != nil {
		p.AttractionMinRange = *o.AttractionMinRange
	}
	if o.SeparationRange != nil {
		p.SeparationRange = *o.SeparationRange
	}
	if o.CohesionRange != nil {
		p.CohesionRange = *o.CohesionRange
	}
	if o.AlignmentStrength != nil {
		p.AlignmentStrength = *o.AlignmentStrength
	}
	if o.CoherenceStrength != nil {
		p.CoherenceStrength = *o.CoherenceStrength
	}
	if o.MaxNeighbors != nil {
		p.MaxNeighbors = *o.MaxNeighbors
	}
	if o.MinSpeed != nil {
		p.MinSpeed = *o.MinSpeed
	}
	if o.MaxSpeed != nil {
		p.MaxSpeed = *o.MaxSpeed
	}
	return p
}

// LoadOverrides reads and schema-validates an optional config file
// layering adjustments on top of a preset's built-in Params. An empty
// configFile is not an error: it simply means no overrides apply.
func LoadOverrides(configFile, schemaFile string) (Overrides, error) {
	if configFile == "" {
		return Overrides{}, nil
	}

	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to compile config schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return Overrides{}, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return Overrides{}, fmt.Errorf("config validation failed: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(b, &o); err != nil {
		return Overrides{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return o, nil
}
