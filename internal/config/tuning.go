package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/olivierh59500/parasites-go/internal/flock"
	"github.com/olivierh59500/parasites-go/internal/verly"
)

// Tuning is the part of the configuration that can be saved and reloaded at runtime.
type Tuning struct {
	Radius   float64 `json:"radius"`
	MaxSpeed float64 `json:"max_speed"`
	MaxForce float64 `json:"max_force"`
	Mass     float64 `json:"mass"`

	FleeRadius       float64 `json:"flee_radius"`
	SeparationFactor float64 `json:"separation_factor"`
	AlignRadius      float64 `json:"align_radius"`
	CohesionRadius   float64 `json:"cohesion_radius"`
	BoundaryMargin   float64 `json:"boundary_margin"`
	BoundaryForce    float64 `json:"boundary_force"`

	WanderRadius   float64 `json:"wander_radius"`
	WanderDistance float64 `json:"wander_distance"`
	WanderChange   float64 `json:"wander_change"`

	Weights flock.Weights `json:"weights"`

	MinSegments  int     `json:"min_segments"`
	MaxSegments  int     `json:"max_segments"`
	MinGap       int     `json:"min_gap"`
	MaxGap       int     `json:"max_gap"`
	TailFriction float64 `json:"tail_friction"`
	Interaction  string  `json:"interaction"`

	Iterations      int     `json:"iterations"`
	Stiffness       float64 `json:"stiffness"`
	InteractRadius  float64 `json:"interact_radius"`
	SpringFrequency float64 `json:"spring_frequency"`
	SpringDamping   float64 `json:"spring_damping"`
}

func DefaultTuning() Tuning {
	p := flock.DefaultParams()
	o := verly.DefaultOptions()
	return Tuning{
		Radius:           p.Radius,
		MaxSpeed:         p.MaxSpeed,
		MaxForce:         p.MaxForce,
		Mass:             p.Mass,
		FleeRadius:       p.FleeRadius,
		SeparationFactor: p.SeparationFactor,
		AlignRadius:      p.AlignRadius,
		CohesionRadius:   p.CohesionRadius,
		BoundaryMargin:   p.BoundaryMargin,
		BoundaryForce:    p.BoundaryForce,
		WanderRadius:     p.WanderRadius,
		WanderDistance:   p.WanderDistance,
		WanderChange:     p.WanderChange,
		Weights:          p.Weights,
		MinSegments:      p.MinSegments,
		MaxSegments:      p.MaxSegments,
		MinGap:           p.MinGap,
		MaxGap:           p.MaxGap,
		TailFriction:     p.TailFriction,
		Interaction:      p.TailInteraction.String(),
		Iterations:       o.Iterations,
		Stiffness:        o.Stiffness,
		InteractRadius:   o.InteractRadius,
		SpringFrequency:  o.SpringFrequency,
		SpringDamping:    o.SpringDamping,
	}
}

func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"radius", t.Radius},
		{"max_speed", t.MaxSpeed},
		{"max_force", t.MaxForce},
		{"mass", t.Mass},
		{"flee_radius", t.FleeRadius},
		{"align_radius", t.AlignRadius},
		{"cohesion_radius", t.CohesionRadius},
		{"interact_radius", t.InteractRadius},
		{"separation_factor", t.SeparationFactor},
		{"boundary_force", t.BoundaryForce},
		{"spring_frequency", t.SpringFrequency},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"boundary_margin", t.BoundaryMargin},
		{"wander_radius", t.WanderRadius},
		{"wander_distance", t.WanderDistance},
		{"wander_change", t.WanderChange},
		{"spring_damping", t.SpringDamping},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, p.name, p.v)
		}
	}
	if t.MinSegments < 2 || t.MaxSegments <= t.MinSegments {
		return fmt.Errorf("%w: segments range [%d,%d)", ErrInvalid, t.MinSegments, t.MaxSegments)
	}
	if t.MinGap < 1 || t.MaxGap <= t.MinGap {
		return fmt.Errorf("%w: gap range [%d,%d)", ErrInvalid, t.MinGap, t.MaxGap)
	}
	if t.TailFriction < 0 || t.TailFriction > 1 {
		return fmt.Errorf("%w: tail_friction %v outside [0,1]", ErrInvalid, t.TailFriction)
	}
	if t.Iterations < 1 {
		return fmt.Errorf("%w: iterations %d", ErrInvalid, t.Iterations)
	}
	if t.Stiffness <= 0 || t.Stiffness > 1 {
		return fmt.Errorf("%w: stiffness %v outside (0,1]", ErrInvalid, t.Stiffness)
	}
	if _, ok := verly.ParseInteraction(t.Interaction); !ok {
		return fmt.Errorf("%w: interaction %q", ErrInvalid, t.Interaction)
	}
	return nil
}

// FlockParams maps the tuning onto flock parameters. Colours keep their defaults.
func (t Tuning) FlockParams() flock.Params {
	p := flock.DefaultParams()
	p.Radius = t.Radius
	p.MaxSpeed = t.MaxSpeed
	p.MaxForce = t.MaxForce
	p.Mass = t.Mass
	p.FleeRadius = t.FleeRadius
	p.SeparationFactor = t.SeparationFactor
	p.AlignRadius = t.AlignRadius
	p.CohesionRadius = t.CohesionRadius
	p.BoundaryMargin = t.BoundaryMargin
	p.BoundaryForce = t.BoundaryForce
	p.WanderRadius = t.WanderRadius
	p.WanderDistance = t.WanderDistance
	p.WanderChange = t.WanderChange
	p.Weights = t.Weights
	p.MinSegments = t.MinSegments
	p.MaxSegments = t.MaxSegments
	p.MinGap = t.MinGap
	p.MaxGap = t.MaxGap
	p.TailFriction = t.TailFriction
	if mode, ok := verly.ParseInteraction(t.Interaction); ok {
		p.TailInteraction = mode
	}
	return p
}

// SaveTuning writes t as indented JSON.
func SaveTuning(path string, t Tuning) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write tuning: %w", err)
	}
	return nil
}

// LoadTuning reads a tuning file. Fields missing from the file keep their defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// WriteTuning encodes t as indented JSON to w.
func WriteTuning(w io.Writer, t Tuning) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	return nil
}
