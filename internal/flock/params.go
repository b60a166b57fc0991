package flock

import (
	"image/color"

	"github.com/olivierh59500/parasites-go/internal/verly"
)

// Weights scale each steering behavior before it is added to acceleration.
type Weights struct {
	Separate float64 `json:"separate"`
	Align    float64 `json:"align"`
	Cohesion float64 `json:"cohesion"`
	Wander   float64 `json:"wander"`
	Flee     float64 `json:"flee"`
}

// Params are the per-boid constants shared by the whole flock.
type Params struct {
	Radius   float64
	MaxSpeed float64
	MaxForce float64
	Mass     float64

	FleeRadius       float64
	SeparationFactor float64 // desired separation = SeparationFactor * Radius
	AlignRadius      float64
	CohesionRadius   float64

	BoundaryMargin float64
	BoundaryForce  float64

	WanderRadius   float64
	WanderDistance float64
	WanderChange   float64 // max heading offset change per frame, radians

	Weights Weights

	// Tail segment count and gap are drawn from [Min, Max).
	MinSegments, MaxSegments int
	MinGap, MaxGap           int
	TailFriction             float64
	TailInteraction          verly.Interaction

	BodyColor color.RGBA
	TailColor color.RGBA
}

func DefaultParams() Params {
	return Params{
		Radius:   5,
		MaxSpeed: 3,
		MaxForce: 0.05,
		Mass:     0.2,

		FleeRadius:       100,
		SeparationFactor: 4,
		AlignRadius:      50,
		CohesionRadius:   30,

		BoundaryMargin: 100,
		BoundaryForce:  0.1,

		WanderRadius:   100,
		WanderDistance: 80,
		WanderChange:   0.1,

		Weights: Weights{
			Separate: 2.0,
			Align:    1.2,
			Cohesion: 1.3,
			Wander:   0.5,
			Flee:     50,
		},

		MinSegments:     5,
		MaxSegments:     10,
		MinGap:          5,
		MaxGap:          10,
		TailFriction:    0.75,
		TailInteraction: verly.InteractRepel,

		BodyColor: color.RGBA{0x35, 0xeb, 0x35, 0xff},
		TailColor: color.RGBA{0x35, 0xeb, 0xbe, 0xff},
	}
}

// FrameInput is what the host driver feeds into every tick.
type FrameInput struct {
	Width, Height float64
	Pointer       verly.Pointer
}
