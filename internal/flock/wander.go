package flock

import (
	"fmt"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// WanderSource produces the per-frame change of a boid's wander angle.
// Results stay within [-change, change].
type WanderSource interface {
	Delta(change float64) float64
}

// Wander source names accepted by NewWanderSource.
const (
	WanderRandom = "random"
	WanderPerlin = "perlin"
)

// RandomWalk draws a uniform offset each frame.
type RandomWalk struct {
	rng *rand.Rand
}

func NewRandomWalk(rng *rand.Rand) *RandomWalk {
	return &RandomWalk{rng: rng}
}

func (w *RandomWalk) Delta(change float64) float64 {
	return (w.rng.Float64()*2 - 1) * change
}

// PerlinWander samples 1D Perlin noise along a private time axis, so the turn
// rate itself drifts smoothly.
type PerlinWander struct {
	noise *perlin.Perlin
	t     float64
	step  float64
}

func NewPerlinWander(rng *rand.Rand) *PerlinWander {
	return &PerlinWander{
		noise: perlin.NewPerlin(2, 2, 3, rng.Int63()),
		t:     rng.Float64() * 1000,
		step:  0.05,
	}
}

func (w *PerlinWander) Delta(change float64) float64 {
	n := w.noise.Noise1D(w.t) * 2
	w.t += w.step
	if n > 1 {
		n = 1
	} else if n < -1 {
		n = -1
	}
	return n * change
}

// NewWanderSource builds the named source.
func NewWanderSource(kind string, rng *rand.Rand) (WanderSource, error) {
	switch kind {
	case WanderRandom, "":
		return NewRandomWalk(rng), nil
	case WanderPerlin:
		return NewPerlinWander(rng), nil
	default:
		return nil, fmt.Errorf("unknown wander source %q", kind)
	}
}
