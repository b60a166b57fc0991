// Package flock steers a roster of boids with separation, alignment, cohesion,
// wander and pointer flee, each boid towing a verlet rope tail.
package flock

import (
	"math/rand"

	"fortio.org/log"

	"github.com/olivierh59500/parasites-go/internal/vec"
	"github.com/olivierh59500/parasites-go/internal/verly"
)

// Flock owns the roster and the physics engine its tails live in.
type Flock struct {
	Boids  []*Boid
	Engine *verly.Engine

	params   Params
	rng      *rand.Rand
	wander   string
	snapshot []Agent
	ticks    int
}

// New creates n boids spread over a width x height surface.
func New(n int, width, height float64, p Params, e *verly.Engine, rng *rand.Rand, wander string) (*Flock, error) {
	f := &Flock{
		Engine: e,
		params: p,
		rng:    rng,
		wander: wander,
	}
	if err := f.populate(n, width, height); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flock) populate(n int, width, height float64) error {
	f.Boids = make([]*Boid, 0, n)
	for i := 0; i < n; i++ {
		src, err := NewWanderSource(f.wander, f.rng)
		if err != nil {
			return err
		}
		pos := vec.V(f.rng.Float64()*width, f.rng.Float64()*height)
		f.Boids = append(f.Boids, NewBoid(pos, &f.params, f.Engine, f.rng, src))
	}
	f.snapshot = make([]Agent, n)
	log.Debugf("flock: populated %d boids (%d rope points, wander=%s)", n, f.Engine.PointCount(), f.wander)
	return nil
}

// Reset drops every boid and tail and spawns a fresh roster.
func (f *Flock) Reset(width, height float64) error {
	f.Engine.Clear()
	f.ticks = 0
	return f.populate(len(f.Boids), width, height)
}

// SetWander switches the wander source of every boid.
func (f *Flock) SetWander(kind string) error {
	for _, b := range f.Boids {
		src, err := NewWanderSource(kind, f.rng)
		if err != nil {
			return err
		}
		b.Steering.wander = src
	}
	f.wander = kind
	return nil
}

func (f *Flock) Wander() string { return f.wander }

// SetInteraction changes how every tail reacts to the pointer.
func (f *Flock) SetInteraction(mode verly.Interaction) {
	f.params.TailInteraction = mode
	for _, b := range f.Boids {
		b.Tail.SetInteraction(mode)
	}
}

func (f *Flock) Interaction() verly.Interaction { return f.params.TailInteraction }

func (f *Flock) Params() Params { return f.params }

func (f *Flock) Ticks() int { return f.ticks }

// Tick advances one frame. Every force is computed against the roster as it was
// at the start of the tick; positions change only after all forces are known.
func (f *Flock) Tick(in FrameInput) {
	for i, b := range f.Boids {
		f.snapshot[i] = b.Agent()
	}
	for _, b := range f.Boids {
		b.ApplyFlock(f.snapshot, in.Pointer)
		b.Boundaries(in.Width, in.Height)
	}
	for _, b := range f.Boids {
		b.Update()
	}
	f.Engine.Update()
	f.Engine.Interact(in.Pointer)
	f.ticks++
}

// Render draws boids, then every entity of the engine.
func (f *Flock) Render(s verly.Surface) {
	for _, b := range f.Boids {
		b.Render(s)
	}
	f.Engine.Render(s)
}
