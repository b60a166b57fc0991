package flock

import (
	"math/rand"

	"github.com/olivierh59500/parasites-go/internal/vec"
	"github.com/olivierh59500/parasites-go/internal/verly"
)

// Boid is one agent of the flock. It owns a rope tail whose head is pinned to it.
type Boid struct {
	Pos, Vel, Acc vec.Vector2

	Radius   float64
	MaxSpeed float64
	MaxForce float64
	Mass     float64

	Steering Steering
	Tail     *verly.Rope

	params *Params
}

// NewBoid places a boid at pos with a random heading and registers its tail on e.
func NewBoid(pos vec.Vector2, p *Params, e *verly.Engine, rng *rand.Rand, wander WanderSource) *Boid {
	b := &Boid{
		Pos:      pos,
		Vel:      vec.Random2D(rng).Mult(10).Limit(p.MaxSpeed),
		Radius:   p.Radius,
		MaxSpeed: p.MaxSpeed,
		MaxForce: p.MaxForce,
		Mass:     p.Mass,
		params:   p,
	}
	b.Steering = Steering{self: b, wander: wander}

	segments := randRange(rng, p.MinSegments, p.MaxSegments)
	gap := randRange(rng, p.MinGap, p.MaxGap)
	b.Tail = verly.NewRope(e, pos, segments, float64(gap))
	b.Tail.SetFriction(p.TailFriction)
	b.Tail.SetGravity(vec.Zero())
	b.Tail.SetStickColor(p.TailColor)
	b.Tail.SetInteraction(p.TailInteraction)
	b.Tail.PinHead(pos)
	return b
}

// randRange returns an int in [lo, hi), or lo when the range is empty.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// Agent snapshots the state neighbours read.
func (b *Boid) Agent() Agent {
	return Agent{Pos: b.Pos, Vel: b.Vel}
}

func (b *Boid) ApplyForce(f vec.Vector2) {
	b.Acc = b.Acc.Add(f)
}

// Update integrates acceleration into velocity and velocity into position, then
// clears the acceleration and drags the tail head along.
func (b *Boid) Update() {
	b.Vel = b.Vel.Add(b.Acc).Limit(b.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel)
	b.Acc = vec.Zero()
	if b.Tail != nil {
		b.Tail.PinHead(b.Pos)
	}
}

// ApplyFlock adds the weighted flocking forces computed against agents.
func (b *Boid) ApplyFlock(agents []Agent, pointer verly.Pointer) {
	w := b.params.Weights
	s := &b.Steering

	b.ApplyForce(s.Separate(agents).Mult(w.Separate))
	b.ApplyForce(s.Align(agents).Mult(w.Align))
	b.ApplyForce(s.Cohesion(agents).Mult(w.Cohesion))
	b.ApplyForce(s.Wander().Mult(w.Wander))
	if pointer.Valid {
		b.ApplyForce(s.Flee(pointer.Pos).Mult(w.Flee))
	}
}

// BoundaryForce steers back inward when the boid is within the margin of an edge.
// Only the violated axes are overridden; elsewhere it returns the zero vector.
func (b *Boid) BoundaryForce(width, height float64) vec.Vector2 {
	m := b.params.BoundaryMargin
	desired := b.Vel
	hit := false
	if b.Pos.X < m {
		desired.X = b.MaxSpeed
		hit = true
	} else if b.Pos.X > width-m {
		desired.X = -b.MaxSpeed
		hit = true
	}
	if b.Pos.Y < m {
		desired.Y = b.MaxSpeed
		hit = true
	} else if b.Pos.Y > height-m {
		desired.Y = -b.MaxSpeed
		hit = true
	}
	if !hit {
		return vec.Zero()
	}
	return desired.SetMag(b.MaxSpeed).Sub(b.Vel).Limit(b.params.BoundaryForce)
}

func (b *Boid) Boundaries(width, height float64) {
	b.ApplyForce(b.BoundaryForce(width, height))
}

// Render draws the body and a short nose along the heading.
func (b *Boid) Render(s verly.Surface) {
	s.FillCircle(b.Pos, b.Radius-1, b.params.BodyColor)
	nose := b.Pos.Add(vec.FromAngle(b.Vel.Heading()).Mult(b.Radius + 2))
	s.Line(b.Pos, nose, 1, b.params.BodyColor)
}
