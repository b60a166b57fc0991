package flock

import (
	"math"

	"github.com/olivierh59500/parasites-go/internal/vec"
)

// Agent is the read-only view of a boid that neighbours steer against.
type Agent struct {
	Pos, Vel vec.Vector2
}

// Steering computes the flocking forces for one boid.
type Steering struct {
	self        *Boid
	wanderTheta float64
	wander      WanderSource
}

// steer turns a desired direction into a force: scale to max speed,
// subtract the current velocity, clamp to max force.
func (s *Steering) steer(desired vec.Vector2) vec.Vector2 {
	b := s.self
	return desired.SetMag(b.MaxSpeed).Sub(b.Vel).Limit(b.MaxForce)
}

func (s *Steering) Seek(target vec.Vector2) vec.Vector2 {
	return s.steer(target.Sub(s.self.Pos))
}

// Flee pushes away from target while it is inside the flee radius.
func (s *Steering) Flee(target vec.Vector2) vec.Vector2 {
	r := s.self.params.FleeRadius
	if vec.DistanceSquared(s.self.Pos, target) >= r*r {
		return vec.Zero()
	}
	return s.Seek(target).Mult(-1)
}

// separationPush is the contribution of one neighbour: the unit vector away from
// it, divided by the distance between them.
func separationPush(own, other vec.Vector2) vec.Vector2 {
	diff := own.Sub(other)
	return diff.Normalize().Div(diff.Mag())
}

func (s *Steering) Separate(agents []Agent) vec.Vector2 {
	desired := s.self.Radius * s.self.params.SeparationFactor
	sum := vec.Zero()
	count := 0
	for _, a := range agents {
		d := vec.DistanceSquared(s.self.Pos, a.Pos)
		if d > 0 && d < desired*desired {
			sum = sum.Add(separationPush(s.self.Pos, a.Pos))
			count++
		}
	}
	if count == 0 {
		return vec.Zero()
	}
	return s.steer(sum.Div(float64(count)))
}

func (s *Steering) Align(agents []Agent) vec.Vector2 {
	r := s.self.params.AlignRadius
	sum := vec.Zero()
	count := 0
	for _, a := range agents {
		d := vec.DistanceSquared(s.self.Pos, a.Pos)
		if d > 0 && d < r*r {
			sum = sum.Add(a.Vel)
			count++
		}
	}
	if count == 0 {
		return vec.Zero()
	}
	return s.steer(sum.Div(float64(count)))
}

func (s *Steering) Cohesion(agents []Agent) vec.Vector2 {
	r := s.self.params.CohesionRadius
	sum := vec.Zero()
	count := 0
	for _, a := range agents {
		d := vec.DistanceSquared(s.self.Pos, a.Pos)
		if d > 0 && d < r*r {
			sum = sum.Add(a.Pos)
			count++
		}
	}
	if count == 0 {
		return vec.Zero()
	}
	return s.steer(sum.Div(float64(count)).Sub(s.self.Pos))
}

// Wander seeks a point on a circle projected ahead of the boid. The angle on the
// circle drifts a little every frame.
func (s *Steering) Wander() vec.Vector2 {
	b := s.self
	p := b.params
	s.wanderTheta += s.wander.Delta(p.WanderChange)

	ahead := b.Pos.Add(b.Vel.SetMag(p.WanderDistance))
	h := b.Vel.Heading()
	offset := vec.V(
		p.WanderRadius*math.Cos(s.wanderTheta+h),
		p.WanderRadius*math.Sin(s.wanderTheta+h),
	)
	return s.Seek(ahead.Add(offset))
}

// WanderTheta is the current wander angle offset.
func (s *Steering) WanderTheta() float64 { return s.wanderTheta }
