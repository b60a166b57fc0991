// Package vec provides the 2D vector used by the physics engine and the flock.
// It is a thin layer over r2.Point adding the steering helpers r2 lacks.
package vec

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// Vector2 is a 2D vector with value semantics.
type Vector2 r2.Point

// V creates a new Vector2.
func V(x, y float64) Vector2 {
	return Vector2{x, y}
}

// Zero returns the zero vector.
func Zero() Vector2 {
	return Vector2{}
}

// FromAngle returns the unit vector pointing at angle (radians).
func FromAngle(angle float64) Vector2 {
	return Vector2{math.Cos(angle), math.Sin(angle)}
}

// Random2D returns a unit vector with a random heading drawn from rng.
func Random2D(rng *rand.Rand) Vector2 {
	return FromAngle(rng.Float64() * 2 * math.Pi)
}

// Point returns the underlying r2 point.
func (a Vector2) Point() r2.Point {
	return r2.Point(a)
}

// Add returns a + b.
func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2(a.Point().Add(b.Point()))
}

// Sub returns a - b.
func (a Vector2) Sub(b Vector2) Vector2 {
	return Vector2(a.Point().Sub(b.Point()))
}

// Mult returns a scaled by s.
func (a Vector2) Mult(s float64) Vector2 {
	return Vector2(a.Point().Mul(s))
}

// Div returns a divided by s. Dividing by zero yields the zero vector.
func (a Vector2) Div(s float64) Vector2 {
	if s == 0 {
		return Vector2{}
	}
	return a.Mult(1 / s)
}

// Dot returns a · b.
func (a Vector2) Dot(b Vector2) float64 {
	return a.Point().Dot(b.Point())
}

// Mag returns the length of the vector.
func (a Vector2) Mag() float64 {
	return a.Point().Norm()
}

// MagSq returns the squared length (no sqrt).
func (a Vector2) MagSq() float64 {
	return a.Dot(a)
}

// Normalize returns the unit vector. The zero vector normalizes to itself.
func (a Vector2) Normalize() Vector2 {
	return Vector2(a.Point().Normalize())
}

// SetMag returns a vector with a's direction and length m.
func (a Vector2) SetMag(m float64) Vector2 {
	return a.Normalize().Mult(m)
}

// Limit clamps the length to max, keeping the direction. A negative max is
// treated as zero.
func (a Vector2) Limit(max float64) Vector2 {
	if max <= 0 {
		return Vector2{}
	}
	sq := a.MagSq()
	if sq <= max*max {
		return a
	}
	return a.Mult(max / math.Sqrt(sq))
}

// Heading returns the angle of the vector in radians.
func (a Vector2) Heading() float64 {
	return math.Atan2(a.Y, a.X)
}

// IsZero reports whether both components are zero.
func (a Vector2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// IsFinite reports whether neither component is NaN or infinite.
func (a Vector2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Distance returns the distance between a and b.
func Distance(a, b Vector2) float64 {
	return a.Sub(b).Mag()
}

// DistanceSquared returns the squared distance between a and b.
// Compare it against squared thresholds.
func DistanceSquared(a, b Vector2) float64 {
	return a.Sub(b).MagSq()
}
