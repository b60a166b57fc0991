package verly

import "github.com/olivierh59500/parasites-go/internal/vec"

// Interaction selects how a point reacts to the pointer.
type Interaction uint8

const (
	InteractNone Interaction = iota
	InteractDrag
	InteractAttract
	InteractRepel
)

func (i Interaction) String() string {
	switch i {
	case InteractDrag:
		return "drag"
	case InteractAttract:
		return "attract"
	case InteractRepel:
		return "repel"
	default:
		return "none"
	}
}

// ParseInteraction maps a name back to its Interaction. Unknown names report false.
func ParseInteraction(name string) (Interaction, bool) {
	for _, i := range []Interaction{InteractNone, InteractDrag, InteractAttract, InteractRepel} {
		if i.String() == name {
			return i, true
		}
	}
	return InteractNone, false
}

// Next cycles through the interaction modes.
func (i Interaction) Next() Interaction {
	return (i + 1) % (InteractRepel + 1)
}

// PointIndex addresses a point inside the entity that created it.
type PointIndex int

// Point is a verlet point mass. Velocity is implicit: Pos - OldPos.
type Point struct {
	Pos, OldPos vec.Vector2
	Gravity     vec.Vector2
	Friction    float64
	Mass        float64
	Radius      float64
	Pinned      bool
	Interaction Interaction
}

// Velocity returns the implicit per-step velocity.
func (p *Point) Velocity() vec.Vector2 {
	return p.Pos.Sub(p.OldPos)
}

// Pin fixes the point where it currently is.
func (p *Point) Pin() {
	p.Pinned = true
	p.OldPos = p.Pos
}

// PinTo moves the point to pos and fixes it there with no residual velocity.
func (p *Point) PinTo(pos vec.Vector2) {
	p.Pos = pos
	p.OldPos = pos
	p.Pinned = true
}

// Unpin releases the point; it resumes integration from rest.
func (p *Point) Unpin() {
	p.Pinned = false
}

// update advances one verlet step. Pinned points never move.
func (p *Point) update() {
	if p.Pinned {
		return
	}
	vel := p.Pos.Sub(p.OldPos).Mult(p.Friction).Add(p.Gravity)
	p.OldPos = p.Pos
	p.Pos = p.Pos.Add(vel)
}
