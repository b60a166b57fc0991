package verly

import (
	"image/color"

	"github.com/olivierh59500/parasites-go/internal/vec"
)

// StickIndex addresses a stick inside the entity that created it.
type StickIndex int

// Stick keeps two points of the same entity at a fixed distance.
type Stick struct {
	A, B   PointIndex
	Length float64
	Color  color.RGBA
	Hidden bool
}

// solve moves the endpoints a fraction (stiffness) of the way toward the rest length.
// Pinned endpoints do not move; the other endpoint absorbs the whole correction.
func (s *Stick) solve(points []Point, stiffness float64) {
	p1 := &points[s.A]
	p2 := &points[s.B]
	if p1.Pinned && p2.Pinned {
		return
	}

	d := p2.Pos.Sub(p1.Pos)
	dist := d.Mag()
	if dist == 0 {
		return
	}
	diff := (s.Length - dist) / dist * stiffness

	w1, w2 := 0.5, 0.5
	switch {
	case p1.Pinned:
		w1, w2 = 0, 1
	case p2.Pinned:
		w1, w2 = 1, 0
	}
	p1.Pos = p1.Pos.Sub(d.Mult(diff * w1))
	p2.Pos = p2.Pos.Add(d.Mult(diff * w2))
}

func (s *Stick) length(points []Point) float64 {
	return vec.Distance(points[s.A].Pos, points[s.B].Pos)
}
