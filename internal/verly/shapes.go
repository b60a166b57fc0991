package verly

import (
	"github.com/olivierh59500/parasites-go/internal/vec"
)

// Rope is a chain of points laid out along +X from its head, one stick per gap.
type Rope struct {
	*Entity
	Segments int
	Gap      float64
}

// NewRope registers a rope of segments points spaced gap apart, starting at origin.
func NewRope(e *Engine, origin vec.Vector2, segments int, gap float64) *Rope {
	en := e.NewEntity()
	for i := 0; i < segments; i++ {
		en.CreatePoint(origin.Add(vec.V(float64(i)*gap, 0)))
	}
	for i := 0; i < segments-1; i++ {
		en.CreateStick(PointIndex(i), PointIndex(i+1))
	}
	return &Rope{Entity: en, Segments: segments, Gap: gap}
}

// Head is the first point of the rope.
func (r *Rope) Head() *Point {
	return r.Point(0)
}

// PinHead fixes the head at pos.
func (r *Rope) PinHead(pos vec.Vector2) {
	r.Head().PinTo(pos)
}

// NewCloth registers a cols x rows grid hanging from its pinned top row.
func NewCloth(e *Engine, origin vec.Vector2, cols, rows int, gap float64) *Entity {
	en := e.NewEntity()
	idx := func(c, r int) PointIndex { return PointIndex(r*cols + c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			en.CreatePoint(origin.Add(vec.V(float64(c)*gap, float64(r)*gap)))
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				en.CreateStick(idx(c, r), idx(c+1, r))
			}
			if r+1 < rows {
				en.CreateStick(idx(c, r), idx(c, r+1))
			}
		}
	}
	for c := 0; c < cols; c++ {
		en.Point(idx(c, 0)).Pin()
	}
	return en
}
