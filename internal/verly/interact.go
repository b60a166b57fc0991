package verly

import (
	"github.com/olivierh59500/parasites-go/internal/vec"
)

// Pointer is the last known pointer state in surface coordinates.
type Pointer struct {
	Pos     vec.Vector2
	Valid   bool // false until the pointer has been seen
	Pressed bool
}

type dragState struct {
	entity *Entity
	index  PointIndex
	active bool
}

// Interact applies the pointer to every unpinned point within reach, according to
// each point's Interaction.
func (e *Engine) Interact(p Pointer) {
	if !p.Valid {
		e.drag = dragState{}
		return
	}
	e.updateDrag(p)

	r := e.opts.InteractRadius
	r2 := r * r
	for _, en := range e.entities {
		for i := range en.points {
			pt := &en.points[i]
			if pt.Pinned || vec.DistanceSquared(pt.Pos, p.Pos) >= r2 {
				continue
			}
			switch pt.Interaction {
			case InteractAttract:
				e.springToward(pt, p.Pos)
			case InteractRepel:
				away := pt.Pos.Sub(p.Pos)
				if away.IsZero() {
					continue
				}
				e.springToward(pt, p.Pos.Add(away.SetMag(r)))
			}
		}
	}
}

// updateDrag grabs the nearest draggable point on press and carries it until release.
func (e *Engine) updateDrag(p Pointer) {
	if !p.Pressed {
		e.drag = dragState{}
		return
	}
	if !e.drag.active {
		e.drag = e.nearestDraggable(p.Pos)
		if !e.drag.active {
			return
		}
	}
	pt := &e.drag.entity.points[e.drag.index]
	if pt.Pinned {
		e.drag = dragState{}
		return
	}
	pt.Pos = p.Pos
}

func (e *Engine) nearestDraggable(at vec.Vector2) dragState {
	best := dragState{}
	bestD := e.opts.InteractRadius * e.opts.InteractRadius
	for _, en := range e.entities {
		for i := range en.points {
			pt := &en.points[i]
			if pt.Pinned || pt.Interaction != InteractDrag {
				continue
			}
			if d := vec.DistanceSquared(pt.Pos, at); d < bestD {
				bestD = d
				best = dragState{entity: en, index: PointIndex(i), active: true}
			}
		}
	}
	return best
}

// springToward eases pt toward target with the engine's spring. The verlet
// velocity is converted to per-second units and written back through OldPos.
func (e *Engine) springToward(pt *Point, target vec.Vector2) {
	fps := float64(e.opts.FPS)
	vel := pt.Velocity().Mult(fps)
	x, vx := e.spring.Update(pt.Pos.X, vel.X, target.X)
	y, vy := e.spring.Update(pt.Pos.Y, vel.Y, target.Y)
	pt.Pos = vec.V(x, y)
	pt.OldPos = pt.Pos.Sub(vec.V(vx, vy).Div(fps))
}
