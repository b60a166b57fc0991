package verly

import (
	"fmt"
	"image/color"

	"github.com/olivierh59500/parasites-go/internal/vec"
)

// Default point and stick properties for CreatePoint/CreateStick.
const (
	DefaultFriction    = 0.97
	DefaultMass        = 1.0
	DefaultPointRadius = 2.0
)

var DefaultStickColor = color.RGBA{0x35, 0xeb, 0xbe, 0xff}

// Entity owns a flat set of points and the sticks that connect them.
// Sticks reference points by index, so an entity can be copied or moved freely.
type Entity struct {
	points       []Point
	sticks       []Stick
	RenderPoints bool
	PointColor   color.RGBA
}

// CreatePoint appends a point at pos, at rest, and returns its index.
func (en *Entity) CreatePoint(pos vec.Vector2) PointIndex {
	en.points = append(en.points, Point{
		Pos:      pos,
		OldPos:   pos,
		Friction: DefaultFriction,
		Mass:     DefaultMass,
		Radius:   DefaultPointRadius,
	})
	return PointIndex(len(en.points) - 1)
}

// CreateStick connects a and b; the rest length is their current distance.
// It panics if either index does not belong to this entity.
func (en *Entity) CreateStick(a, b PointIndex) StickIndex {
	en.checkPoint(a)
	en.checkPoint(b)
	if a == b {
		panic(fmt.Sprintf("verly: stick endpoints must differ (both %d)", a))
	}
	s := Stick{A: a, B: b, Color: DefaultStickColor}
	s.Length = s.length(en.points)
	en.sticks = append(en.sticks, s)
	return StickIndex(len(en.sticks) - 1)
}

func (en *Entity) checkPoint(i PointIndex) {
	if i < 0 || int(i) >= len(en.points) {
		panic(fmt.Sprintf("verly: point index %d out of range [0,%d)", i, len(en.points)))
	}
}

// Point returns the point at i. It panics on an out-of-range index.
func (en *Entity) Point(i PointIndex) *Point {
	en.checkPoint(i)
	return &en.points[i]
}

// Stick returns the stick at i.
func (en *Entity) Stick(i StickIndex) *Stick {
	if i < 0 || int(i) >= len(en.sticks) {
		panic(fmt.Sprintf("verly: stick index %d out of range [0,%d)", i, len(en.sticks)))
	}
	return &en.sticks[i]
}

// Points exposes the point arena. Callers must not append to it.
func (en *Entity) Points() []Point { return en.points }

// Sticks exposes the stick list.
func (en *Entity) Sticks() []Stick { return en.sticks }

// StickLength returns the current distance between the endpoints of stick i.
func (en *Entity) StickLength(i StickIndex) float64 {
	return en.Stick(i).length(en.points)
}

func (en *Entity) SetGravity(g vec.Vector2) {
	for i := range en.points {
		en.points[i].Gravity = g
	}
}

func (en *Entity) SetFriction(f float64) {
	for i := range en.points {
		en.points[i].Friction = f
	}
}

func (en *Entity) SetInteraction(mode Interaction) {
	for i := range en.points {
		en.points[i].Interaction = mode
	}
}

func (en *Entity) SetStickColor(c color.RGBA) {
	for i := range en.sticks {
		en.sticks[i].Color = c
	}
}

// Update integrates every point once, then relaxes the sticks iterations times.
func (en *Entity) Update(iterations int, stiffness float64) {
	for i := range en.points {
		en.points[i].update()
	}
	for it := 0; it < iterations; it++ {
		for i := range en.sticks {
			en.sticks[i].solve(en.points, stiffness)
		}
	}
}

// Render draws the sticks and, if enabled, the points.
func (en *Entity) Render(s Surface) {
	for i := range en.sticks {
		st := &en.sticks[i]
		if st.Hidden {
			continue
		}
		s.Line(en.points[st.A].Pos, en.points[st.B].Pos, 1, st.Color)
	}
	if !en.RenderPoints {
		return
	}
	for i := range en.points {
		p := &en.points[i]
		s.FillCircle(p.Pos, p.Radius, en.PointColor)
	}
}
