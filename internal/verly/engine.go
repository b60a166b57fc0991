// Package verly is a small position-based physics engine: verlet points joined by
// distance sticks, grouped into entities, with pointer interaction.
package verly

import (
	"github.com/charmbracelet/harmonica"
)

// Options configures an Engine.
type Options struct {
	Iterations      int     // stick relaxation passes per step
	Stiffness       float64 // fraction of the length error corrected per pass, (0,1]
	InteractRadius  float64 // pointer reach in pixels
	FPS             int     // frame rate used to convert verlet velocity for the spring
	SpringFrequency float64
	SpringDamping   float64
}

// DefaultOptions gives a single soft pass per frame at 60 FPS.
func DefaultOptions() Options {
	return Options{
		Iterations:      1,
		Stiffness:       1,
		InteractRadius:  100,
		FPS:             60,
		SpringFrequency: 6.0,
		SpringDamping:   0.5,
	}
}

// Engine is the registry of every entity simulated on one surface.
type Engine struct {
	opts     Options
	entities []*Entity
	spring   harmonica.Spring
	drag     dragState
	steps    int
}

func New(opts Options) *Engine {
	if opts.Iterations < 1 {
		opts.Iterations = 1
	}
	if opts.Stiffness <= 0 || opts.Stiffness > 1 {
		opts.Stiffness = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	return &Engine{
		opts:   opts,
		spring: harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.SpringFrequency, opts.SpringDamping),
	}
}

func (e *Engine) Options() Options { return e.opts }

// NewEntity registers an empty entity.
func (e *Engine) NewEntity() *Entity {
	en := &Entity{}
	e.entities = append(e.entities, en)
	return en
}

func (e *Engine) Entities() []*Entity { return e.entities }

// Steps is the number of Update calls so far.
func (e *Engine) Steps() int { return e.steps }

// Clear drops every entity.
func (e *Engine) Clear() {
	e.entities = nil
	e.drag = dragState{}
}

// Remove unregisters en and reports whether it was registered.
func (e *Engine) Remove(en *Entity) bool {
	for i, cur := range e.entities {
		if cur != en {
			continue
		}
		e.entities = append(e.entities[:i], e.entities[i+1:]...)
		if e.drag.entity == en {
			e.drag = dragState{}
		}
		return true
	}
	return false
}

// Update steps every entity once.
func (e *Engine) Update() {
	for _, en := range e.entities {
		en.Update(e.opts.Iterations, e.opts.Stiffness)
	}
	e.steps++
}

func (e *Engine) Render(s Surface) {
	for _, en := range e.entities {
		en.Render(s)
	}
}

// PointCount totals points across entities.
func (e *Engine) PointCount() int {
	n := 0
	for _, en := range e.entities {
		n += len(en.points)
	}
	return n
}
