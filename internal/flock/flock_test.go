package flock

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivierh59500/parasites-go/internal/vec"
	"github.com/olivierh59500/parasites-go/internal/verly"
)

const eps = 1e-9

func newTestBoid(t *testing.T, pos, vel vec.Vector2) *Boid {
	t.Helper()
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	b := NewBoid(pos, &p, verly.New(verly.DefaultOptions()), rng, NewRandomWalk(rng))
	b.Vel = vel
	return b
}

func finite(t *testing.T, name string, v vec.Vector2) {
	t.Helper()
	if !v.IsFinite() {
		t.Fatalf("%s is not finite: %v", name, v)
	}
}

func TestFleeOutsideRadiusIsZero(t *testing.T) {
	b := newTestBoid(t, vec.V(0, 0), vec.V(1, 0))
	r := b.params.FleeRadius
	for _, d := range []float64{r, r + 0.001, 2 * r, 1000} {
		if got := b.Steering.Flee(vec.V(d, 0)); !got.IsZero() {
			t.Fatalf("flee at d=%f = %v, want zero", d, got)
		}
	}
}

func TestFleeInsideRadiusPointsAway(t *testing.T) {
	b := newTestBoid(t, vec.V(0, 0), vec.Zero())
	r := b.params.FleeRadius
	for _, d := range []float64{0.5, 10, r / 2, r - 0.001} {
		target := vec.V(d, 0)
		got := b.Steering.Flee(target)
		if got.IsZero() {
			t.Fatalf("flee at d=%f is zero", d)
		}
		if got.X >= 0 {
			t.Fatalf("flee at d=%f = %v, want pointing away from target (negative x)", d, got)
		}
		if got.Mag() > b.MaxForce+eps {
			t.Fatalf("flee magnitude %f over max force", got.Mag())
		}
	}
}

func TestSeparationPushFallsOffWithDistance(t *testing.T) {
	own := vec.V(0, 0)
	near := separationPush(own, vec.V(3, 0))
	far := separationPush(own, vec.V(12, 0))
	if near.Mag() <= far.Mag() {
		t.Fatalf("closer neighbour push %f not larger than farther %f", near.Mag(), far.Mag())
	}
	if math.Abs(near.Mag()-1.0/3) > eps {
		t.Fatalf("push magnitude %f, want 1/3", near.Mag())
	}
	if near.X >= 0 {
		t.Fatalf("push %v should point away from neighbour", near)
	}
}

func TestSeparateSteersAway(t *testing.T) {
	b := newTestBoid(t, vec.V(100, 100), vec.Zero())
	got := b.Steering.Separate([]Agent{b.Agent(), {Pos: vec.V(110, 100)}})
	if got.X >= 0 {
		t.Fatalf("separate = %v, want negative x", got)
	}
	if got := b.Steering.Separate([]Agent{b.Agent(), {Pos: vec.V(200, 100)}}); !got.IsZero() {
		t.Fatalf("separate beyond range = %v, want zero", got)
	}
}

func TestAlignMatchesNeighbourHeading(t *testing.T) {
	b := newTestBoid(t, vec.V(100, 100), vec.Zero())
	got := b.Steering.Align([]Agent{b.Agent(), {Pos: vec.V(120, 100), Vel: vec.V(0, 2)}})
	if got.Y <= 0 || math.Abs(got.X) > eps {
		t.Fatalf("align = %v, want +y", got)
	}
	if got := b.Steering.Align([]Agent{{Pos: vec.V(160, 100), Vel: vec.V(0, 2)}}); !got.IsZero() {
		t.Fatalf("align beyond range = %v, want zero", got)
	}
}

func TestCohesionSteersToCentroid(t *testing.T) {
	b := newTestBoid(t, vec.V(100, 100), vec.Zero())
	got := b.Steering.Cohesion([]Agent{b.Agent(), {Pos: vec.V(100, 120)}})
	if got.Y <= 0 {
		t.Fatalf("cohesion = %v, want +y", got)
	}
	if got := b.Steering.Cohesion([]Agent{{Pos: vec.V(100, 140)}}); !got.IsZero() {
		t.Fatalf("cohesion beyond range = %v, want zero", got)
	}
}

func TestCoincidentAgentsStayFinite(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(3))
	e := verly.New(verly.DefaultOptions())
	a := NewBoid(vec.V(50, 50), &p, e, rng, NewRandomWalk(rng))
	b := NewBoid(vec.V(50, 50), &p, e, rng, NewRandomWalk(rng))
	a.Vel, b.Vel = vec.Zero(), vec.Zero()
	roster := []Agent{a.Agent(), b.Agent()}

	for _, boid := range []*Boid{a, b} {
		sep := boid.Steering.Separate(roster)
		ali := boid.Steering.Align(roster)
		coh := boid.Steering.Cohesion(roster)
		finite(t, "separate", sep)
		finite(t, "align", ali)
		finite(t, "cohesion", coh)
		if !sep.IsZero() || !ali.IsZero() || !coh.IsZero() {
			t.Fatalf("coincident agents produced forces: %v %v %v", sep, ali, coh)
		}
		boid.ApplyFlock(roster, verly.Pointer{})
		finite(t, "acceleration", boid.Acc)
	}
}

func TestWanderStaysBounded(t *testing.T) {
	b := newTestBoid(t, vec.V(300, 300), vec.V(1, 0))
	prev := b.Steering.WanderTheta()
	for i := 0; i < 500; i++ {
		f := b.Steering.Wander()
		finite(t, "wander", f)
		if f.Mag() > b.MaxForce+eps {
			t.Fatalf("wander magnitude %f over max force", f.Mag())
		}
		theta := b.Steering.WanderTheta()
		if math.Abs(theta-prev) > b.params.WanderChange+eps {
			t.Fatalf("wander angle jumped %f", theta-prev)
		}
		prev = theta
	}
}

func TestWanderSources(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, kind := range []string{WanderRandom, WanderPerlin} {
		src, err := NewWanderSource(kind, rng)
		if err != nil {
			t.Fatalf("NewWanderSource(%q): %v", kind, err)
		}
		for i := 0; i < 200; i++ {
			if d := src.Delta(0.1); math.Abs(d) > 0.1+eps {
				t.Fatalf("%s delta %f outside ±0.1", kind, d)
			}
		}
	}
	if _, err := NewWanderSource("brownian", rng); err == nil {
		t.Fatal("expected error for unknown wander source")
	}
}

func TestBoundaries(t *testing.T) {
	const w, h = 800.0, 600.0

	b := newTestBoid(t, vec.V(0, h/2), vec.Zero())
	got := b.BoundaryForce(w, h)
	if got.X <= 0 {
		t.Fatalf("boundary force at left edge = %v, want positive x", got)
	}
	if got.Mag() > b.params.BoundaryForce+eps {
		t.Fatalf("boundary force %f over limit", got.Mag())
	}

	b = newTestBoid(t, vec.V(w/2, h/2), vec.V(2, 1))
	if got := b.BoundaryForce(w, h); !got.IsZero() {
		t.Fatalf("boundary force at center = %v, want zero", got)
	}

	b = newTestBoid(t, vec.V(w, h), vec.Zero())
	got = b.BoundaryForce(w, h)
	if got.X >= 0 || got.Y >= 0 {
		t.Fatalf("boundary force at bottom-right corner = %v, want up-left", got)
	}

	b = newTestBoid(t, vec.V(0, h/2), vec.Zero())
	b.Boundaries(w, h)
	if b.Acc.X <= 0 {
		t.Fatalf("Boundaries did not apply force: acc %v", b.Acc)
	}
}

func TestUpdateIntegratesAndClearsAcceleration(t *testing.T) {
	b := newTestBoid(t, vec.V(10, 10), vec.V(1, 0))
	b.ApplyForce(vec.V(0, 1))
	b.Update()
	if b.Pos != vec.V(11, 11) {
		t.Fatalf("pos = %v, want (11,11)", b.Pos)
	}
	if !b.Acc.IsZero() {
		t.Fatalf("acc not cleared: %v", b.Acc)
	}
	if got := b.Tail.Head().Pos; got != b.Pos {
		t.Fatalf("tail head %v not pinned to boid %v", got, b.Pos)
	}

	b.ApplyForce(vec.V(100, 0))
	b.Update()
	if got := b.Vel.Mag(); got > b.MaxSpeed+eps {
		t.Fatalf("speed %f over max", got)
	}
}

func TestTailShape(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(5))
	e := verly.New(verly.DefaultOptions())
	for i := 0; i < 50; i++ {
		b := NewBoid(vec.V(10, 10), &p, e, rng, NewRandomWalk(rng))
		n := len(b.Tail.Points())
		if n < p.MinSegments || n >= p.MaxSegments {
			t.Fatalf("segments %d outside [%d,%d)", n, p.MinSegments, p.MaxSegments)
		}
		if b.Tail.Gap < float64(p.MinGap) || b.Tail.Gap >= float64(p.MaxGap) {
			t.Fatalf("gap %f outside [%d,%d)", b.Tail.Gap, p.MinGap, p.MaxGap)
		}
		if !b.Tail.Head().Pinned {
			t.Fatal("tail head not pinned")
		}
	}
}

func TestTickReadsStartOfTickRoster(t *testing.T) {
	p := DefaultParams()
	p.Weights.Wander = 0
	rng := rand.New(rand.NewSource(9))
	e := verly.New(verly.DefaultOptions())
	f, err := New(0, 800, 600, p, e, rng, WanderRandom)
	if err != nil {
		t.Fatal(err)
	}
	// a moves into b's separation range during its own update; b must not see that.
	a := NewBoid(vec.V(400, 300), &f.params, e, rng, NewRandomWalk(rng))
	b := NewBoid(vec.V(420, 300), &f.params, e, rng, NewRandomWalk(rng))
	a.Vel, b.Vel = vec.V(3, 0), vec.Zero()
	f.Boids = []*Boid{a, b}
	f.snapshot = make([]Agent, 2)

	roster := []Agent{a.Agent(), b.Agent()}
	w := f.params.Weights
	want := b.Steering.Separate(roster).Mult(w.Separate).
		Add(b.Steering.Align(roster).Mult(w.Align)).
		Add(b.Steering.Cohesion(roster).Mult(w.Cohesion)).
		Limit(b.MaxSpeed)

	f.Tick(FrameInput{Width: 800, Height: 600})

	if math.Abs(b.Vel.X-want.X) > eps || math.Abs(b.Vel.Y-want.Y) > eps {
		t.Fatalf("b velocity %v, want %v from the start-of-tick roster", b.Vel, want)
	}
	if f.Ticks() != 1 || e.Steps() != 1 {
		t.Fatalf("ticks=%d steps=%d, want 1/1", f.Ticks(), e.Steps())
	}
}

func TestTickKeepsFlockFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := verly.New(verly.DefaultOptions())
	f, err := New(60, 800, 600, DefaultParams(), e, rng, WanderPerlin)
	if err != nil {
		t.Fatal(err)
	}
	in := FrameInput{Width: 800, Height: 600, Pointer: verly.Pointer{Pos: vec.V(400, 300), Valid: true}}
	for i := 0; i < 300; i++ {
		f.Tick(in)
	}
	for i, b := range f.Boids {
		finite(t, "pos", b.Pos)
		if b.Vel.Mag() > b.MaxSpeed+eps {
			t.Fatalf("boid %d speed %f over max", i, b.Vel.Mag())
		}
		if got := b.Tail.Head().Pos; got != b.Pos {
			t.Fatalf("boid %d tail head %v detached from %v", i, got, b.Pos)
		}
		for _, pt := range b.Tail.Points() {
			finite(t, "tail point", pt.Pos)
		}
	}
}

func TestResetAndSwitches(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	e := verly.New(verly.DefaultOptions())
	f, err := New(10, 800, 600, DefaultParams(), e, rng, WanderRandom)
	if err != nil {
		t.Fatal(err)
	}
	f.Tick(FrameInput{Width: 800, Height: 600})
	if err := f.Reset(800, 600); err != nil {
		t.Fatal(err)
	}
	if len(f.Boids) != 10 || len(e.Entities()) != 10 {
		t.Fatalf("after reset: %d boids, %d entities", len(f.Boids), len(e.Entities()))
	}
	if f.Ticks() != 0 {
		t.Fatalf("ticks not reset: %d", f.Ticks())
	}

	f.SetInteraction(verly.InteractAttract)
	for _, b := range f.Boids {
		if got := b.Tail.Point(1).Interaction; got != verly.InteractAttract {
			t.Fatalf("tail interaction = %v", got)
		}
	}
	if err := f.SetWander(WanderPerlin); err != nil {
		t.Fatal(err)
	}
	if f.Wander() != WanderPerlin {
		t.Fatalf("wander = %q", f.Wander())
	}
	if err := f.SetWander("nope"); err == nil {
		t.Fatal("expected error for unknown wander source")
	}
}

func BenchmarkTick60(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	f, err := New(60, 1280, 720, DefaultParams(), verly.New(verly.DefaultOptions()), rng, WanderRandom)
	if err != nil {
		b.Fatal(err)
	}
	in := FrameInput{Width: 1280, Height: 720}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Tick(in)
	}
}

func TestNewBoidSpawnsWithinMaxSpeed(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := NewBoid(vec.V(0, 300), &p, verly.New(verly.DefaultOptions()), rng, NewRandomWalk(rng))
		if got := b.Vel.Mag(); got > b.MaxSpeed+eps {
			t.Fatalf("seed %d: spawn speed %f over max %f", seed, got, b.MaxSpeed)
		}
		if got := b.BoundaryForce(800, 600); got.X <= 0 {
			t.Fatalf("seed %d: fresh boid at left edge with vel %v got boundary force %v, want positive x", seed, b.Vel, got)
		}
	}
}
