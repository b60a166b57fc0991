package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"os"

	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/parasites-go/internal/config"
	"github.com/olivierh59500/parasites-go/internal/flock"
	"github.com/olivierh59500/parasites-go/internal/vec"
	"github.com/olivierh59500/parasites-go/internal/verly"
)

// Drawing constants
const (
	ClothCols    = 14
	ClothRows    = 8
	ClothGap     = 12.0
	ClothGravity = 0.25
)

var (
	backgroundColor = color.RGBA{0x0d, 0x0d, 0x19, 0xff}
	pointerColor    = color.RGBA{0xff, 0xff, 0xff, 0x33}
	clothColor      = color.RGBA{0x8a, 0x8a, 0xc8, 0xff}
)

// Simulation is the host driver: it owns the flock and feeds it one FrameInput per tick.
type Simulation struct {
	cfg    config.Config
	ctx    context.Context
	rng    *rand.Rand
	flock  *flock.Flock
	engine *verly.Engine
	input  flock.FrameInput

	Paused  bool
	ShowHUD bool
	cloth   *verly.Entity
}

// NewSimulation builds the flock described by cfg. cfg.Seed must be resolved.
func NewSimulation(ctx context.Context, cfg config.Config) (*Simulation, error) {
	s := &Simulation{
		cfg: cfg,
		ctx: ctx,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		input: flock.FrameInput{
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
		},
		ShowHUD: cfg.Debug,
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild recreates engine and flock from the current tuning.
func (s *Simulation) rebuild() error {
	s.engine = verly.New(s.cfg.EngineOptions())
	f, err := flock.New(s.cfg.Boids, s.input.Width, s.input.Height, s.cfg.Tuning.FlockParams(), s.engine, s.rng, s.cfg.Wander)
	if err != nil {
		return fmt.Errorf("build flock: %w", err)
	}
	s.flock = f
	s.cloth = nil
	if s.cfg.Cloth {
		s.addCloth()
	}
	return nil
}

func (s *Simulation) addCloth() {
	width := float64(ClothCols-1) * ClothGap
	origin := vec.V((s.input.Width-width)/2, 0)
	c := verly.NewCloth(s.engine, origin, ClothCols, ClothRows, ClothGap)
	c.SetGravity(vec.V(0, ClothGravity))
	c.SetInteraction(verly.InteractDrag)
	c.SetStickColor(clothColor)
	s.cloth = c
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	select {
	case <-s.ctx.Done():
		return ebiten.Termination
	default:
	}
	if err := s.handleInput(); err != nil {
		return err
	}
	s.readPointer()
	s.tick()
	return nil
}

func (s *Simulation) tick() {
	if s.Paused {
		return
	}
	s.flock.Tick(s.input)
}

// readPointer copies the cursor into the frame input. The pointer only counts as
// present once it has moved away from the origin ebiten reports before any event.
func (s *Simulation) readPointer() {
	mx, my := ebiten.CursorPosition()
	p := &s.input.Pointer
	if mx != 0 || my != 0 {
		p.Valid = true
	}
	p.Pos = vec.V(float64(mx), float64(my))
	p.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	surf := ebitenSurface{dst: screen}
	s.flock.Render(surf)

	if p := s.input.Pointer; p.Valid {
		surf.StrokeCircle(p.Pos, s.cfg.Tuning.FleeRadius, 1, pointerColor)
	}
	if s.ShowHUD {
		ebitenutil.DebugPrint(screen, s.hud())
	}
}

func (s *Simulation) hud() string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("TPS %0.1f  FPS %0.1f  %s\nboids %d  points %d  tick %d\nwander %s  tails %s\n"+
		"[space] pause [r] reset [m] mode [w] wander [c] cloth [s/l] save/load [h] hud",
		ebiten.ActualTPS(), ebiten.ActualFPS(), state,
		len(s.flock.Boids), s.engine.PointCount(), s.flock.Ticks(),
		s.flock.Wander(), s.flock.Interaction())
}

// Layout follows the window so boundaries use the live surface size.
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.input.Width = float64(outsideWidth)
	s.input.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard input
func (s *Simulation) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Paused = !s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ShowHUD = !s.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.reset(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.cycleInteraction()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		if err := s.toggleWander(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.toggleCloth()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.saveTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if err := s.loadTuning(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) reset() error {
	if err := s.flock.Reset(s.input.Width, s.input.Height); err != nil {
		return fmt.Errorf("reset flock: %w", err)
	}
	s.cloth = nil
	if s.cfg.Cloth {
		s.addCloth()
	}
	log.Infof("Flock reset: %d boids", len(s.flock.Boids))
	return nil
}

func (s *Simulation) cycleInteraction() {
	mode := s.flock.Interaction().Next()
	s.flock.SetInteraction(mode)
	s.cfg.Tuning.Interaction = mode.String()
	log.Infof("Tail interaction: %s", mode)
}

func (s *Simulation) toggleWander() error {
	next := flock.WanderPerlin
	if s.flock.Wander() == flock.WanderPerlin {
		next = flock.WanderRandom
	}
	if err := s.flock.SetWander(next); err != nil {
		return err
	}
	s.cfg.Wander = next
	log.Infof("Wander source: %s", next)
	return nil
}

// toggleCloth adds or removes the hanging cloth. The flock is left alone.
func (s *Simulation) toggleCloth() {
	s.cfg.Cloth = !s.cfg.Cloth
	if s.cfg.Cloth {
		s.addCloth()
		return
	}
	if s.cloth != nil {
		s.engine.Remove(s.cloth)
		s.cloth = nil
	}
}

// saveTuning writes the running tuning to the configured path
func (s *Simulation) saveTuning() {
	if err := config.SaveTuning(s.cfg.TuningPath, s.cfg.Tuning); err != nil {
		log.Errf("Save tuning: %v", err)
		return
	}
	log.Infof("Saved tuning to %s", s.cfg.TuningPath)
}

// loadTuning reads the tuning file and rebuilds the flock with it
func (s *Simulation) loadTuning() error {
	t, err := config.LoadTuning(s.cfg.TuningPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("No tuning file at %s", s.cfg.TuningPath)
			return nil
		}
		log.Errf("Load tuning: %v", err)
		return nil
	}
	s.cfg.Tuning = t
	log.Infof("Loaded tuning from %s", s.cfg.TuningPath)
	return s.rebuild()
}

// ebitenSurface draws verly primitives onto an ebiten image.
type ebitenSurface struct {
	dst *ebiten.Image
}

func (e ebitenSurface) Line(a, b vec.Vector2, width float64, c color.Color) {
	vector.StrokeLine(e.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

func (e ebitenSurface) FillCircle(center vec.Vector2, r float64, c color.Color) {
	vector.DrawFilledCircle(e.dst, float32(center.X), float32(center.Y), float32(r), c, true)
}

func (e ebitenSurface) StrokeCircle(center vec.Vector2, r, width float64, c color.Color) {
	vector.StrokeCircle(e.dst, float32(center.X), float32(center.Y), float32(r), float32(width), c, true)
}
