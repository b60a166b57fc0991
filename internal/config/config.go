// Package config collects the runtime settings: window, roster, seed and the
// JSON-serialisable tuning that drives the flock and the physics engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"fortio.org/log"
	"github.com/joho/godotenv"

	"github.com/olivierh59500/parasites-go/internal/flock"
	"github.com/olivierh59500/parasites-go/internal/verly"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Environment variables read by Load, after the optional .env file.
const (
	EnvWidth   = "PARASITES_WIDTH"
	EnvHeight  = "PARASITES_HEIGHT"
	EnvBoids   = "PARASITES_BOIDS"
	EnvSeed    = "PARASITES_SEED"
	EnvWander  = "PARASITES_WANDER"
	EnvTuning  = "PARASITES_TUNING"
	EnvCloth   = "PARASITES_CLOTH"
	EnvFPS     = "PARASITES_FPS"
	EnvDotFile = ".env"
)

type Config struct {
	Width, Height int
	Boids         int
	Seed          int64
	FPS           int
	Wander        string
	TuningPath    string
	Cloth         bool
	Debug         bool
	Tuning        Tuning
}

// Default is 60 boids at 60 FPS on a 1280x720 window.
func Default() Config {
	return Config{
		Width:      1280,
		Height:     720,
		Boids:      60,
		FPS:        60,
		Wander:     flock.WanderRandom,
		TuningPath: "tuning.json",
		Tuning:     DefaultTuning(),
	}
}

// Load starts from Default, applies the .env file if present and then the
// PARASITES_* environment. A tuning file named by the environment is loaded too.
func Load() (Config, error) {
	c := Default()
	if err := godotenv.Load(EnvDotFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("load %s: %w", EnvDotFile, err)
		}
	} else {
		log.Infof("Loaded environment from %s", EnvDotFile)
	}

	if err := envInt(EnvWidth, &c.Width); err != nil {
		return c, err
	}
	if err := envInt(EnvHeight, &c.Height); err != nil {
		return c, err
	}
	if err := envInt(EnvBoids, &c.Boids); err != nil {
		return c, err
	}
	if err := envInt(EnvFPS, &c.FPS); err != nil {
		return c, err
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvSeed, v, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvCloth); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvCloth, v, err)
		}
		c.Cloth = b
	}
	if v, ok := os.LookupEnv(EnvWander); ok {
		c.Wander = v
	}
	if v, ok := os.LookupEnv(EnvTuning); ok {
		c.TuningPath = v
		t, err := LoadTuning(v)
		if err != nil {
			return c, err
		}
		c.Tuning = t
	}
	return c, nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
	}
	*dst = n
	return nil
}

// ResolveSeed picks a time-based seed when none was configured.
func (c *Config) ResolveSeed() int64 {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c.Seed
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Boids < 0 {
		return fmt.Errorf("%w: boids %d", ErrInvalid, c.Boids)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	if c.Wander != flock.WanderRandom && c.Wander != flock.WanderPerlin {
		return fmt.Errorf("%w: wander %q (want %s or %s)", ErrInvalid, c.Wander, flock.WanderRandom, flock.WanderPerlin)
	}
	return c.Tuning.Validate()
}

// EngineOptions maps the tuning onto the physics engine.
func (c Config) EngineOptions() verly.Options {
	t := c.Tuning
	return verly.Options{
		Iterations:      t.Iterations,
		Stiffness:       t.Stiffness,
		InteractRadius:  t.InteractRadius,
		FPS:             c.FPS,
		SpringFrequency: t.SpringFrequency,
		SpringDamping:   t.SpringDamping,
	}
}
