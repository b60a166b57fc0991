// parasites - a flock of boids towing verlet rope tails.
//
// Controls:
//
//	Mouse       - Boids flee the pointer; tails react to it (see M)
//	Left drag   - Grab a tail or cloth point in drag mode
//	Space       - Pause/resume
//	R           - Respawn the flock
//	M           - Cycle tail interaction (none, drag, attract, repel)
//	W           - Toggle wander source (random, perlin)
//	C           - Toggle the hanging cloth
//	S/L         - Save/load tuning JSON
//	H           - Toggle HUD
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/olivierh59500/parasites-go/internal/config"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Errf("config: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, newRootCommand(&cfg), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parasites",
		Short: "Flocking boids with soft rope tails",
		Long: `parasites - flocking boids with soft rope tails

Every boid separates, aligns, coheres, wanders and flees the pointer while
towing a verlet rope.

Controls:
  Mouse       - Boids flee the pointer
  Left drag   - Grab a point (drag mode)
  Space       - Pause
  R           - Respawn flock
  M           - Cycle tail interaction
  W           - Toggle wander source
  C           - Toggle cloth
  S/L         - Save/load tuning
  H           - Toggle HUD
  Esc         - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("tuning") {
				t, err := config.LoadTuning(cfg.TuningPath)
				if err != nil {
					return err
				}
				cfg.Tuning = t
			}
			return run(cmd.Context(), *cfg)
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Width, "width", cfg.Width, "Window width")
	f.IntVar(&cfg.Height, "height", cfg.Height, "Window height")
	f.IntVarP(&cfg.Boids, "boids", "n", cfg.Boids, "Number of boids")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = time based)")
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "Target ticks per second")
	f.StringVar(&cfg.Wander, "wander", cfg.Wander, "Wander source: random or perlin")
	f.StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "Tuning JSON file (loaded when given, target of S/L keys)")
	f.BoolVar(&cfg.Cloth, "cloth", cfg.Cloth, "Hang a cloth from the top of the window")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Debug logging and HUD on start")

	tuningCmd := &cobra.Command{
		Use:   "tuning",
		Short: "Print the tuning JSON",
		Long:  "Print the default tuning as JSON, or the file given with --tuning, ready to edit and load back.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := cfg.Tuning
			if cmd.Flags().Changed("tuning") {
				var err error
				if t, err = config.LoadTuning(cfg.TuningPath); err != nil {
					return err
				}
			}
			return config.WriteTuning(cmd.OutOrStdout(), t)
		},
	}
	tuningCmd.Flags().StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "Tuning JSON file to print")
	cmd.AddCommand(tuningCmd)

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.Debug {
		log.SetLogLevel(log.Debug)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	seed := cfg.ResolveSeed()

	sim, err := NewSimulation(ctx, cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Parasites")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	log.Infof("Starting %d boids on %dx%d (seed %d, wander %s)", cfg.Boids, cfg.Width, cfg.Height, seed, cfg.Wander)
	if err := ebiten.RunGame(sim); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
