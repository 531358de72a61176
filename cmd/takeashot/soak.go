package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/gallery"
)

var (
	flagDuration  time.Duration
	flagTickRate  int
	flagSeed      uint64
	flagClickRate float64
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Run the simulation headless with random input",
	Long: `Runs the gallery simulation without a window, as fast as possible, for a
span of simulated time. The cursor wanders at random, the left button is
clicked at random and every round is restarted as soon as it ends. A report
of rounds, shots and update timings is printed at the end.

Examples:
  takeashot soak
  takeashot soak --duration 1h --seed 42
  takeashot soak --click-rate 0.5`,
	RunE: runSoakCmd,
}

func init() {
	soakCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Minute, "Simulated time to run for")
	soakCmd.Flags().IntVar(&flagTickRate, "tps", 60, "Simulated updates per second")
	soakCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	soakCmd.Flags().Float64Var(&flagClickRate, "click-rate", 0.05, "Chance of a click on each update")
}

func runSoakCmd(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if flagTickRate <= 0 {
		return fmt.Errorf("--tps must be positive, got %d", flagTickRate)
	}

	seed := flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	report := runSoak(cfg, soakOptions{
		Duration:  flagDuration,
		TickRate:  flagTickRate,
		Seed:      seed,
		ClickRate: flagClickRate,
	}, logger)

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	return report.Generate(os.Stdout, styled)
}

type soakOptions struct {
	Duration  time.Duration
	TickRate  int
	Seed      uint64
	ClickRate float64
}

// runSoak drives a simulation for opts.Duration of simulated time.
func runSoak(cfg config.Config, opts soakOptions, logger *log.Logger) *Report {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	sim := gallery.New(cfg, logger)

	dt := 1.0 / float64(opts.TickRate)
	frames := int(opts.Duration.Seconds() * float64(opts.TickRate))

	report := &Report{
		Duration:  opts.Duration,
		TickRate:  opts.TickRate,
		Seed:      opts.Seed,
		ClickRate: opts.ClickRate,
		Targets:   len(cfg.Targets),
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, frames),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("soak started", "duration", opts.Duration, "frames", frames, "seed", opts.Seed)

	width, height := float32(cfg.Window.Width), float32(cfg.Window.Height)
	holding := false
	state := sim.State()
	startTime := time.Now()

	for range frames {
		input := sim.Input()
		input.MoveCursor(rng.Float32()*width, rng.Float32()*height)
		switch {
		case holding:
			input.Release(gallery.ButtonLeft)
			holding = false
		case rng.Float64() < opts.ClickRate:
			input.Press(gallery.ButtonLeft)
			holding = true
		}
		if state == gallery.GameOver {
			input.Restart()
		}

		updateStart := time.Now()
		sim.Update(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if next := sim.State(); next != state {
			if next == gallery.GameOver {
				report.Rounds++
				report.BestScore = max(report.BestScore, report.lastScore)
			}
			state = next
		}
		report.lastScore = sim.Game().Score
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(frames)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	shots := sim.Shots()
	report.Shots = shots.TotalShots
	report.Hits = shots.TotalHits
	report.Points = shots.TotalPoints
	report.FinalState = sim.State().String()
	report.Entities = sim.Storage().Count()
	report.Archetypes = sim.Storage().CollectStats().ArchetypeCount

	logger.Info("soak finished", "rounds", report.Rounds, "shots", report.Shots, "elapsed", report.TotalTime)
	return report
}
