package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/scenecs/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if err := run(os.Args[1:], log); err != nil {
		log.Fatal().Str("error", eris.ToString(err, true)).Msg("stress test failed")
	}
}

func run(args []string, log zerolog.Logger) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	registryLog := log.Level(level).With().Str("component", "registry").Logger()

	log.Info().Int("entities", cfg.Entities).Msg("populating registry")
	registry, scheduler, counters := newWorkload(cfg, ecs.WithLogger(registryLog))
	log.Info().Int("live", registry.NumEntities()).Msg("population complete")

	report := &Report{
		Duration:       cfg.RunDuration(),
		Entities:       cfg.Entities,
		SpawnRate:      cfg.SpawnRate,
		SnapshotEvery:  cfg.SnapshotEvery,
		Seed:           cfg.Seed,
		GCPauseMetrics: cfg.GCPauseMetrics,
		MemStart:       readMem(),
	}

	log.Info().Dur("duration", cfg.RunDuration()).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunDuration())
	defer cancel()

	start := time.Now()
	report.TotalUpdates, report.UpdateTime.Samples = simulate(ctx, scheduler)
	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.MemEnd = readMem()
	report.Operations = *counters
	report.Registry = registry.CollectStats()
	report.Systems = scheduler.GetStats().Systems

	log.Info().Int64("updates", report.TotalUpdates).Msg("simulation finished")

	if cfg.Format == "text" {
		fmt.Println("--- Stress Test Report ---")
	}
	if err := report.Generate(os.Stdout, cfg.Format); err != nil {
		return err
	}
	if cfg.Format == "text" {
		fmt.Println("--- End of Report ---")
	}
	return nil
}

// simulate runs frames back to back until ctx is done and returns the
// number of frames with the duration of each.
func simulate(ctx context.Context, scheduler *ecs.Scheduler) (int64, []time.Duration) {
	var (
		updates       int64
		samples       []time.Duration
		lastFrameTime = time.Now()
	)
	for {
		select {
		case <-ctx.Done():
			return updates, samples
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			samples = append(samples, time.Since(updateStart))
			updates++
		}
	}
}
