package main

import (
	"flag"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// Config controls a stress run. Every field can be set from a STRESS_*
// environment variable; command-line flags win over the environment.
type Config struct {
	Duration       string `config:"STRESS_DURATION"`
	Entities       int    `config:"STRESS_ENTITIES"`
	SpawnRate      int    `config:"STRESS_SPAWN_RATE"`
	SnapshotEvery  int    `config:"STRESS_SNAPSHOT_EVERY"`
	Seed           int64  `config:"STRESS_SEED"`
	Format         string `config:"STRESS_FORMAT"`
	Profile        string `config:"STRESS_PROFILE"`
	GCPauseMetrics bool   `config:"STRESS_GC_PAUSE_METRICS"`
	Verbose        bool   `config:"STRESS_VERBOSE"`
}

func defaultConfig() Config {
	return Config{
		Duration:      "10s",
		Entities:      10000,
		SpawnRate:     50,
		SnapshotEvery: 120,
		Seed:          1,
		Format:        "text",
	}
}

// loadConfig layers defaults, the environment and args, in that order
func loadConfig(args []string) (Config, error) {
	cfg := defaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to read STRESS_* environment")
	}

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.StringVar(&cfg.Duration, "duration", cfg.Duration, "The total duration the test should run for.")
	fs.IntVar(&cfg.Entities, "entities", cfg.Entities, "The initial number of entities to create.")
	fs.IntVar(&cfg.SpawnRate, "spawn-rate", cfg.SpawnRate, "Entities spawned per frame.")
	fs.IntVar(&cfg.SnapshotEvery, "snapshot-every", cfg.SnapshotEvery, "Frames between snapshot round trips, 0 disables them.")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for the workload.")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Report format: text or json.")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Write a cpu or mem profile to the working directory.")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", cfg.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Log registry activity at debug level.")
	if err := fs.Parse(args); err != nil {
		return cfg, eris.Wrap(err, "failed to parse flags")
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Duration)
	if err != nil {
		return eris.Wrapf(err, "invalid duration %q", c.Duration)
	}
	if d <= 0 {
		return eris.Errorf("duration must be positive, got %s", d)
	}

	if c.Entities < 0 || c.SpawnRate < 0 || c.SnapshotEvery < 0 {
		return eris.New("entities, spawn-rate and snapshot-every must not be negative")
	}
	switch c.Format {
	case "text", "json":
	default:
		return eris.Errorf("unknown report format %q", c.Format)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return eris.Errorf("unknown profile mode %q", c.Profile)
	}
	return nil
}

// RunDuration is the parsed Duration, or zero if it is not a positive duration
func (c Config) RunDuration() time.Duration {
	d, err := time.ParseDuration(c.Duration)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
