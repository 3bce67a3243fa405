package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/sim"
)

const (
	DefaultSteps       = physics.StepCount
	DefaultBenchRuns   = 5
	DefaultDriftEvery  = 10
	DefaultDriftHeight = 12
	DefaultDriftWidth  = 72
)

// Step count and sample interval are checked against the sentinels of the
// packages that consume them, sim.ErrInvalidSteps and
// metrics.ErrInvalidSampleEvery.
var (
	ErrInvalidRuns  = errors.New("config: bench runs must be at least 1")
	ErrInvalidChart = errors.New("config: drift chart dimensions must be positive")
)

// Config covers the run schedule and reporting only. Bodies and physical
// constants are fixed in package physics.
type Config struct {
	Steps   int         `yaml:"steps"`
	Timing  bool        `yaml:"timing"`
	Verbose bool        `yaml:"verbose"`
	Bench   BenchConfig `yaml:"bench"`
	Drift   DriftConfig `yaml:"drift"`
}

type BenchConfig struct {
	Runs int `yaml:"runs"`
}

type DriftConfig struct {
	Every  int `yaml:"every"`
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Steps: DefaultSteps,
		Bench: BenchConfig{
			Runs: DefaultBenchRuns,
		},
		Drift: DriftConfig{
			Every:  DefaultDriftEvery,
			Height: DefaultDriftHeight,
			Width:  DefaultDriftWidth,
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Steps < 0 {
		return fmt.Errorf("%w: got %d", sim.ErrInvalidSteps, c.Steps)
	}
	if c.Bench.Runs < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRuns, c.Bench.Runs)
	}
	if c.Drift.Every < 1 {
		return fmt.Errorf("%w: got %d", metrics.ErrInvalidSampleEvery, c.Drift.Every)
	}
	if c.Drift.Height < 1 || c.Drift.Width < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidChart, c.Drift.Width, c.Drift.Height)
	}
	return nil
}
