package sim

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/nbody/internal/physics"
)

// Runner drives the benchmark sequence: offset momentum, measure energy,
// integrate, measure energy again. It is single-threaded and holds no
// state between runs other than its registered observers.
type Runner struct {
	logger    *zap.Logger
	metrics   []Metric
	observers []Observer
}

func New(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric) {
	r.metrics = append(r.metrics, m)
	r.observers = append(r.observers, m)
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run evolves bodies in place. A NaN or Inf energy is reported in the
// result, not as an error.
func (r *Runner) Run(bodies []physics.Body, cfg Config) (*Result, error) {
	if err := validateConfig(bodies, cfg); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Debug("starting run",
		zap.Int("bodies", len(bodies)),
		zap.Int("steps", cfg.Steps),
		zap.Float64("dt", cfg.Dt))

	start := time.Now()

	physics.OffsetMomentum(bodies)
	result := &Result{
		InitialEnergy: physics.Energy(bodies),
		Metrics:       make(map[string]float64),
	}

	if len(r.observers) == 0 {
		for i := 0; i < cfg.Steps; i++ {
			physics.Advance(bodies, cfg.Dt)
		}
	} else {
		r.notify(0, bodies)
		for i := 1; i <= cfg.Steps; i++ {
			physics.Advance(bodies, cfg.Dt)
			r.notify(i, bodies)
		}
	}

	result.FinalEnergy = physics.Energy(bodies)
	result.Steps = cfg.Steps
	result.Elapsed = time.Since(start)

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if isFinite(result.FinalEnergy) {
		r.logger.Debug("run finished",
			zap.Duration("elapsed", result.Elapsed),
			zap.Float64("initial_energy", result.InitialEnergy),
			zap.Float64("final_energy", result.FinalEnergy))
	} else {
		r.logger.Warn("run finished with non-finite energy",
			zap.Duration("elapsed", result.Elapsed),
			zap.Float64("final_energy", result.FinalEnergy))
	}

	return result, nil
}

func (r *Runner) notify(step int, bodies []physics.Body) {
	for _, o := range r.observers {
		o.OnStep(step, bodies)
	}
}

func validateConfig(bodies []physics.Body, cfg Config) error {
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, cfg.Steps)
	}
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidDt, cfg.Dt)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
