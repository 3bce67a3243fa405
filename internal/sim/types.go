package sim

import (
	"time"

	"github.com/san-kum/nbody/internal/physics"
)

// Observer is notified once after momentum offset (step 0) and once after
// every Advance. Observers must not modify bodies.
type Observer interface {
	OnStep(step int, bodies []physics.Body)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Config struct {
	Steps int
	Dt    float64
}

func DefaultConfig() Config {
	return Config{
		Steps: physics.StepCount,
		Dt:    physics.Dt,
	}
}

type Result struct {
	InitialEnergy float64
	FinalEnergy   float64
	Steps         int
	Elapsed       time.Duration
	Metrics       map[string]float64
}

// Drift returns the relative energy change over the run.
func (r *Result) Drift() float64 {
	if r.InitialEnergy == 0 {
		return 0
	}
	return (r.FinalEnergy - r.InitialEnergy) / r.InitialEnergy
}
