package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/sim"
)

var ErrInvalidSampleEvery = errors.New("metrics: sample interval must be at least 1")

type Sample struct {
	Step   int
	Energy float64
	Drift  float64
}

// EnergyDrift samples total energy every n steps and tracks the relative
// drift |E - E0| / |E0| against the first sample.
type EnergyDrift struct {
	name          string
	every         int
	initialEnergy float64
	maxDrift      float64
	samples       []Sample
	nonFinite     *sim.StepError
}

func NewEnergyDrift(every int) (*EnergyDrift, error) {
	if every < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleEvery, every)
	}
	return &EnergyDrift{
		name:  "energy_drift",
		every: every,
	}, nil
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(step int, bodies []physics.Body) {
	if step%e.every != 0 {
		return
	}

	energy := physics.Energy(bodies)

	if len(e.samples) == 0 {
		e.initialEnergy = energy
	}

	drift := 0.0
	if e.initialEnergy != 0 {
		drift = math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
	}
	e.samples = append(e.samples, Sample{Step: step, Energy: energy, Drift: drift})

	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		if e.nonFinite == nil {
			e.nonFinite = &sim.StepError{Step: step, Quantity: "energy", Value: energy}
		}
		return
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

// Value returns the largest finite drift seen so far.
func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Samples() []Sample {
	return e.samples
}

// Drifts returns the drift of every finite sample, in step order.
func (e *EnergyDrift) Drifts() []float64 {
	drifts := make([]float64, 0, len(e.samples))
	for _, s := range e.samples {
		if math.IsNaN(s.Drift) || math.IsInf(s.Drift, 0) {
			continue
		}
		drifts = append(drifts, s.Drift)
	}
	return drifts
}

// Err reports the first sample whose energy was NaN or Inf.
func (e *EnergyDrift) Err() error {
	if e.nonFinite == nil {
		return nil
	}
	return e.nonFinite
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = nil
	e.nonFinite = nil
}
