package sim

import (
	"errors"
	"fmt"
)

var (
	ErrNoBodies     = errors.New("sim: body set is empty")
	ErrInvalidSteps = errors.New("sim: step count must not be negative")
	ErrInvalidDt    = errors.New("sim: timestep must be positive and finite")
)

// StepError records where a run first produced a non-finite value.
type StepError struct {
	Step     int
	Quantity string
	Value    float64
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s is %v", e.Step, e.Quantity, e.Value)
}
