package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equal reports bit-identical equality, so NaN never equals itself.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Constrained is implemented by systems whose stepped state must be
// projected back onto a constraint, such as a floor the body may not cross.
type Constrained interface {
	Constrain(x State) State
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Validate checks x against the system dimension and rejects NaN/Inf.
func Validate(dyn System, x State) error {
	if len(x) != dyn.StateDim() {
		return fmt.Errorf("%w: state has %d values, system wants %d", ErrDimensionMismatch, len(x), dyn.StateDim())
	}
	if !x.IsValid() {
		return ErrInvalidState
	}
	return nil
}
