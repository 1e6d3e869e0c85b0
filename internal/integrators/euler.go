package integrators

import "github.com/san-kum/simlab/internal/dynamo"

// Euler is the textbook forward Euler stepper: every component advances
// with the derivative evaluated at the start of the step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) dynamo.State {
	return axpy(x, dyn.Derive(x, u, t), dt)
}

// axpy returns x + a*d as a new state.
func axpy(x, d dynamo.State, a float64) dynamo.State {
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + a*d[i]
	}
	return result
}
