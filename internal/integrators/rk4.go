package integrators

import "github.com/san-kum/simlab/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta stepper. It is offered for
// comparison runs; the sketches default to SymplecticEuler.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	half := dt * 0.5

	k1 := dyn.Derive(x, u, t)
	k2 := dyn.Derive(axpy(x, k1, half), u, t+half)
	k3 := dyn.Derive(axpy(x, k2, half), u, t+half)
	k4 := dyn.Derive(axpy(x, k3, dt), u, t+dt)

	result := make(dynamo.State, len(x))
	dt6 := dt / 6.0
	for i := range x {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result
}
