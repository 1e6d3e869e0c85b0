package integrators

import "github.com/san-kum/simlab/internal/dynamo"

// SymplecticEuler is the semi-implicit Euler stepper used by the sketches.
//
// The state is laid out as [q..., v...]. Velocities advance first with the
// acceleration at the start of the step, then positions advance with the
// already-updated velocities:
//
//	v += a(q, v) * dt
//	q += v * dt
//
// For the ball this is exactly "vy -= g*dt; y += vy*dt".
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	dx := dyn.Derive(x, u, t)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		v := x[half+i] + dx[half+i]*dt
		result[half+i] = v
		result[i] = x[i] + v*dt
	}
	return result
}
