// Package dynamo provides core simulation primitives for the sketch lab.
//
// The package defines the fundamental interfaces and types shared by the
// physics models, the integrators and the frame loop:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper interface
//   - [Constrained]: systems that project a stepped state back onto a
//     constraint (floor collisions)
//   - [Configurable]: live parameter tuning by name
//
// # Example
//
//	ball := physics.NewBouncingBall(100)
//	integ := integrators.NewSymplecticEuler()
//	x := integ.Step(ball, x0, nil, t, dt)
//	x = ball.Constrain(x)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. The frame loop
// is single-threaded by construction.
package dynamo
