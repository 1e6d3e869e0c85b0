// Package physics provides the one-body models driven by the sketches.
//
// Each model implements the [dynamo.System] interface with the state laid
// out as [position, velocity], which is what the symplectic Euler stepper
// expects:
//
//   - [BouncingBall]: vertical fall under gravity onto a floor with
//     restitution (state: y, vy)
//   - [RingPendulum]: bead on a ring spinning about its vertical diameter
//     (state: theta, omega)
//
// Both also implement [dynamo.Configurable] for live parameter tuning and
// [dynamo.Hamiltonian] for energy monitoring.
//
// # Energy
//
// The ball's energy is per unit mass and measured from y = 0. The ring
// pendulum's is the Jacobi integral in the rotating frame, which is the
// quantity conserved by its equation of motion:
//
//	J = ½R²ω² − gR cosθ − ½Ω²R² sin²θ
package physics

import "math"

// Gravity is the default gravitational acceleration shared by every sketch.
const Gravity = 9.8

// DefaultRestitution is the fraction of speed a ball keeps after a bounce.
const DefaultRestitution = 0.8

// DragCoefficient is the quadratic air-drag coefficient used when a
// sketch opts into drag.
const DragCoefficient = 0.01

// Drag is the quadratic drag acceleration opposing velocity v.
func Drag(v, coefficient float64) float64 {
	if v == 0 {
		return 0
	}
	return -math.Copysign(coefficient*v*v, v)
}
