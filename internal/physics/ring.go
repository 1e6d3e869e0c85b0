package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
)

// RingPendulum is a bead on a ring of radius Radius that spins about its
// vertical diameter at a fixed angular velocity RingOmega. Theta is
// measured from the bottom of the ring. State: [theta, omega].
type RingPendulum struct {
	Radius    float64
	RingOmega float64
	Gravity   float64
}

func NewRingPendulum() *RingPendulum {
	return &RingPendulum{
		Radius:    3.0,
		RingOmega: 2.0,
		Gravity:   Gravity,
	}
}

func (p *RingPendulum) StateDim() int   { return 2 }
func (p *RingPendulum) ControlDim() int { return 0 }

func (p *RingPendulum) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], p.angularAcceleration(x[0])}
}

func (p *RingPendulum) angularAcceleration(theta float64) float64 {
	sin, cos := math.Sin(theta), math.Cos(theta)
	acc := p.Radius*p.RingOmega*p.RingOmega*sin*cos - p.Gravity*sin
	return acc / p.Radius
}

// Equilibrium returns the off-axis stable angle acos(g/(RΩ²)). When the
// ratio lies outside [-1, 1] (including a zero denominator) there is no
// such point and ok is false; the ratio is never clamped.
func (p *RingPendulum) Equilibrium() (theta float64, ok bool) {
	ratio := p.Gravity / (p.Radius * p.RingOmega * p.RingOmega)
	if !(math.Abs(ratio) <= 1) {
		return 0, false
	}
	return math.Acos(ratio), true
}

// Bob returns the bead position relative to the ring centre, Y up.
func (p *RingPendulum) Bob(theta float64) (x, y float64) {
	return p.Radius * math.Cos(theta-math.Pi/2), p.Radius * math.Sin(theta-math.Pi/2)
}

func (p *RingPendulum) Energy(x dynamo.State) float64 {
	theta, omega := x[0], x[1]
	r2 := p.Radius * p.Radius
	sin := math.Sin(theta)
	return 0.5*r2*omega*omega - p.Gravity*p.Radius*math.Cos(theta) - 0.5*p.RingOmega*p.RingOmega*r2*sin*sin
}

func (p *RingPendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"radius":     p.Radius,
		"ring_omega": p.RingOmega,
		"gravity":    p.Gravity,
	}
}

func (p *RingPendulum) SetParam(name string, value float64) error {
	switch name {
	case "radius":
		if value <= 0 {
			return fmt.Errorf("%w: radius %g", dynamo.ErrParameterBounds, value)
		}
		p.Radius = value
	case "ring_omega":
		p.RingOmega = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
