package physics

import (
	"fmt"

	"github.com/san-kum/simlab/internal/dynamo"
)

// BouncingBall falls along the world Y axis and bounces off a floor.
// State: [y, vy].
type BouncingBall struct {
	Radius      float64
	Gravity     float64
	Restitution float64
	Floor       float64
	// Drag is the quadratic drag coefficient; zero disables drag.
	Drag float64
}

// NewBouncingBall places the floor at the bottom of the default view, so
// a camera with the same base view range shows the floor on screen edge.
func NewBouncingBall(baseViewRange float64) *BouncingBall {
	return &BouncingBall{
		Radius:      10,
		Gravity:     Gravity,
		Restitution: DefaultRestitution,
		Floor:       -baseViewRange,
	}
}

func (b *BouncingBall) StateDim() int   { return 2 }
func (b *BouncingBall) ControlDim() int { return 0 }

func (b *BouncingBall) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	a := -b.Gravity
	if b.Drag != 0 {
		a += Drag(x[1], b.Drag)
	}
	return dynamo.State{x[1], a}
}

// Constrain resolves a floor contact: the ball is put back on the floor
// and its velocity reflected and scaled by the restitution. With
// Restitution = 0 the velocity becomes exactly zero.
func (b *BouncingBall) Constrain(x dynamo.State) dynamo.State {
	if x[0]-b.Radius < b.Floor {
		x = x.Clone()
		x[0] = b.Floor + b.Radius
		x[1] *= -b.Restitution
		if x[1] == 0 {
			// Normalise a signed zero.
			x[1] = 0
		}
	}
	return x
}

// InContact reports whether the ball rests on (or penetrates) the floor.
func (b *BouncingBall) InContact(x dynamo.State) bool {
	return x[0]-b.Radius <= b.Floor
}

func (b *BouncingBall) Energy(x dynamo.State) float64 {
	return b.Gravity*x[0] + 0.5*x[1]*x[1]
}

func (b *BouncingBall) GetParams() map[string]float64 {
	return map[string]float64{
		"radius":      b.Radius,
		"gravity":     b.Gravity,
		"restitution": b.Restitution,
		"drag":        b.Drag,
	}
}

func (b *BouncingBall) SetParam(name string, value float64) error {
	switch name {
	case "radius":
		if value <= 0 {
			return fmt.Errorf("%w: radius %g", dynamo.ErrParameterBounds, value)
		}
		b.Radius = value
	case "gravity":
		b.Gravity = value
	case "restitution":
		if value < 0 || value > 1 {
			return fmt.Errorf("%w: restitution %g not in [0,1]", dynamo.ErrParameterBounds, value)
		}
		b.Restitution = value
	case "drag":
		if value < 0 {
			return fmt.Errorf("%w: drag %g", dynamo.ErrParameterBounds, value)
		}
		b.Drag = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
