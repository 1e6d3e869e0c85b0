package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/simlab/internal/dynamo"
)

// oscillator is the unit harmonic oscillator laid out as [x, v].
type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int   { return 2 }
func (o *oscillator) ControlDim() int { return 0 }

// freeFall is constant downward acceleration laid out as [y, vy].
type freeFall struct{ g float64 }

func (f *freeFall) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -f.g}
}

func (f *freeFall) StateDim() int   { return 2 }
func (f *freeFall) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestSymplecticEulerOrder(t *testing.T) {
	dyn := &freeFall{g: 9.8}
	integ := NewSymplecticEuler()

	y, vy, dt := 80.0, 0.0, 0.16
	x := dynamo.State{y, vy}
	for i := 0; i < 5; i++ {
		x = integ.Step(dyn, x, nil, 0, dt)

		vy -= 9.8 * dt
		y += vy * dt
		if x[0] != y || x[1] != vy {
			t.Fatalf("step %d: got (%v, %v), want (%v, %v)", i, x[0], x[1], y, vy)
		}
	}
}

func TestEulerUsesStartVelocity(t *testing.T) {
	dyn := &freeFall{g: 10}
	x := NewEuler().Step(dyn, dynamo.State{0, 0}, nil, 0, 1)

	if x[0] != 0 {
		t.Errorf("explicit euler moved position with zero start velocity: %v", x[0])
	}
	if x[1] != -10 {
		t.Errorf("velocity = %v, want -10", x[1])
	}
}

func TestSymplecticEnergyBounded(t *testing.T) {
	dyn := &oscillator{}
	integ := NewSymplecticEuler()

	x := dynamo.State{1.0, 0.0}
	for i := 0; i < 10000; i++ {
		x = integ.Step(dyn, x, nil, 0, 0.01)
	}
	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if math.Abs(energy-0.5) > 0.01 {
		t.Errorf("energy drifted to %.6f", energy)
	}
}

func BenchmarkSymplecticEuler(b *testing.B) {
	integ := NewSymplecticEuler()
	dyn := &oscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, nil, 0, 0.01)
	}
}
