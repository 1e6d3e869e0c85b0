package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/integrators"
	"github.com/san-kum/simlab/internal/physics"
)

type decay struct{}

func (decay) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{-x[0]}
}
func (decay) StateDim() int   { return 1 }
func (decay) ControlDim() int { return 0 }

type blowUp struct{}

func (blowUp) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{math.Inf(1)}
}
func (blowUp) StateDim() int   { return 1 }
func (blowUp) ControlDim() int { return 0 }

func TestSimulatorRun(t *testing.T) {
	s := New(decay{}, integrators.NewRK4())

	result, err := s.Run(context.Background(), dynamo.State{1}, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.States) != 11 || len(result.Times) != 11 {
		t.Fatalf("expected 11 samples, got %d states and %d times", len(result.States), len(result.Times))
	}
	final := result.States[10][0]
	if math.Abs(final-math.Exp(-1)) > 1e-5 {
		t.Errorf("final state %v, want %v", final, math.Exp(-1))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(decay{}, integrators.NewEuler())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"nan duration", Config{Dt: 0.1, Duration: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), dynamo.State{1}, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorRejectsBadInitialState(t *testing.T) {
	s := New(decay{}, integrators.NewEuler())
	_, err := s.Run(context.Background(), dynamo.State{1, 2}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorReportsInvalidState(t *testing.T) {
	s := New(blowUp{}, integrators.NewEuler())
	_, err := s.Run(context.Background(), dynamo.State{0}, Config{Dt: 0.1, Duration: 1, ValidateState: true})

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if simErr.Step != 0 || !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("unexpected error detail: %+v", simErr)
	}
}

func TestSimulatorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(decay{}, integrators.NewEuler())
	result, err := s.Run(ctx, dynamo.State{1}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 || len(result.States) != 1 {
		t.Errorf("cancelled run stepped %d times", result.StepsTaken)
	}
}

func TestSimulatorAppliesConstraint(t *testing.T) {
	ball := physics.NewBouncingBall(100)
	s := New(ball, integrators.NewSymplecticEuler())

	result, err := s.Run(context.Background(), dynamo.State{80, 0}, Config{Dt: 0.1, Duration: 60})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, x := range result.States {
		if x[0]-ball.Radius < ball.Floor {
			t.Fatalf("state %d below the floor: %v", i, x)
		}
	}
}

type countMetric struct {
	count int
	sum   float64
}

func (m *countMetric) Name() string { return "mean" }
func (m *countMetric) Observe(x dynamo.State, t float64) {
	m.count++
	m.sum += x[0]
}
func (m *countMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *countMetric) Reset() { m.count, m.sum = 0, 0 }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := New(decay{}, integrators.NewEuler())
	metric := &countMetric{}
	s.AddMetric(metric)
	seen := 0
	s.AddObserver(ObserverFunc(func(dynamo.State, float64) { seen++ }))

	result, err := s.Run(context.Background(), dynamo.State{1}, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, ok := result.Metrics["mean"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 || seen != 10 {
		t.Errorf("observed %d metric samples and %d observer calls, want 10 each", metric.count, seen)
	}
}

func TestCompareKeepsTrialOrder(t *testing.T) {
	trials := []Trial{
		{Name: "euler", Sim: New(decay{}, integrators.NewEuler())},
		{Name: "rk4", Sim: New(decay{}, integrators.NewRK4())},
	}
	results, err := Compare(context.Background(), trials, dynamo.State{1}, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	want := math.Exp(-1)
	eulerErr := math.Abs(results[0].States[10][0] - want)
	rk4Err := math.Abs(results[1].States[10][0] - want)
	if rk4Err >= eulerErr {
		t.Errorf("rk4 error %g not below euler error %g", rk4Err, eulerErr)
	}
}

func TestCompareStopsOnError(t *testing.T) {
	trials := []Trial{
		{Name: "ok", Sim: New(decay{}, integrators.NewEuler())},
		{Name: "bad", Sim: New(blowUp{}, integrators.NewEuler())},
	}
	_, err := Compare(context.Background(), trials, dynamo.State{1}, Config{Dt: 0.1, Duration: 1, ValidateState: true})
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}
