package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
)

// Simulator advances one system with one integrator and applies the
// system's constraint after every step.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }
func (s *Simulator) System() dynamo.System     { return s.dyn }
func (s *Simulator) Integrator() dynamo.Integrator {
	return s.integrator
}

// SetIntegrator swaps the stepper between frames.
func (s *Simulator) SetIntegrator(in dynamo.Integrator) { s.integrator = in }

// Step integrates x by dt and projects the result onto the system's
// constraint, if it has one.
func (s *Simulator) Step(x dynamo.State, t, dt float64) dynamo.State {
	next := s.integrator.Step(s.dyn, x, nil, t, dt)
	if c, ok := s.dyn.(dynamo.Constrained); ok {
		next = c.Constrain(next)
	}
	return next
}

// Run steps from x0 for cfg.Duration, honouring ctx between steps. On
// cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := dynamo.Validate(s.dyn, x0); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		States:  make([]dynamo.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		next := s.Step(x, t, cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			return result, &dynamo.SimulationError{
				Step:    i,
				Time:    t,
				State:   next,
				Wrapped: dynamo.ErrInvalidState,
			}
		}

		x = next
		t += cfg.Dt
		result.StepsTaken++
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func (s *Simulator) computeEnergy(x dynamo.State) float64 {
	if h, ok := s.dyn.(dynamo.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
