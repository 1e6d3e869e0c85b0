package sketch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/sim"
)

// Runner steps a sketch without a host, frame by frame exactly as a
// Context would while unpaused.
type Runner struct {
	Sketch     Sketch
	Integrator string
	Logger     *slog.Logger
}

func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	sk, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := NewIntegrator(cfg.Integrator); err != nil {
		return nil, err
	}
	return &Runner{Sketch: sk, Integrator: cfg.Integrator, Logger: logger}, nil
}

func (r *Runner) config(frames int, dt float64) (sim.Config, error) {
	if frames <= 0 {
		return sim.Config{}, fmt.Errorf("%w: frames %d", dynamo.ErrParameterBounds, frames)
	}
	if !(dt > 0) || dt > MaxFrameDt {
		return sim.Config{}, fmt.Errorf("%w: frame dt %v not in (0, %v]", dynamo.ErrParameterBounds, dt, MaxFrameDt)
	}
	h := dt * r.Sketch.TimeScale()
	return sim.Config{Dt: h, Duration: float64(frames) * h, ValidateState: true}, nil
}

func (r *Runner) simulator(integrator string) (*sim.Simulator, error) {
	integ, err := NewIntegrator(integrator)
	if err != nil {
		return nil, err
	}
	s := sim.New(r.Sketch.System(), integ)
	for _, m := range Metrics(r.Sketch) {
		s.AddMetric(m)
	}
	return s, nil
}

// Run advances frames frames of dt host seconds from the initial state.
func (r *Runner) Run(ctx context.Context, frames int, dt float64) (*sim.Result, error) {
	cfg, err := r.config(frames, dt)
	if err != nil {
		return nil, err
	}
	s, err := r.simulator(r.Integrator)
	if err != nil {
		return nil, err
	}
	if r.Logger != nil {
		r.Logger.Debug("run", "sketch", r.Sketch.Kind(), "integrator", r.Integrator, "frames", frames, "dt", dt)
	}
	return s.Run(ctx, r.Sketch.Initial(), cfg)
}

// Compare runs the same frames under each named integrator concurrently.
func (r *Runner) Compare(ctx context.Context, names []string, frames int, dt float64) ([]*sim.Result, error) {
	cfg, err := r.config(frames, dt)
	if err != nil {
		return nil, err
	}
	trials := make([]sim.Trial, 0, len(names))
	for _, name := range names {
		s, err := r.simulator(name)
		if err != nil {
			return nil, err
		}
		trials = append(trials, sim.Trial{Name: name, Sim: s})
	}
	return sim.Compare(ctx, trials, r.Sketch.Initial(), cfg)
}
