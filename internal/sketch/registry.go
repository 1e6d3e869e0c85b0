package sketch

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/integrators"
	"github.com/san-kum/simlab/internal/metrics"
	"github.com/san-kum/simlab/internal/view"
)

var sketches = map[string]func(*config.Config) (Sketch, error){
	config.SketchBall: func(c *config.Config) (Sketch, error) {
		return NewBall(c)
	},
	config.SketchRingPendulum: func(c *config.Config) (Sketch, error) {
		return NewRingPendulum(c)
	},
}

var integratorsByName = map[string]func() dynamo.Integrator{
	"symplectic_euler": func() dynamo.Integrator { return integrators.NewSymplecticEuler() },
	"euler":            func() dynamo.Integrator { return integrators.NewEuler() },
	"rk4":              func() dynamo.Integrator { return integrators.NewRK4() },
}

func Kinds() []string { return sortedKeys(sketches) }

func Integrators() []string { return sortedKeys(integratorsByName) }

func NewIntegrator(name string) (dynamo.Integrator, error) {
	mk, ok := integratorsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", dynamo.ErrUnknownIntegrator, name, Integrators())
	}
	return mk(), nil
}

// Build validates cfg and constructs its sketch.
func Build(cfg *config.Config) (Sketch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mk, ok := sketches[cfg.Sketch]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownSketch, cfg.Sketch)
	}
	return mk(cfg)
}

// NewCamera builds the camera described by the config's view section.
func NewCamera(cfg *config.Config) (*view.Camera, error) {
	cam, err := view.NewCamera(cfg.BaseViewRange())
	if err != nil {
		return nil, err
	}
	cam.ZoomMin = cfg.View.ZoomMin
	cam.ZoomMax = cfg.View.ZoomMax
	cam.ZoomResponse = cfg.View.ZoomResponse
	cam.PanSpeed = cfg.View.PanSpeed
	cam.Reset()
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	return cam, nil
}

func NewGrid(cfg *config.Config) *view.Grid {
	g := view.NewGrid()
	g.IdealCells = cfg.View.IdealCells
	g.Minor = cfg.View.MinorGrid
	g.LabelSize = cfg.View.LabelSize
	return g
}

// Open builds a ready-to-run Context from cfg.
func Open(cfg *config.Config, opts Options) (*Context, error) {
	sk, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	integ, err := NewIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	cam, err := NewCamera(cfg)
	if err != nil {
		return nil, err
	}
	if opts.Theme == "" {
		opts.Theme = cfg.Theme
	}
	if opts.Logger != nil {
		opts.Logger = opts.Logger.With(slog.String("sketch", cfg.Sketch))
	}
	return NewContext(sk, integ, cam, NewGrid(cfg), opts), nil
}

// Metrics returns fresh metric instances suited to the sketch.
func Metrics(sk Sketch) []dynamo.Metric {
	cols := sk.Columns()
	return []dynamo.Metric{
		metrics.NewEnergy(sk.System()),
		metrics.NewEnergyDrift(sk.System()),
		metrics.NewPeak("peak_"+cols[0], 0),
		metrics.NewReversals("reversals", 1),
		metrics.NewStability(1e6),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
