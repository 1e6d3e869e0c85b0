// Package automation runs scripted batches of headless sketch runs.
package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/sim"
	"github.com/san-kum/simlab/internal/sketch"
	"github.com/san-kum/simlab/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	dir string
}

// ScenarioStep is a single run. Config paths are relative to the
// scenario file.
type ScenarioStep struct {
	Sketch     string             `yaml:"sketch"`
	Preset     string             `yaml:"preset"`
	Config     string             `yaml:"config"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Frames     int                `yaml:"frames"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// StepResult is a finished step and where it was stored.
type StepResult struct {
	Step   int
	RunID  string
	Sketch string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	scenario.dir = filepath.Dir(path)
	return &scenario, nil
}

// resolve builds the step's config: its file, else its preset, else the
// sketch defaults, with the step's integrator and dt on top.
func (s *Scenario) resolve(step ScenarioStep) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case step.Config != "":
		path := step.Config
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		c, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if step.Sketch != "" {
			c.Sketch = step.Sketch
		}
		cfg = c
	case step.Preset != "":
		cfg = config.GetPreset(step.Sketch, step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s for %q", step.Preset, step.Sketch)
		}
	default:
		cfg = config.ForSketch(step.Sketch)
	}
	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	if step.Dt != 0 {
		cfg.Dt = step.Dt
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order and stores each run. It stops
// at the first failing step and returns what finished before it.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := scenario.resolve(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		runner, err := sketch.NewRunner(cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		// Apply params if tunable
		if len(step.Params) > 0 {
			t, ok := runner.Sketch.System().(dynamo.Configurable)
			if !ok {
				return results, fmt.Errorf("step %d: %s is not tunable", i+1, cfg.Sketch)
			}
			for k, v := range step.Params {
				if err := t.SetParam(k, v); err != nil {
					return results, fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		}

		frames := step.Frames
		if frames <= 0 {
			frames = int(cfg.Duration/cfg.Dt + 0.5)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "sketch", cfg.Sketch, "frames", frames)

		result, err := runner.Run(ctx, frames, cfg.Dt)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		label := step.SaveAs
		if label == "" {
			label = step.Preset
		}
		meta := storage.RunMetadata{
			Sketch:     cfg.Sketch,
			Preset:     label,
			Dt:         cfg.Dt,
			Duration:   float64(frames) * cfg.Dt,
			TimeScale:  runner.Sketch.TimeScale(),
			Integrator: cfg.Integrator,
			Columns:    runner.Sketch.Columns(),
		}
		if t, ok := runner.Sketch.System().(dynamo.Configurable); ok {
			meta.Params = t.GetParams()
		}
		runID, err := store.Save(meta, result)
		if err != nil {
			return results, fmt.Errorf("step %d save: %w", i+1, err)
		}

		results = append(results, StepResult{Step: i + 1, RunID: runID, Sketch: cfg.Sketch, Result: result})
	}

	return results, nil
}
