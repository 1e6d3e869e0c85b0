package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/storage"
)

const scenarioYAML = `name: smoke
description: two short runs
steps:
  - sketch: ball
    preset: dead
    frames: 30
  - sketch: ring_pendulum
    integrator: rk4
    frames: 20
    params:
      ring_omega: 3
    save_as: spun
`

func writeScenario(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenarioStoresEachStep(t *testing.T) {
	dir := t.TempDir()
	sc, err := LoadScenario(writeScenario(t, dir, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	st := storage.New(filepath.Join(dir, "runs"))
	results, err := RunScenario(context.Background(), sc, st, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Result.StepsTaken != 30 || results[1].Result.StepsTaken != 20 {
		t.Errorf("steps %d, %d", results[0].Result.StepsTaken, results[1].Result.StepsTaken)
	}

	first, err := st.Load(results[0].RunID)
	if err != nil {
		t.Fatal(err)
	}
	if first.Preset != "dead" || first.Params["restitution"] != 0 {
		t.Errorf("first run metadata %+v", first)
	}
	second, err := st.Load(results[1].RunID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Preset != "spun" || second.Integrator != "rk4" || second.Params["ring_omega"] != 3 {
		t.Errorf("second run metadata %+v", second)
	}
}

func TestRunScenarioStopsAtBadStep(t *testing.T) {
	dir := t.TempDir()
	sc, err := LoadScenario(writeScenario(t, dir, `steps:
  - sketch: ball
    frames: 5
  - sketch: ball
    params:
      restitution: 2
`))
	if err != nil {
		t.Fatal(err)
	}
	results, err := RunScenario(context.Background(), sc, storage.New(filepath.Join(dir, "runs")), nil)
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected parameter bounds error, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected the first step to finish, got %d", len(results))
	}
}

func TestScenarioConfigRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := "sketch: ball\nball:\n  gravity: 1.62\n"
	if err := os.WriteFile(filepath.Join(dir, "moon.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(writeScenario(t, dir, "steps:\n  - config: moon.yaml\n    frames: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	results, err := RunScenario(context.Background(), sc, storage.New(filepath.Join(dir, "runs")), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].Sketch != "ball" {
		t.Errorf("sketch %q", results[0].Sketch)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadScenario(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadScenario(writeScenario(t, dir, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}
