package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States:     []dynamo.State{{80, 0}, {79.902, -0.98}},
		Times:      []float64{0, 0.1},
		Metrics:    map[string]float64{"energy": 784},
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	runID, err := st.Save(RunMetadata{
		Sketch:     "ball",
		Dt:         0.1,
		Duration:   0.1,
		Integrator: "symplectic_euler",
		Columns:    []string{"y", "vy"},
	}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Sketch != "ball" || meta.Steps != 1 || meta.Metrics["energy"] != 784 {
		t.Errorf("unexpected metadata %+v", meta)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(states))
	}
	if states[1][0] != 79.902 || states[1][1] != -0.98 {
		t.Errorf("states not preserved exactly: %v", states[1])
	}

	header, _ := os.ReadFile(filepath.Join(st.Dir(), runID, "states.csv"))
	if !bytes.HasPrefix(header, []byte("time,y,vy\n")) {
		t.Errorf("unexpected header: %q", header)
	}
}

func TestStoreUniqueIDsAndOrder(t *testing.T) {
	st := New(t.TempDir())
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st.now = func() time.Time { return clock }

	first, err := st.Save(RunMetadata{Sketch: "ball"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(RunMetadata{Sketch: "ball"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("duplicate run id %s", first)
	}

	clock = clock.Add(time.Hour)
	third, _ := st.Save(RunMetadata{Sketch: "ring_pendulum"}, sampleResult())

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 || runs[0].ID != third {
		t.Errorf("expected newest run first, got %+v", runs)
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("got %v, %v", runs, err)
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Sketch: "ball", Columns: []string{"y", "vy"}}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	data, err := st.Export(runID)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := data.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var back ExportData
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Steps != 2 || back.Columns[1] != "vy" {
		t.Errorf("unexpected export %+v", back)
	}
}
