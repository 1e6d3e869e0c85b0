package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/physics"
)

func TestEnergyAverages(t *testing.T) {
	ball := physics.NewBouncingBall(100)
	m := NewEnergy(ball)

	m.Observe(dynamo.State{10, 0}, 0)
	m.Observe(dynamo.State{0, 2}, 0.1)

	want := (ball.Gravity*10 + 2) / 2
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("mean energy %v, want %v", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftTracksMaximum(t *testing.T) {
	ball := physics.NewBouncingBall(100)
	m := NewEnergyDrift(ball)

	m.Observe(dynamo.State{10, 0}, 0) // 98
	m.Observe(dynamo.State{5, 0}, 1)  // 49, drift 0.5
	m.Observe(dynamo.State{9, 0}, 2)  // 88.2, drift 0.1

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("drift %v, want 0.5", m.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(10)
	s.Observe(dynamo.State{1, 2}, 0)
	s.Observe(dynamo.State{1, 20}, 0)
	s.Observe(dynamo.State{math.NaN(), 0}, 0)
	s.Observe(dynamo.State{0, 0}, 0)

	if s.Value() != 0.5 {
		t.Errorf("stability %v, want 0.5", s.Value())
	}
}

func TestPeakAndReversals(t *testing.T) {
	peak := NewPeak("peak_height", 0)
	bounces := NewReversals("bounces", 1)

	samples := []dynamo.State{
		{80, 0}, {60, -20}, {-90, -40}, {-90, 32}, {-50, 10}, {-70, -5}, {-90, 4},
	}
	for _, x := range samples {
		peak.Observe(x, 0)
		bounces.Observe(x, 0)
	}

	if peak.Value() != 90 {
		t.Errorf("peak %v, want 90", peak.Value())
	}
	if bounces.Value() != 2 {
		t.Errorf("bounces %v, want 2", bounces.Value())
	}
}
