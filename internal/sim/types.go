package sim

import "github.com/san-kum/simlab/internal/dynamo"

// Observer sees every state the simulator settles on, after constraints.
type Observer interface {
	OnStep(x dynamo.State, t float64)
}

type ObserverFunc func(x dynamo.State, t float64)

func (f ObserverFunc) OnStep(x dynamo.State, t float64) { f(x, t) }

// Config describes a headless run. Dt is in simulation seconds, already
// multiplied by the sketch's time scale.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func (c Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(c.Duration/c.Dt + 0.5)
}

type Result struct {
	States      []dynamo.State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
