// Package optim sweeps sketch parameters over a grid of headless runs.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var ErrNoResult = errors.New("optim: every grid point failed")

// Objective scores one parameter combination. Lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// Trial is one evaluated grid point. A failed point keeps its error and
// never wins.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params for %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point in order, the last parameter varying
// fastest, and returns all trials with the index of the lowest value.
func (g *GridSearch) Search(ctx context.Context, f Objective) ([]Trial, int, error) {
	trials := make([]Trial, 0, g.Size())
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, f, &trials); err != nil {
		return trials, -1, err
	}

	best := -1
	bestVal := math.Inf(1)
	for i, tr := range trials {
		if tr.Err == nil && tr.Value < bestVal {
			best, bestVal = i, tr.Value
		}
	}
	if best < 0 {
		return trials, -1, ErrNoResult
	}
	return trials, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, f Objective, trials *[]Trial) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		val, err := f(ctx, current)
		if err == nil && math.IsNaN(val) {
			err = fmt.Errorf("optim: objective is NaN")
		}
		*trials = append(*trials, Trial{Params: current, Value: val, Err: err})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, f, trials); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
