package analysis

import (
	"errors"
	"fmt"
	"math"
)

// ColumnSummary describes one state component over a run.
type ColumnSummary struct {
	Name     string
	Min, Max float64
	Mean     float64
	// Peak is nil when the column does not oscillate.
	Peak *Peak
}

// Summarize reports every column of a stored run. times must be evenly
// spaced.
func Summarize(columns []string, states [][]float64, times []float64) ([]ColumnSummary, error) {
	if len(states) != len(times) {
		return nil, fmt.Errorf("analysis: %d states but %d times", len(states), len(times))
	}
	if len(times) < 2 {
		return nil, ErrTooShort
	}
	dt := times[1] - times[0]

	out := make([]ColumnSummary, len(columns))
	for j, name := range columns {
		col := make([]float64, len(states))
		s := ColumnSummary{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
		for i, x := range states {
			if j >= len(x) {
				return nil, fmt.Errorf("analysis: row %d has %d columns, want %d", i, len(x), len(columns))
			}
			v := x[j]
			col[i] = v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
			s.Mean += v
		}
		s.Mean /= float64(len(col))

		p, err := Dominant(col, dt)
		switch {
		case err == nil:
			s.Peak = &p
		case errors.Is(err, ErrFlat), errors.Is(err, ErrTooShort):
		default:
			return nil, err
		}
		out[j] = s
	}
	return out, nil
}
