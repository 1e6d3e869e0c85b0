package optim

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{2, 2, 1, []float64{2}},
		{0, 1, 0, nil},
		{1, -1, 3, []float64{1, 0, -1}},
	}
	for _, tt := range tests {
		got := Linspace(tt.lo, tt.hi, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Linspace(%v, %v, %d) = %v", tt.lo, tt.hi, tt.n, got)
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("Linspace(%v, %v, %d)[%d] = %v, want %v", tt.lo, tt.hi, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGridSearchFindsMinimum(t *testing.T) {
	g, err := NewGridSearch([]string{"a", "b"}, [][]float64{{0, 1, 2}, {-1, 0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 9 {
		t.Fatalf("size %d", g.Size())
	}

	trials, best, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		return (p["a"]-1)*(p["a"]-1) + p["b"]*p["b"], nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 9 {
		t.Fatalf("got %d trials", len(trials))
	}
	if p := trials[best].Params; p["a"] != 1 || p["b"] != 0 {
		t.Errorf("best params %v", p)
	}
	// last parameter varies fastest
	if trials[1].Params["a"] != 0 || trials[1].Params["b"] != 0 {
		t.Errorf("unexpected order: %v", trials[1].Params)
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g, _ := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	boom := errors.New("boom")

	trials, best, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 1 {
			return 0, boom
		}
		if p["x"] == 2 {
			return math.NaN(), nil
		}
		return 5, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if best != 2 || !errors.Is(trials[0].Err, boom) || trials[1].Err == nil {
		t.Errorf("best %d trials %+v", best, trials)
	}

	_, _, err = g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, boom
	})
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	g, _ := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, _, err := g.Search(ctx, func(context.Context, map[string]float64) (float64, error) {
		calls++
		cancel()
		return 1, nil
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Errorf("err %v after %d calls", err, calls)
	}
}

func TestNewGridSearchRejectsMismatch(t *testing.T) {
	if _, err := NewGridSearch([]string{"a"}, nil); err == nil {
		t.Error("expected error for missing range")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]float64{{}}); err == nil {
		t.Error("expected error for empty range")
	}
}
