package metrics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
)

// Peak tracks the largest magnitude of one state component, such as the
// ball's height or the pendulum's swing angle.
type Peak struct {
	name  string
	index int
	peak  float64
	seen  bool
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index >= len(x) {
		return
	}
	v := math.Abs(x[p.index])
	if !p.seen || v > p.peak {
		p.peak, p.seen = v, true
	}
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() {
	p.peak, p.seen = 0, false
}

// Reversals counts upward turnarounds of one velocity component: a
// negative sample followed by a positive one. On the ball this counts
// bounces; on the pendulum, swings.
type Reversals struct {
	name  string
	index int
	last  float64
	count int
}

func NewReversals(name string, index int) *Reversals {
	return &Reversals{name: name, index: index}
}

func (r *Reversals) Name() string { return r.name }

func (r *Reversals) Observe(x dynamo.State, t float64) {
	if r.index >= len(x) {
		return
	}
	v := x[r.index]
	if r.last < 0 && v > 0 {
		r.count++
	}
	if v != 0 {
		r.last = v
	}
}

func (r *Reversals) Value() float64 { return float64(r.count) }

func (r *Reversals) Reset() {
	r.last, r.count = 0, 0
}
