package view

import (
	"math"
	"strconv"
)

const (
	DefaultIdealCells = 8
	DefaultLabelSize  = 12
	maxGridLines      = 4000
)

// Grid draws the adaptive coordinate grid. The step is recomputed on every
// Draw so it tracks zoom without any cached state.
type Grid struct {
	IdealCells  float64
	Minor       bool
	Thumbnail   bool
	LabelSize   float64 // screen pixels
	LabelMargin float64 // screen pixels between an axis and its labels
	MajorWeight float64 // screen pixels
	MinorWeight float64
	AxisWeight  float64
}

func NewGrid() *Grid {
	return &Grid{
		IdealCells:  DefaultIdealCells,
		Minor:       true,
		LabelSize:   DefaultLabelSize,
		LabelMargin: 4,
		MajorWeight: 1,
		MinorWeight: 0.5,
		AxisWeight:  2,
	}
}

// decade returns k with 10^k <= x < 10^(k+1). log10 alone can land one
// decade off near exact powers of ten.
func decade(x float64) int {
	k := int(math.Floor(math.Log10(x)))
	if x/math.Pow10(k) >= 10 {
		k++
	} else if x/math.Pow10(k) < 1 {
		k--
	}
	return k
}

// NiceStep picks a grid spacing of 1, 2 or 5 times a power of ten for a
// view whose centre-to-edge distance is effectiveRange. It reports false
// for ranges that are not finite and positive.
func NiceStep(effectiveRange, idealCells float64) (float64, bool) {
	if idealCells <= 0 {
		idealCells = DefaultIdealCells
	}
	raw := 2 * effectiveRange / idealCells
	if !(raw > 0) || math.IsInf(raw, 0) {
		return 0, false
	}
	mag := math.Pow10(decade(raw))
	residual := raw / mag
	switch {
	case residual > 5:
		return 5 * mag, true
	case residual > 2:
		return 2 * mag, true
	}
	return mag, true
}

// LabelDecimals is the number of fraction digits needed to print
// multiples of step.
func LabelDecimals(step float64) int {
	if !(step > 0) || math.IsInf(step, 0) {
		return 0
	}
	return max(0, -decade(step))
}

// FormatLabel prints the i-th multiple of step without float noise or
// negative zero.
func FormatLabel(i int64, step float64) string {
	s := strconv.FormatFloat(float64(i)*step, 'f', LabelDecimals(step), 64)
	if s[0] == '-' {
		zero := true
		for _, r := range s[1:] {
			if r != '0' && r != '.' {
				zero = false
				break
			}
		}
		if zero {
			s = s[1:]
		}
	}
	return s
}

// Draw renders the grid for cam onto s. The camera transform must already
// be applied.
func (g *Grid) Draw(s Surface, cam *Camera, th Theme) {
	w, h := s.Size()
	sc := cam.Scale(w, h)
	if !(sc > 0) || math.IsInf(sc, 0) {
		return
	}
	step, ok := NiceStep(cam.EffectiveViewRange(), g.IdealCells)
	if !ok {
		return
	}
	left, bottom, right, top := cam.Visible(w, h)
	px := 1 / sc

	s.Push()
	defer s.Pop()

	if g.Minor {
		minor := step / 5
		s.Stroke(th.GridMinor, g.MinorWeight*px)
		// Every fifth minor line sits on a major line or an axis.
		forLines(left, right, minor, func(i int64, x float64) {
			if i%5 != 0 {
				s.Line(x, bottom, x, top)
			}
		})
		forLines(bottom, top, minor, func(i int64, y float64) {
			if i%5 != 0 {
				s.Line(left, y, right, y)
			}
		})
	}

	s.Stroke(th.Grid, g.MajorWeight*px)
	forLines(left, right, step, func(i int64, x float64) {
		if i != 0 {
			s.Line(x, bottom, x, top)
		}
	})
	forLines(bottom, top, step, func(i int64, y float64) {
		if i != 0 {
			s.Line(left, y, right, y)
		}
	})

	// Off-screen axes stick to the nearest edge.
	ax := clamp(0, left, right)
	ay := clamp(0, bottom, top)
	s.Stroke(th.Axis, g.AxisWeight*px)
	s.Line(ax, bottom, ax, top)
	s.Line(left, ay, right, ay)

	if g.Thumbnail || g.LabelSize <= 0 {
		return
	}
	g.drawLabels(s, th, step, px, ax, ay, left, bottom, right, top)
}

func (g *Grid) drawLabels(s Surface, th Theme, step, px, ax, ay, left, bottom, right, top float64) {
	size := g.LabelSize * px
	margin := g.LabelMargin * px
	s.NoStroke()
	s.Fill(th.Label)

	// X labels sit under the horizontal axis unless it is pinned to the
	// bottom edge, in which case they move above it.
	ly := ay - margin - size/2
	if ly-size/2 < bottom {
		ly = ay + margin + size/2
	}
	s.TextAlign(AlignCenter)
	forLines(left, right, step, func(i int64, x float64) {
		if i != 0 {
			label(s, FormatLabel(i, step), x, ly, size)
		}
	})

	// Y labels sit left of the vertical axis unless pinned to the left edge.
	lx := ax - margin
	align := AlignRight
	if lx-TextWidth("0.0", size) < left {
		lx = ax + margin
		align = AlignLeft
	}
	s.TextAlign(align)
	forLines(bottom, top, step, func(i int64, y float64) {
		if i != 0 {
			label(s, FormatLabel(i, step), lx, y, size)
		}
	})

	// The zero line of each axis gets its own label while the other axis
	// is pinned to an edge. With both axes in view one label marks the origin.
	switch {
	case ax == 0 && ay == 0:
		label(s, "0", lx, ly, size)
	case ax == 0:
		s.TextAlign(AlignCenter)
		label(s, "0", 0, ly, size)
	case ay == 0:
		label(s, "0", lx, 0, size)
	}
}

// label draws text at a world point with a local Y flip so the glyphs are
// upright under the camera's mirrored transform.
func label(s Surface, text string, x, y, size float64) {
	s.Push()
	s.Translate(x, y)
	s.Scale(1, -1)
	s.Text(text, 0, 0, size)
	s.Pop()
}

// forLines calls fn for every multiple of step in [lo, hi] with its index.
func forLines(lo, hi, step float64, fn func(i int64, v float64)) {
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	if math.IsNaN(first) || math.IsNaN(last) || last-first > maxGridLines {
		return
	}
	for i := int64(first); i <= int64(last); i++ {
		fn(i, float64(i)*step)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
