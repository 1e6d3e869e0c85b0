package view_test

import (
	"math"
	"testing"

	"github.com/san-kum/simlab/internal/view"
	"github.com/san-kum/simlab/internal/view/viewtest"
)

func TestNiceStep(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"exact decade", 10, 10},
		{"just over one", 1.2, 1},
		{"two bucket edge", 2, 1},
		{"over two", 2.5, 2},
		{"thirty", 30, 20},
		{"five bucket edge", 5, 2},
		{"over five", 6, 5},
		{"sixty", 60, 50},
		{"just under ten", 9.99, 5},
		{"fraction", 0.3, 0.2},
		{"small", 0.0042, 0.002},
		{"large", 7.5e6, 5e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := view.NiceStep(tt.raw*view.DefaultIdealCells/2, view.DefaultIdealCells)
			if !ok {
				t.Fatalf("NiceStep reported degenerate range for raw %v", tt.raw)
			}
			if math.Abs(got-tt.want) > 1e-9*tt.want {
				t.Errorf("raw %v: got step %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNiceStepMantissa(t *testing.T) {
	for r := 1e-4; r < 1e6; r *= 1.37 {
		step, ok := view.NiceStep(r, view.DefaultIdealCells)
		if !ok {
			t.Fatalf("range %v: not ok", r)
		}
		k := math.Floor(math.Log10(step) + 1e-9)
		m := step / math.Pow(10, k)
		if math.Abs(m-1) > 1e-9 && math.Abs(m-2) > 1e-9 && math.Abs(m-5) > 1e-9 {
			t.Errorf("range %v: step %v has mantissa %v", r, step, m)
		}
		raw := 2 * r / view.DefaultIdealCells
		if step > raw*(1+1e-9) || raw >= 5*step {
			t.Errorf("range %v: step %v not within the bucket below raw %v", r, step, raw)
		}
	}
}

func TestNiceStepDegenerate(t *testing.T) {
	for _, r := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, ok := view.NiceStep(r, 8); ok {
			t.Errorf("range %v: expected not ok", r)
		}
	}
}

func TestLabelDecimals(t *testing.T) {
	tests := []struct {
		step float64
		want int
	}{
		{50, 0},
		{1, 0},
		{0.5, 1},
		{0.1, 1},
		{0.02, 2},
		{0.001, 3},
		{0, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := view.LabelDecimals(tt.step); got != tt.want {
			t.Errorf("LabelDecimals(%v) = %d, want %d", tt.step, got, tt.want)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		i    int64
		step float64
		want string
	}{
		{3, 0.1, "0.3"},
		{-7, 0.2, "-1.4"},
		{4, 50, "200"},
		{-1, 0.001, "-0.001"},
		{0, 0.5, "0.0"},
	}
	for _, tt := range tests {
		if got := view.FormatLabel(tt.i, tt.step); got != tt.want {
			t.Errorf("FormatLabel(%d, %v) = %q, want %q", tt.i, tt.step, got, tt.want)
		}
	}
}

func drawGrid(t *testing.T, cam *view.Camera, g *view.Grid) *viewtest.Recorder {
	t.Helper()
	rec := viewtest.New(800, 600)
	rec.Push()
	cam.Apply(rec)
	g.Draw(rec, cam, view.ThemeLight)
	rec.Pop()
	if rec.Depth() != 0 {
		t.Fatalf("unbalanced push/pop: depth %d", rec.Depth())
	}
	return rec
}

func TestGridLabelsUpright(t *testing.T) {
	cam, _ := view.NewCamera(100)
	rec := drawGrid(t, cam, view.NewGrid())

	texts := rec.Filter(viewtest.Text)
	if len(texts) == 0 {
		t.Fatal("no labels drawn")
	}
	zeros := 0
	for _, op := range texts {
		if op.Mirrored {
			t.Errorf("label %q drawn mirrored", op.Text)
		}
		if math.Abs(op.Size-view.DefaultLabelSize) > 1e-9 {
			t.Errorf("label %q size %v px, want %v", op.Text, op.Size, view.DefaultLabelSize)
		}
		if op.Text == "0" {
			zeros++
		}
	}
	if zeros != 1 {
		t.Errorf("got %d origin labels, want 1", zeros)
	}
}

func TestGridStrokeWeightInPixels(t *testing.T) {
	cam, _ := view.NewCamera(100)
	cam.Zoom = 7
	g := view.NewGrid()
	rec := drawGrid(t, cam, g)
	for _, op := range rec.Filter(viewtest.Line) {
		if op.Color == view.ThemeLight.Axis {
			if math.Abs(op.Weight-g.AxisWeight) > 1e-9 {
				t.Errorf("axis weight %v px, want %v", op.Weight, g.AxisWeight)
			}
			continue
		}
		if op.Weight > g.MajorWeight+1e-9 {
			t.Errorf("grid line weight %v px exceeds major weight", op.Weight)
		}
	}
}

func TestGridThumbnailHasNoLabels(t *testing.T) {
	cam, _ := view.NewCamera(100)
	g := view.NewGrid()
	g.Thumbnail = true
	rec := drawGrid(t, cam, g)
	if n := len(rec.Filter(viewtest.Text)); n != 0 {
		t.Errorf("thumbnail drew %d labels", n)
	}
	if len(rec.Filter(viewtest.Line)) == 0 {
		t.Error("thumbnail drew no grid lines")
	}
}

func TestGridAxesPinnedWhenOffscreen(t *testing.T) {
	cam, _ := view.NewCamera(10)
	cam.X, cam.Y = 1000, 1000
	g := view.NewGrid()
	rec := drawGrid(t, cam, g)

	var axes []viewtest.Op
	for _, op := range rec.Filter(viewtest.Line) {
		if op.Color == view.ThemeLight.Axis {
			axes = append(axes, op)
		}
	}
	if len(axes) != 2 {
		t.Fatalf("got %d axis lines, want 2", len(axes))
	}
	// Origin is down-left of the view, so the vertical axis hugs x=0 and
	// the horizontal axis hugs the bottom edge.
	if math.Abs(axes[0].X0) > 1e-6 {
		t.Errorf("vertical axis at x=%v, want left edge", axes[0].X0)
	}
	if math.Abs(axes[1].Y0-600) > 1e-6 {
		t.Errorf("horizontal axis at y=%v, want bottom edge", axes[1].Y0)
	}
	for _, s := range rec.Texts() {
		if s == "0" {
			t.Error("origin label drawn while origin is off screen")
		}
	}
}

func TestGridZeroLabelWithOneAxisPinned(t *testing.T) {
	tests := []struct {
		name       string
		camX, camY float64
		align      view.Align
	}{
		{"horizontal axis pinned", 0, 1000, view.AlignCenter},
		{"vertical axis pinned", 1000, 0, view.AlignLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam, _ := view.NewCamera(10)
			cam.X, cam.Y = tt.camX, tt.camY
			rec := drawGrid(t, cam, view.NewGrid())
			ox, oy := cam.WorldToScreen(0, 0, rec.W, rec.H)

			var zeros []viewtest.Op
			for _, op := range rec.Filter(viewtest.Text) {
				if op.Text == "0" {
					zeros = append(zeros, op)
				}
			}
			if len(zeros) != 1 {
				t.Fatalf("got %d zero labels, want 1", len(zeros))
			}
			z := zeros[0]
			if z.Style.Align != tt.align {
				t.Errorf("align = %v, want %v", z.Style.Align, tt.align)
			}
			if tt.camX == 0 && math.Abs(z.X0-ox) > 1e-6 {
				t.Errorf("x zero label at x=%v, want %v", z.X0, ox)
			}
			if tt.camY == 0 && math.Abs(z.Y0-oy) > 1e-6 {
				t.Errorf("y zero label at y=%v, want %v", z.Y0, oy)
			}
		})
	}
}

func TestGridLabelSizeIgnoresZoom(t *testing.T) {
	for _, zoom := range []float64{0.05, 1, 40} {
		cam, _ := view.NewCamera(100)
		cam.Zoom = zoom
		g := view.NewGrid()
		g.LabelSize = 15
		for _, op := range drawGrid(t, cam, g).Filter(viewtest.Text) {
			if math.Abs(op.Size-g.LabelSize) > 1e-9 {
				t.Fatalf("zoom %v: label %q size %v px, want %v", zoom, op.Text, op.Size, g.LabelSize)
			}
		}
	}
}

func TestGridMinorSkipsMajorLines(t *testing.T) {
	cam, _ := view.NewCamera(100)
	rec := drawGrid(t, cam, view.NewGrid())

	seen := map[float64]int{}
	for _, op := range rec.Filter(viewtest.Line) {
		if op.X0 == op.X1 {
			seen[math.Round(op.X0*100)/100]++
		}
	}
	for x, n := range seen {
		if n > 1 {
			t.Errorf("vertical line at x=%v drawn %d times", x, n)
		}
	}
}
