package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/simlab/internal/view"
)

// Surface renders onto a braille Canvas. Device units are braille dots, so
// a cell is 2 units wide and 4 tall and text snaps to whole cells.
type Surface struct {
	*view.Pen
	Canvas *Canvas
}

func NewSurface(cols, rows int) *Surface {
	return &Surface{Pen: view.NewPen(), Canvas: NewCanvas(cols, rows)}
}

func (s *Surface) Size() (float64, float64) {
	w, h := s.Canvas.Pixels()
	return float64(w), float64(h)
}

// Background clears the canvas and resets the transform stack.
func (s *Surface) Background(c color.RGBA) {
	s.Pen.Reset()
	s.Canvas.Clear()
	s.Canvas.Background = c
}

func (s *Surface) color(c color.RGBA) color.RGBA {
	return view.Blend(c, s.Canvas.Background)
}

func (s *Surface) Line(x0, y0, x1, y1 float64) {
	st := s.CurrentStyle()
	if !st.HasStroke {
		return
	}
	dx0, dy0 := s.Device(x0, y0)
	dx1, dy1 := s.Device(x1, y1)
	if !finite(dx0, dy0, dx1, dy1) {
		return
	}
	w, h := s.Size()
	dx0, dy0, dx1, dy1, ok := clipLine(dx0, dy0, dx1, dy1, -2, -2, w+2, h+2)
	if !ok {
		return
	}
	clr := s.color(st.Stroke)
	ax, ay, bx, by := round(dx0), round(dy0), round(dx1), round(dy1)
	s.Canvas.DrawLine(ax, ay, bx, by, clr)
	if s.DeviceLength(st.Weight) >= 2 {
		// thicken across the dominant direction
		if absInt(bx-ax) >= absInt(by-ay) {
			s.Canvas.DrawLine(ax, ay+1, bx, by+1, clr)
		} else {
			s.Canvas.DrawLine(ax+1, ay, bx+1, by, clr)
		}
	}
}

// Circle draws a disc of radius r in current units. r is measured with the
// transform's linear scale, so circles stay round under mirrored axes.
func (s *Surface) Circle(cx, cy, r float64) {
	dx, dy := s.Device(cx, cy)
	dr := s.DeviceLength(r)
	if !finite(dx, dy, dr) {
		return
	}
	x, y, rad := round(dx), round(dy), round(dr)
	st := s.CurrentStyle()
	if st.HasFill {
		s.Canvas.FillCircle(x, y, rad, s.color(st.Fill))
	}
	if st.HasStroke {
		s.Canvas.DrawCircle(x, y, rad, s.color(st.Stroke))
	}
}

// Text writes s into the text layer of the cell row containing the anchor.
// The size is ignored: the terminal has one font size.
func (s *Surface) Text(str string, x, y, size float64) {
	st := s.CurrentStyle()
	if !st.HasFill || str == "" {
		return
	}
	dx, dy := s.Device(x, y)
	if !finite(dx, dy) {
		return
	}
	width := float64(len([]rune(str)))
	col := int(math.Round(dx/2 + view.AlignOffset(st.Align, width)))
	row := int(math.Floor(dy / 4))
	s.Canvas.PutText(col, row, str, s.color(st.Fill))
}

// Render returns the colored canvas.
func (s *Surface) Render() string { return s.Canvas.Render() }

// clipLine clips a segment to a rectangle (Liang-Barsky).
func clipLine(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func round(v float64) int { return int(math.Round(v)) }

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
