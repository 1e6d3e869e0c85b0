package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/simlab/internal/view"
)

// Surface draws the view contract with raylib primitives inside an open
// BeginDrawing/EndDrawing pair.
type Surface struct {
	*view.Pen
	Font rl.Font
	w, h float64
}

func NewSurface(font rl.Font) *Surface {
	return &Surface{Pen: view.NewPen(), Font: font}
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) resize(w, h int) { s.w, s.h = float64(w), float64(h) }

func rlColor(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func (s *Surface) Background(c color.RGBA) {
	s.Pen.Reset()
	rl.ClearBackground(rlColor(c))
}

func (s *Surface) Line(x0, y0, x1, y1 float64) {
	st := s.CurrentStyle()
	if !st.HasStroke {
		return
	}
	ax, ay := s.Device(x0, y0)
	bx, by := s.Device(x1, y1)
	thick := float32(s.DeviceLength(st.Weight))
	if thick < 1 {
		thick = 1
	}
	rl.DrawLineEx(vec(ax, ay), vec(bx, by), thick, rlColor(st.Stroke))
}

func (s *Surface) Circle(cx, cy, r float64) {
	st := s.CurrentStyle()
	x, y := s.Device(cx, cy)
	dr := float32(s.DeviceLength(r))
	if st.HasFill {
		rl.DrawCircleV(vec(x, y), dr, rlColor(st.Fill))
	}
	if st.HasStroke {
		rl.DrawCircleLines(int32(x), int32(y), dr, rlColor(st.Stroke))
	}
}

// Text draws s centred vertically on its anchor. size is in current
// units, like circle radii and stroke weights.
func (s *Surface) Text(str string, x, y, size float64) {
	st := s.CurrentStyle()
	if !st.HasFill {
		return
	}
	dx, dy := s.Device(x, y)
	fs := float32(s.DeviceLength(size))
	m := rl.MeasureTextEx(s.Font, str, fs, 1)
	left := dx + view.AlignOffset(st.Align, float64(m.X))
	rl.DrawTextEx(s.Font, str, vec(left, dy-float64(m.Y)/2), fs, 1, rlColor(st.Fill))
}

func vec(x, y float64) rl.Vector2 { return rl.NewVector2(float32(x), float32(y)) }
