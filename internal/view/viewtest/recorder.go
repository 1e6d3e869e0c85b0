// Package viewtest provides a view.Surface that records device-space
// drawing operations for assertions.
package viewtest

import (
	"image/color"

	"github.com/san-kum/simlab/internal/view"
)

type Kind int

const (
	Background Kind = iota
	Line
	Circle
	Text
)

// Op is one recorded primitive in device pixels.
type Op struct {
	Kind     Kind
	X0, Y0   float64
	X1, Y1   float64
	R        float64
	Text     string
	Size     float64
	Weight   float64
	Style    view.Style
	Color    color.RGBA
	Mirrored bool
}

type Recorder struct {
	*view.Pen
	W, H float64
	Ops  []Op
}

func New(w, h float64) *Recorder {
	return &Recorder{Pen: view.NewPen(), W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Clear drops recorded ops and resets the pen.
func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Pen.Reset()
}

func (r *Recorder) Background(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: Background, Color: c})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64) {
	st := r.CurrentStyle()
	a, b := r.Device(x0, y0)
	c, d := r.Device(x1, y1)
	r.Ops = append(r.Ops, Op{
		Kind: Line, X0: a, Y0: b, X1: c, Y1: d,
		Weight: r.DeviceLength(st.Weight), Style: st, Color: st.Stroke,
	})
}

func (r *Recorder) Circle(cx, cy, rad float64) {
	st := r.CurrentStyle()
	a, b := r.Device(cx, cy)
	r.Ops = append(r.Ops, Op{
		Kind: Circle, X0: a, Y0: b, R: r.DeviceLength(rad),
		Weight: r.DeviceLength(st.Weight), Style: st, Color: st.Fill,
	})
}

func (r *Recorder) Text(s string, x, y, size float64) {
	st := r.CurrentStyle()
	a, b := r.Device(x, y)
	r.Ops = append(r.Ops, Op{
		Kind: Text, X0: a, Y0: b, Text: s, Size: r.DeviceLength(size),
		Style: st, Color: st.Fill, Mirrored: r.Matrix().Mirrored(),
	})
}

// Filter returns the recorded ops of kind k.
func (r *Recorder) Filter(k Kind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings of every recorded text op in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter(Text) {
		out = append(out, op.Text)
	}
	return out
}

var _ view.Surface = (*Recorder)(nil)
