package view

import "image/color"

// Surface is the contract a rendering host offers to the camera, the grid
// and the sketches: a transform stack, style state and a handful of
// primitives. Coordinates passed to primitives are in the current
// transform's space.
type Surface interface {
	Size() (w, h float64)

	Push()
	Pop()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(rad float64)

	Stroke(c color.RGBA, weight float64)
	NoStroke()
	Fill(c color.RGBA)
	NoFill()
	TextAlign(a Align)

	Background(c color.RGBA)
	Line(x0, y0, x1, y1 float64)
	Circle(cx, cy, r float64)
	// Text draws s upright at (x, y). size is in current units and
	// scales with the transform like Circle radii.
	Text(s string, x, y, size float64)
}

// Align is the horizontal anchor of a text run. Text is always vertically
// centred on its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style is the drawing state captured by Push and restored by Pop.
type Style struct {
	Stroke    color.RGBA
	Weight    float64
	HasStroke bool
	Fill      color.RGBA
	HasFill   bool
	Align     Align
}

type penState struct {
	m     Affine
	style Style
}

// Pen implements the state half of Surface. Hosts embed it and add Size,
// Background and the primitives, mapping through Device and DeviceLength.
type Pen struct {
	cur   penState
	saved []penState
}

func NewPen() *Pen {
	p := &Pen{}
	p.Reset()
	return p
}

// Reset restores the identity transform and default style and drops any
// unbalanced Push. Hosts call it at the start of every frame.
func (p *Pen) Reset() {
	p.cur = penState{
		m: Identity(),
		style: Style{
			Stroke:    color.RGBA{0, 0, 0, 255},
			Weight:    1,
			HasStroke: true,
			Fill:      color.RGBA{255, 255, 255, 255},
			HasFill:   true,
		},
	}
	p.saved = p.saved[:0]
}

func (p *Pen) Push() {
	p.saved = append(p.saved, p.cur)
}

func (p *Pen) Pop() {
	if len(p.saved) == 0 {
		return
	}
	p.cur = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
}

func (p *Pen) Depth() int { return len(p.saved) }

func (p *Pen) Translate(x, y float64)                 { p.cur.m = p.cur.m.Translate(x, y) }
func (p *Pen) Scale(sx, sy float64)                   { p.cur.m = p.cur.m.Scale(sx, sy) }
func (p *Pen) Rotate(rad float64)                     { p.cur.m = p.cur.m.Rotate(rad) }
func (p *Pen) Matrix() Affine                         { return p.cur.m }
func (p *Pen) CurrentStyle() Style                    { return p.cur.style }
func (p *Pen) TextAlign(a Align)                      { p.cur.style.Align = a }
func (p *Pen) NoStroke()                              { p.cur.style.HasStroke = false }
func (p *Pen) NoFill()                                { p.cur.style.HasFill = false }
func (p *Pen) Fill(c color.RGBA)                      { p.cur.style.Fill, p.cur.style.HasFill = c, true }
func (p *Pen) Device(x, y float64) (float64, float64) { return p.cur.m.Apply(x, y) }

func (p *Pen) Stroke(c color.RGBA, weight float64) {
	p.cur.style.Stroke = c
	p.cur.style.Weight = weight
	p.cur.style.HasStroke = true
}

// DeviceLength converts a length in current units into device pixels.
func (p *Pen) DeviceLength(l float64) float64 {
	return l * p.cur.m.LinearScale()
}

// TextWidth estimates the width of s at the given size, in the units of
// size, for hosts without font metrics.
func TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}

// AlignOffset is the device x offset of a text run's left edge relative
// to its anchor.
func AlignOffset(a Align, width float64) float64 {
	switch a {
	case AlignCenter:
		return -width / 2
	case AlignRight:
		return -width
	}
	return 0
}
