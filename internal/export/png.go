package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/san-kum/simlab/internal/view"
)

// circleSegments is the polygon resolution used for circles.
const circleSegments = 48

// PNG rasterises drawing calls into an RGBA image with anti-aliasing.
// Text uses a fixed 7x13 bitmap face.
type PNG struct {
	*view.Pen
	Img  *image.RGBA
	Face font.Face
}

func NewPNG(w, h int) *PNG {
	return &PNG{
		Pen:  view.NewPen(),
		Img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		Face: basicfont.Face7x13,
	}
}

func (p *PNG) Size() (float64, float64) {
	b := p.Img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (p *PNG) Background(c color.RGBA) {
	p.Pen.Reset()
	draw.Draw(p.Img, p.Img.Bounds(), image.NewUniform(straight(c)), image.Point{}, draw.Src)
}

// straight reinterprets the theme's non-premultiplied colors.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (p *PNG) fill(path func(z *vector.Rasterizer), c color.RGBA) {
	b := p.Img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	path(z)
	z.Draw(p.Img, b, image.NewUniform(straight(c)), image.Point{})
}

func (p *PNG) Line(x0, y0, x1, y1 float64) {
	st := p.CurrentStyle()
	if !st.HasStroke {
		return
	}
	ax, ay := p.Device(x0, y0)
	bx, by := p.Device(x1, y1)
	length := math.Hypot(bx-ax, by-ay)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return
	}
	half := math.Max(p.DeviceLength(st.Weight), 1) / 2
	nx, ny := -(by-ay)/length*half, (bx-ax)/length*half
	p.fill(func(z *vector.Rasterizer) {
		z.MoveTo(float32(ax+nx), float32(ay+ny))
		z.LineTo(float32(bx+nx), float32(by+ny))
		z.LineTo(float32(bx-nx), float32(by-ny))
		z.LineTo(float32(ax-nx), float32(ay-ny))
		z.ClosePath()
	}, st.Stroke)
}

func ring(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		if reverse {
			a = -a
		}
		x, y := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func (p *PNG) Circle(cx, cy, r float64) {
	st := p.CurrentStyle()
	x, y := p.Device(cx, cy)
	dr := p.DeviceLength(r)
	if math.IsNaN(dr) || math.IsInf(dr, 0) || dr <= 0 {
		return
	}
	if st.HasFill {
		p.fill(func(z *vector.Rasterizer) { ring(z, x, y, dr, false) }, st.Fill)
	}
	if st.HasStroke {
		half := math.Max(p.DeviceLength(st.Weight), 1) / 2
		// outer ring minus inner ring, wound the other way
		p.fill(func(z *vector.Rasterizer) {
			ring(z, x, y, dr+half, false)
			ring(z, x, y, math.Max(dr-half, 0), true)
		}, st.Stroke)
	}
}

// Text draws s vertically centred on its anchor. size is ignored: the
// bitmap face has one size.
func (p *PNG) Text(s string, x, y, size float64) {
	st := p.CurrentStyle()
	if !st.HasFill {
		return
	}
	dx, dy := p.Device(x, y)
	d := &font.Drawer{Dst: p.Img, Src: image.NewUniform(straight(st.Fill)), Face: p.Face}
	width := float64(d.MeasureString(s)) / 64
	m := p.Face.Metrics()
	baseline := dy + float64(m.Ascent-m.Descent)/64/2
	d.Dot = fixed.P(int(math.Round(dx+view.AlignOffset(st.Align, width))), int(math.Round(baseline)))
	d.DrawString(s)
}

func (p *PNG) Encode(w io.Writer) error {
	return png.Encode(w, p.Img)
}
