package export

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/simlab/internal/view"
)

// SVG records drawing calls as SVG elements in device pixels.
type SVG struct {
	*view.Pen
	W, H float64

	bg   color.RGBA
	body strings.Builder
}

func NewSVG(w, h float64) *SVG {
	return &SVG{Pen: view.NewPen(), W: w, H: h}
}

func (s *SVG) Size() (float64, float64) { return s.W, s.H }

// Background discards everything drawn so far.
func (s *SVG) Background(c color.RGBA) {
	s.Pen.Reset()
	s.bg = c
	s.body.Reset()
}

func paint(attr string, c color.RGBA) string {
	out := fmt.Sprintf(`%s="%s"`, attr, view.Hex(c))
	if c.A != 255 {
		out += fmt.Sprintf(` %s-opacity="%.3f"`, attr, float64(c.A)/255)
	}
	return out
}

func (s *SVG) Line(x0, y0, x1, y1 float64) {
	st := s.CurrentStyle()
	if !st.HasStroke {
		return
	}
	ax, ay := s.Device(x0, y0)
	bx, by := s.Device(x1, y1)
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s stroke-width="%.2f"/>`+"\n",
		ax, ay, bx, by, paint("stroke", st.Stroke), s.DeviceLength(st.Weight))
}

func (s *SVG) Circle(cx, cy, r float64) {
	st := s.CurrentStyle()
	if !st.HasFill && !st.HasStroke {
		return
	}
	x, y := s.Device(cx, cy)
	fill := `fill="none"`
	if st.HasFill {
		fill = paint("fill", st.Fill)
	}
	stroke := ""
	if st.HasStroke {
		stroke = fmt.Sprintf(` %s stroke-width="%.2f"`, paint("stroke", st.Stroke), s.DeviceLength(st.Weight))
	}
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" %s%s/>`+"\n", x, y, s.DeviceLength(r), fill, stroke)
}

var anchors = map[view.Align]string{
	view.AlignLeft:   "start",
	view.AlignCenter: "middle",
	view.AlignRight:  "end",
}

// Text is placed at its device anchor, upright whatever the transform.
// size scales with the transform like any other length.
func (s *SVG) Text(str string, x, y, size float64) {
	st := s.CurrentStyle()
	if !st.HasFill {
		return
	}
	dx, dy := s.Device(x, y)
	fmt.Fprintf(&s.body, `<text x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" text-anchor="%s" dominant-baseline="middle" %s>%s</text>`+"\n",
		dx, dy, s.DeviceLength(size), anchors[st.Align], paint("fill", st.Fill), html.EscapeString(str))
}

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.W, s.H, s.W, s.H, view.Hex(s.bg))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
