package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/simlab/internal/analysis"
)

// TrajectorySVG draws a phase portrait as a single path scaled to fit
// width x height, with 10% padding.
func TrajectorySVG(p *analysis.PhasePortrait, width, height int, strokeColor, background string) string {
	if p == nil || len(p.Points) < 2 {
		return ""
	}
	minX, minY, maxX, maxY := p.Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, pt := range p.Points {
		x := (pt.X - minX) / rangeX * float64(width)
		y := float64(height) - (pt.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
