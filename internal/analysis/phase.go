package analysis

import (
	"fmt"
	"strings"
)

type Point struct{ X, Y float64 }

// PhasePortrait holds two state components plotted against each other.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait picks columns xIdx and yIdx out of stored states.
func NewPhasePortrait(states [][]float64, xIdx, yIdx int) (*PhasePortrait, error) {
	p := &PhasePortrait{XIndex: xIdx, YIndex: yIdx, Points: make([]Point, 0, len(states))}
	for i, x := range states {
		if xIdx < 0 || yIdx < 0 || xIdx >= len(x) || yIdx >= len(x) {
			return nil, fmt.Errorf("analysis: row %d has %d columns, need %d and %d", i, len(x), xIdx, yIdx)
		}
		p.Points = append(p.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return p, nil
}

// Bounds returns the padded extent of the portrait.
func (p *PhasePortrait) Bounds() (minX, minY, maxX, maxY float64) {
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, minY - rangeY*0.1, maxX + rangeX*0.1, maxY + rangeY*0.1
}

// ASCII plots the portrait with axes where they cross the plotted area.
func (p *PhasePortrait) ASCII(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}
	minX, minY, maxX, maxY := p.Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	cell := func(x, y float64) (int, int) {
		col := int((x - minX) / rangeX * float64(width-1))
		row := height - 1 - int((y-minY)/rangeY*float64(height-1))
		return col, row
	}

	if minX <= 0 && maxX >= 0 {
		col, _ := cell(0, minY)
		for row := range canvas {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		_, row := cell(minX, 0)
		for col := range canvas[row] {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}
	for _, pt := range p.Points {
		col, row := cell(pt.X, pt.Y)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
