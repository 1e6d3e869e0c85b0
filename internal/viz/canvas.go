package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/simlab/internal/view"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell carries one foreground
// color (the last writer wins) and may be overlaid by a text rune.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
	Text          [][]rune
	TextColors    [][]color.RGBA
	Background    color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the cell buffers. Contents are cleared.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.RGBA, h)
	c.Text = make([][]rune, h)
	c.TextColors = make([][]color.RGBA, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		c.Text[i] = make([]rune, w)
		c.TextColors[i] = make([]color.RGBA, w)
	}
	c.Clear()
}

// Pixels is the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// SetColor sets a pixel and recolors its cell.
func (c *Canvas) SetColor(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = clr
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
			c.Text[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, clr color.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetColor(x0, y0, clr)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int, clr color.RGBA) {
	if r <= 0 {
		c.SetColor(cx, cy, clr)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.SetColor(cx+p[0], cy+p[1], clr)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle sets every sub-pixel within r of the centre.
func (c *Canvas) FillCircle(cx, cy, r int, clr color.RGBA) {
	if r <= 0 {
		c.SetColor(cx, cy, clr)
		return
	}
	for dy := -r; dy <= r; dy++ {
		if cy+dy < 0 || cy+dy >= c.Height*4 {
			continue
		}
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		lo, hi := max(cx-half, 0), min(cx+half, c.Width*2-1)
		for x := lo; x <= hi; x++ {
			c.SetColor(x, cy+dy, clr)
		}
	}
}

// PutText writes s into the text layer starting at cell (col, row).
// Runes outside the canvas are dropped.
func (c *Canvas) PutText(col, row int, s string, clr color.RGBA) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.Text[row][col] = r
			c.TextColors[row][col] = clr
		}
		col++
	}
}

// Cell returns the rune shown at (col, row): text wins over dots.
func (c *Canvas) Cell(col, row int) (rune, color.RGBA) {
	if t := c.Text[row][col]; t != 0 {
		return t, c.TextColors[row][col]
	}
	return c.Grid[row][col], c.Colors[row][col]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with colors. Consecutive cells sharing a color
// are emitted as one styled run.
func (c *Canvas) Render() string {
	bg := lipgloss.Color(view.Hex(c.Background))
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		var runColor color.RGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(view.Hex(runColor)))
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			r, clr := c.Cell(col, row)
			if clr != runColor {
				flush()
				runColor = clr
			}
			run.WriteRune(r)
		}
		flush()
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
