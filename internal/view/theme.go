package view

import (
	"fmt"
	"image/color"
	"sort"
)

// Theme is a renderer independent palette.
type Theme struct {
	Name       string
	Background color.RGBA
	Grid       color.RGBA
	GridMinor  color.RGBA
	Axis       color.RGBA
	Label      color.RGBA
	Muted      color.RGBA
	Text       color.RGBA
}

var (
	ThemeLight = Theme{
		Name:       "light",
		Background: color.RGBA{247, 249, 252, 255},
		Grid:       color.RGBA{220, 220, 220, 150},
		GridMinor:  color.RGBA{235, 235, 235, 110},
		Axis:       color.RGBA{150, 150, 150, 150},
		Label:      color.RGBA{120, 120, 120, 255},
		Muted:      color.RGBA{136, 136, 136, 255},
		Text:       color.RGBA{40, 40, 40, 255},
	}
	ThemeDark = Theme{
		Name:       "dark",
		Background: color.RGBA{30, 30, 30, 255},
		Grid:       color.RGBA{70, 70, 70, 150},
		GridMinor:  color.RGBA{50, 50, 50, 110},
		Axis:       color.RGBA{170, 170, 170, 170},
		Label:      color.RGBA{160, 160, 160, 255},
		Muted:      color.RGBA{170, 170, 170, 255},
		Text:       color.RGBA{230, 230, 230, 255},
	}
)

var themes = map[string]Theme{
	ThemeLight.Name: ThemeLight,
	ThemeDark.Name:  ThemeDark,
}

func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Next cycles to the following theme in name order.
func (t Theme) Next() Theme {
	names := ThemeNames()
	for i, n := range names {
		if n == t.Name {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return ThemeLight
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex reads #rgb or #rrggbb into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("bad length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// Blend composites c over bg using c's alpha.
func Blend(c, bg color.RGBA) color.RGBA {
	a := float64(c.A) / 255
	mix := func(f, b uint8) uint8 { return uint8(float64(f)*a + float64(b)*(1-a) + 0.5) }
	return color.RGBA{mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B), 255}
}
