// Package export renders sketches and runs to image files.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/simlab/internal/sketch"
)

const (
	DefaultThumbWidth  = 320
	DefaultThumbHeight = 240
)

var ErrUnknownFormat = errors.New("export: unknown image format")

// FormatFor picks an image format from a file extension.
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg", ".png":
		return ext[1:], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Render draws exactly one frame of ctx and encodes it. The frame never
// steps the simulation.
func Render(ctx *sketch.Context, format string, w, h int, out io.Writer) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("export: size %dx%d must be positive", w, h)
	}
	switch format {
	case "svg":
		s := NewSVG(float64(w), float64(h))
		ctx.Frame(s, 0)
		_, err := s.WriteTo(out)
		return err
	case "png":
		p := NewPNG(w, h)
		ctx.Frame(p, 0)
		return p.Encode(out)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
