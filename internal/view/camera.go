package view

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCamera = errors.New("invalid camera")

const (
	DefaultZoomMin      = 0.1
	DefaultZoomMax      = 10.0
	DefaultZoomResponse = 1.001
	DefaultPanSpeed     = 1.0
	// WheelNotch is the zoom delta hosts feed for one discrete wheel click.
	WheelNotch = 100.0
)

// Camera is the pan/zoom state of a sketch view. X and Y are the world
// point shown at the centre of the screen.
type Camera struct {
	X, Y float64
	Zoom float64

	BaseViewRange float64
	ZoomMin       float64
	ZoomMax       float64
	ZoomResponse  float64
	PanSpeed      float64
}

func NewCamera(baseViewRange float64) (*Camera, error) {
	c := &Camera{
		Zoom:          1,
		BaseViewRange: baseViewRange,
		ZoomMin:       DefaultZoomMin,
		ZoomMax:       DefaultZoomMax,
		ZoomResponse:  DefaultZoomResponse,
		PanSpeed:      DefaultPanSpeed,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Camera) Validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	switch {
	case !finite(c.BaseViewRange) || c.BaseViewRange <= 0:
		return fmt.Errorf("%w: base view range %v", ErrInvalidCamera, c.BaseViewRange)
	case !finite(c.ZoomMin) || !finite(c.ZoomMax) || c.ZoomMin <= 0 || c.ZoomMax < c.ZoomMin:
		return fmt.Errorf("%w: zoom bounds [%v, %v]", ErrInvalidCamera, c.ZoomMin, c.ZoomMax)
	case !finite(c.ZoomResponse) || c.ZoomResponse <= 0:
		return fmt.Errorf("%w: zoom response %v", ErrInvalidCamera, c.ZoomResponse)
	case !finite(c.Zoom) || c.Zoom < c.ZoomMin || c.Zoom > c.ZoomMax:
		return fmt.Errorf("%w: zoom %v outside [%v, %v]", ErrInvalidCamera, c.Zoom, c.ZoomMin, c.ZoomMax)
	}
	return nil
}

// EffectiveViewRange is the world distance from the screen centre to the
// nearer screen edge.
func (c *Camera) EffectiveViewRange() float64 {
	return c.BaseViewRange / c.Zoom
}

// Scale is the number of screen pixels per world unit for a w×h surface.
func (c *Camera) Scale(w, h float64) float64 {
	return (math.Min(w, h) / 2) / c.EffectiveViewRange()
}

// Pan moves the view by a pointer drag of (dx, dy) screen pixels so the
// world point under the pointer follows it.
func (c *Camera) Pan(dx, dy, w, h float64) {
	s := c.Scale(w, h)
	if !(s > 0) || math.IsInf(s, 0) {
		return
	}
	c.X -= dx / s
	c.Y -= -dy / s
}

// ZoomBy applies a wheel delta. Positive deltas (scrolling down) zoom out.
// Results that are not finite and positive are dropped, then the zoom is
// clamped to [ZoomMin, ZoomMax].
func (c *Camera) ZoomBy(delta float64) {
	z := c.Zoom * math.Pow(c.ZoomResponse, -delta)
	if math.IsNaN(z) || math.IsInf(z, 0) || z <= 0 {
		return
	}
	c.Zoom = math.Max(c.ZoomMin, math.Min(c.ZoomMax, z))
}

// Keys is the set of held pan keys.
type Keys struct {
	Up, Down, Left, Right bool
}

// PanByKeys pans continuously while keys are held, at PanSpeed effective
// view ranges per second.
func (c *Camera) PanByKeys(k Keys, dt float64) {
	d := c.PanSpeed * c.EffectiveViewRange() * dt
	if k.Up {
		c.Y += d
	}
	if k.Down {
		c.Y -= d
	}
	if k.Left {
		c.X -= d
	}
	if k.Right {
		c.X += d
	}
}

// Apply installs the world-to-screen transform on s. Callers bracket it
// with Push/Pop.
func (c *Camera) Apply(s Surface) {
	w, h := s.Size()
	sc := c.Scale(w, h)
	s.Translate(w/2, h/2)
	s.Scale(sc, -sc)
	s.Translate(-c.X, -c.Y)
}

// Transform is the matrix Apply would install on a w×h surface.
func (c *Camera) Transform(w, h float64) Affine {
	sc := c.Scale(w, h)
	return Identity().Translate(w/2, h/2).Scale(sc, -sc).Translate(-c.X, -c.Y)
}

func (c *Camera) WorldToScreen(x, y, w, h float64) (float64, float64) {
	sc := c.Scale(w, h)
	return w/2 + (x-c.X)*sc, h/2 - (y-c.Y)*sc
}

func (c *Camera) ScreenToWorld(sx, sy, w, h float64) (float64, float64) {
	sc := c.Scale(w, h)
	return c.X + (sx-w/2)/sc, c.Y - (sy-h/2)/sc
}

// Visible is the world rectangle covered by a w×h surface.
func (c *Camera) Visible(w, h float64) (left, bottom, right, top float64) {
	sc := c.Scale(w, h)
	hw, hh := (w/2)/sc, (h/2)/sc
	return c.X - hw, c.Y - hh, c.X + hw, c.Y + hh
}

// Reset recentres on the origin at zoom 1, clamped into the zoom bounds.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = math.Max(c.ZoomMin, math.Min(c.ZoomMax, 1))
}
