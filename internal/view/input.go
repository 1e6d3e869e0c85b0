package view

// Event is a host input event delivered between frames.
type Event interface{ event() }

// DragEvent is a pointer move with the primary button held. X and Y are
// where the drag started in screen pixels, DX and DY the movement since
// the previous event.
type DragEvent struct{ X, Y, DX, DY float64 }

// WheelEvent carries a scroll delta in wheel units (WheelNotch per click),
// positive when scrolling down.
type WheelEvent struct{ X, Y, Delta float64 }

type KeyEvent struct{ Key string }

type ResizeEvent struct{ W, H float64 }

func (DragEvent) event()   {}
func (WheelEvent) event()  {}
func (KeyEvent) event()    {}
func (ResizeEvent) event() {}

// Handler reacts to an event and reports whether it consumed it.
type Handler func(Event) bool

type subscriber struct {
	name string
	fn   Handler
}

// Dispatcher delivers events to subscribers in registration order until
// one consumes the event.
type Dispatcher struct {
	subs []subscriber
}

func (d *Dispatcher) Subscribe(name string, h Handler) {
	d.subs = append(d.subs, subscriber{name: name, fn: h})
}

func (d *Dispatcher) Unsubscribe(name string) {
	out := d.subs[:0]
	for _, s := range d.subs {
		if s.name != name {
			out = append(out, s)
		}
	}
	d.subs = out
}

func (d *Dispatcher) Subscribers() []string {
	names := make([]string, len(d.subs))
	for i, s := range d.subs {
		names[i] = s.name
	}
	return names
}

// Dispatch returns true if a subscriber consumed e.
func (d *Dispatcher) Dispatch(e Event) bool {
	for _, s := range d.subs {
		if s.fn(e) {
			return true
		}
	}
	return false
}

// Rect is a screen rectangle in pixels.
type Rect struct{ X, Y, W, H float64 }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// RegionGuard consumes drags and wheel scrolls whose pointer lies inside
// the rectangle returned by region, so the camera never sees them.
func RegionGuard(region func() Rect) Handler {
	return func(e Event) bool {
		switch e := e.(type) {
		case DragEvent:
			return region().Contains(e.X, e.Y)
		case WheelEvent:
			return region().Contains(e.X, e.Y)
		}
		return false
	}
}

// CameraHandler pans on drag and zooms on wheel. size reports the current
// surface dimensions.
func CameraHandler(cam *Camera, size func() (w, h float64)) Handler {
	return func(e Event) bool {
		switch e := e.(type) {
		case DragEvent:
			w, h := size()
			cam.Pan(e.DX, e.DY, w, h)
			return true
		case WheelEvent:
			cam.ZoomBy(e.Delta)
			return true
		}
		return false
	}
}
