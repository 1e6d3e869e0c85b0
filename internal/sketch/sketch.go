// Package sketch wires a one-body model to a camera, a grid and a
// parameter panel, and drives it one frame at a time.
//
// A [Context] holds everything a running sketch needs. Hosts call
// [Context.Frame] once per display frame and forward input through
// [Context.Input]; headless runs use [Runner] instead.
package sketch

import (
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/panel"
	"github.com/san-kum/simlab/internal/view"
)

// Sketch is one hard-coded scene: a system, its initial state, how it is
// drawn and which of its parameters the panel exposes.
type Sketch interface {
	Kind() string
	Title() string
	System() dynamo.System
	// Initial builds the state used on start and on every reset.
	Initial() dynamo.State
	// TimeScale converts host frame seconds into simulation time.
	TimeScale() float64
	StartsPaused() bool
	// Columns names the state components, in order.
	Columns() []string
	Draw(f Frame, x dynamo.State)
	// Bind adds the sketch's tunables to the panel root and its live
	// readouts to the monitor folder.
	Bind(root, monitors *panel.Folder, c *Context)
}

// Frame is the drawing target handed to Sketch.Draw, already in world
// coordinates.
type Frame struct {
	view.Surface
	Theme view.Theme
	// Pixel is the size of one screen pixel in world units.
	Pixel float64

	Left, Bottom, Right, Top float64
}
