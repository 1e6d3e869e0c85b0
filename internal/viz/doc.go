// Package viz hosts sketches in the terminal.
//
// [Surface] renders the view contract onto a braille [Canvas] (2x4 dots per
// cell, one color per cell, text overlaid on whole cells). [Model] is the
// Bubble Tea program around a sketch context.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	T     - Cycle color themes
//	WASD  - Pan (arrows too; drag with the mouse)
//	+/-   - Zoom (mouse wheel too)
//	Tab   - Show/hide the panel; j/k/h/l/enter operate it
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
