// Package view maps world coordinates onto a drawing surface.
//
// A [Camera] owns pan and zoom and installs the world-to-screen transform
// on a [Surface]; a [Grid] draws the adaptive coordinate grid underneath
// the sketch. Every rendering host (terminal canvas, raylib window, SVG
// thumbnail) implements [Surface] by embedding a [Pen], which tracks the
// transform stack and drawing style so the host only has to rasterise
// device-space primitives.
//
// World coordinates have Y pointing up; screen coordinates have Y pointing
// down with the origin at the top-left corner.
package view
