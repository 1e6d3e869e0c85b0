// Package analysis characterises stored runs.
//
//   - [Dominant]: strongest oscillation frequency of a sampled signal
//   - [Summarize]: per-column range, mean and dominant frequency
//   - [NewPhasePortrait]: two state columns plotted against each other
//
// A ring pendulum swinging about its equilibrium shows one sharp peak; a
// bouncing ball shows its bounce rate while the bounces last.
package analysis
