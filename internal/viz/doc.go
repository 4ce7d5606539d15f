// Package viz provides terminal visualization for sweep evaluations.
//
//   - [Sweep]: asciigraph plot, one series per body
//   - [Live]: Bubble Tea viewer that animates a sweep over its time grid
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first sample
//	Q     - Quit
package viz
