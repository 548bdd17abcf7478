// Package viz renders rigid body scenes in the terminal.
//
// The live view uses the Bubble Tea framework:
//
//   - [Model]: steps a [scenario.Scene] at 60 Hz and draws it
//   - [Canvas]: braille sub-pixel canvas with line, polygon and circle drawing
//   - [Camera]: maps world coordinates onto the canvas
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	B / C - Spawn a box or circle at the cursor
//	+ / - - Zoom
//	R     - Reset scenario
//	K     - Show contact points
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The G key records the canvas and writes rigid2d.gif in the current
// directory when recording stops.
package viz
