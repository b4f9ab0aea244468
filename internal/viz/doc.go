// Package viz runs the particle network in a terminal.
//
// Frames are drawn onto a braille [Canvas], which doubles as a
// surface.Surface whose dots each cover Scale logical pixels. The Bubble Tea
// [Model] drives the animation loop from its 60 Hz tick, forwards mouse
// motion to the pointer tracker and window resizes to the surface manager.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Respawn particles
//	T     - Cycle color themes
//	S     - Save an SVG snapshot
//	?     - Show help overlay
//	Q     - Quit
package viz
