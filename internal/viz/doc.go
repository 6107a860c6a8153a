// Package viz shows rendered frames in the terminal.
//
// Frames are drawn as half-block cells: every character cell carries two
// vertically stacked pixels, the upper one as foreground and the lower one
// as background color.
//
// Which frame is shown is chosen from a level signal with [Select], the same
// rule a sound-reactive display uses: a louder level walks further through
// the animation. [DecayLevel] stands in for a microphone by rising on key
// presses and falling off every tick.
//
// # Key Bindings
//
//	Space - Bump the level
//	P     - Toggle autoplay
//	←/→   - Step one frame
//	T     - Cycle color themes
//	Q     - Quit
package viz
