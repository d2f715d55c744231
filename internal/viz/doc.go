// Package viz is the terminal host for the atom scene.
//
// The package renders the same scene and animation state as the GPU window
// using the Bubble Tea framework:
//
//   - [Model]: the interactive host, pacing the animation loop with tea ticks
//   - [Projector]: draws bodies as braille wireframes through the scene camera
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	Arrows - Orbit the camera (hjkl also work)
//	+/-    - Zoom
//	L      - Toggle the light marker
//	G      - Toggle GIF recording
//	?      - Show help overlay
//
// # Recording
//
// G starts recording canvas frames; pressing it again writes an animated GIF
// to the current directory.
package viz
