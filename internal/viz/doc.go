// Package viz renders model output in the terminal.
//
// Static output goes through [Chart] and [Sparkline]. The interactive
// [Explorer] is a Bubble Tea model for tuning the bath and the segment
// length while watching the occupation distribution respond.
//
// # Key Bindings
//
//	Tab   - Select parameter (u, beta, L)
//	Up/K  - Increase selected parameter
//	Down/J- Decrease selected parameter
//	R     - Reset to initial values
//	?     - Show help overlay
//	Q     - Quit
package viz
