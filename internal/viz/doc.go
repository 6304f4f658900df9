// Package viz shows rendered charts in the terminal.
//
// Every chart genplot draws ends in a display step that blocks until the
// user is done with it, the way a plotting window would:
//
//   - [Viewer]: a Bubble Tea program previewing the chart until dismissed
//   - [Command]: runs an external image viewer and waits for it to exit
//   - [Printer]: writes the preview to a writer and returns
//   - [Quiet]: reports where the figure was written
//
// Previews ([Preview]) draw line charts with asciigraph, scatter plots on a
// Braille [Canvas] and histograms, heatmaps and pie shares with lipgloss.
//
// # Key Bindings
//
//	Q/Esc/Enter - Close the chart
//	T           - Cycle color themes
//	?           - Show help overlay
package viz
