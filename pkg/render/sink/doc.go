// Package sink turns a [timeline.ViewModel] into output bytes.
//
// [RenderSVG] draws the chart as a standalone SVG document: lanes, grid
// lines, both axes with their tick marks, and one group per activity.
// [RenderJSON] encodes the view model as-is for clients that draw it
// themselves.
//
// Both are pure functions of the view model and may run concurrently.
package sink
