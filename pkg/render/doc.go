// Package render holds the output adapters that sit outside the chart
// geometry. See [sink] for the SVG and JSON encoders.
package render
