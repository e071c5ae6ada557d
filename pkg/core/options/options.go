// Package options defines the chart configuration.
//
// [Options] is the complete, merged configuration read by every geometry
// layer. Callers never build it field by field; they describe deviations from
// [Default] as [Overrides] (every field optional, at any depth) and call
// [Merge], which also validates the result. An *Options returned by Merge is
// never mutated afterwards.
//
// Overrides can be decoded from TOML or JSON:
//
//	orientation = "Horizontal"
//	stroke_width = 2
//
//	[time_axis]
//	tick_line_length = 8
//	show_grid_lines = false
//
//	[type.delivery.activity]
//	font_size = 12
package options

import (
	"maps"

	"github.com/matzehuels/rxtimeline/pkg/core/orient"
)

// Axis configures one axis.
type Axis struct {
	TickLineLength float64 `json:"tickLineLength"`
	ShowGridLines  bool    `json:"showGridLines"`
	ShowAxisLine   bool    `json:"showAxisLine"`
	FontFace       string  `json:"fontFace"`
	FontSize       float64 `json:"fontSize"`
}

// Resource configures the resource lanes. Gap is the band padding as a
// fraction of the lane step; Padding is the inset of lane labels in pixels.
type Resource struct {
	Gap     float64 `json:"gap"`
	Padding float64 `json:"padding"`
}

// Activity configures activity rectangles.
type Activity struct {
	FontFace      string  `json:"fontFace"`
	FontSize      float64 `json:"fontSize"`
	LateralMargin float64 `json:"lateralMargin"`
	DisableDrag   bool    `json:"disableDrag"`
	Padding       float64 `json:"padding"`
}

// Margins is the space between the view border and the plot area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Options is the complete chart configuration.
type Options struct {
	Orientation  orient.Orientation  `json:"orientation"`
	TimeAxis     Axis                `json:"timeAxis"`
	ResourceAxis Axis                `json:"resourceAxis"`
	Resource     Resource            `json:"resource"`
	Activity     Activity            `json:"activity"`
	StrokeWidth  float64             `json:"strokeWidth"`
	Types        map[string]Activity `json:"type"`
	Margin       Margins             `json:"margin"`
}

// Default returns the documented default configuration.
func Default() Options {
	return Options{
		Orientation: orient.Vertical,
		TimeAxis: Axis{
			TickLineLength: 5,
			ShowGridLines:  true,
			ShowAxisLine:   true,
			FontFace:       "sans-serif",
			FontSize:       10,
		},
		ResourceAxis: Axis{
			TickLineLength: 0,
			ShowGridLines:  true,
			ShowAxisLine:   true,
			FontFace:       "sans-serif",
			FontSize:       16,
		},
		Resource: Resource{
			Gap:     0.25,
			Padding: 5,
		},
		Activity: Activity{
			FontFace:      "Arial",
			FontSize:      10,
			LateralMargin: 0,
			DisableDrag:   false,
			Padding:       5,
		},
		StrokeWidth: 3,
		Types:       map[string]Activity{},
		Margin:      Margins{Top: 50, Right: 50, Bottom: 50, Left: 50},
	}
}

// Axis returns the configuration of the given axis.
func (o *Options) Axis(a orient.AxisType) Axis {
	return orient.MatchAxis(a, o.TimeAxis, o.ResourceAxis)
}

// ActivityFor returns the activity configuration for an activity type,
// falling back to the global activity options for unknown types.
func (o *Options) ActivityFor(typ string) Activity {
	if a, ok := o.Types[typ]; ok {
		return a
	}
	return o.Activity
}

// clone returns a deep copy of o.
func (o Options) clone() Options {
	o.Types = maps.Clone(o.Types)
	if o.Types == nil {
		o.Types = map[string]Activity{}
	}
	return o
}
