package options

import (
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// AxisOverrides is the partial form of [Axis].
type AxisOverrides struct {
	TickLineLength *float64 `json:"tickLineLength,omitempty" toml:"tick_line_length" yaml:"tick_line_length"`
	ShowGridLines  *bool    `json:"showGridLines,omitempty" toml:"show_grid_lines" yaml:"show_grid_lines"`
	ShowAxisLine   *bool    `json:"showAxisLine,omitempty" toml:"show_axis_line" yaml:"show_axis_line"`
	FontFace       *string  `json:"fontFace,omitempty" toml:"font_face" yaml:"font_face"`
	FontSize       *float64 `json:"fontSize,omitempty" toml:"font_size" yaml:"font_size"`
}

// ResourceOverrides is the partial form of [Resource].
type ResourceOverrides struct {
	Gap     *float64 `json:"gap,omitempty" toml:"gap" yaml:"gap"`
	Padding *float64 `json:"padding,omitempty" toml:"padding" yaml:"padding"`
}

// ActivityOverrides is the partial form of [Activity].
type ActivityOverrides struct {
	FontFace      *string  `json:"fontFace,omitempty" toml:"font_face" yaml:"font_face"`
	FontSize      *float64 `json:"fontSize,omitempty" toml:"font_size" yaml:"font_size"`
	LateralMargin *float64 `json:"lateralMargin,omitempty" toml:"lateral_margin" yaml:"lateral_margin"`
	DisableDrag   *bool    `json:"disableDrag,omitempty" toml:"disable_drag" yaml:"disable_drag"`
	Padding       *float64 `json:"padding,omitempty" toml:"padding" yaml:"padding"`
}

// TypeOverrides holds the per-activity-type overrides.
type TypeOverrides struct {
	Activity *ActivityOverrides `json:"activity,omitempty" toml:"activity" yaml:"activity"`
}

// MarginOverrides is the partial form of [Margins].
type MarginOverrides struct {
	Top    *float64 `json:"top,omitempty" toml:"top" yaml:"top"`
	Right  *float64 `json:"right,omitempty" toml:"right" yaml:"right"`
	Bottom *float64 `json:"bottom,omitempty" toml:"bottom" yaml:"bottom"`
	Left   *float64 `json:"left,omitempty" toml:"left" yaml:"left"`
}

// Overrides is a deeply partial [Options]. Nil fields keep the base value.
type Overrides struct {
	Orientation  *string                  `json:"orientation,omitempty" toml:"orientation" yaml:"orientation"`
	TimeAxis     *AxisOverrides           `json:"timeAxis,omitempty" toml:"time_axis" yaml:"time_axis"`
	ResourceAxis *AxisOverrides           `json:"resourceAxis,omitempty" toml:"resource_axis" yaml:"resource_axis"`
	Resource     *ResourceOverrides       `json:"resource,omitempty" toml:"resource" yaml:"resource"`
	Activity     *ActivityOverrides       `json:"activity,omitempty" toml:"activity" yaml:"activity"`
	StrokeWidth  *float64                 `json:"strokeWidth,omitempty" toml:"stroke_width" yaml:"stroke_width"`
	Type         map[string]TypeOverrides `json:"type,omitempty" toml:"type" yaml:"type"`
	Margin       *MarginOverrides         `json:"margin,omitempty" toml:"margin" yaml:"margin"`
}

// New merges ov over [Default].
func New(ov Overrides) (*Options, error) {
	return Merge(Default(), ov)
}

// Merge applies ov on top of base and validates the result. Errors carry
// [errors.ErrCodeInvalidConfig]; a failed merge never yields options.
//
// Per-type activity overrides are resolved against the merged global
// activity options, so a type only needs to name the fields it changes.
func Merge(base Options, ov Overrides) (*Options, error) {
	o := base.clone()

	if ov.Orientation != nil {
		parsed, err := orient.ParseOrientation(*ov.Orientation)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "orientation")
		}
		o.Orientation = parsed
	}
	mergeAxis(&o.TimeAxis, ov.TimeAxis)
	mergeAxis(&o.ResourceAxis, ov.ResourceAxis)
	if r := ov.Resource; r != nil {
		set(&o.Resource.Gap, r.Gap)
		set(&o.Resource.Padding, r.Padding)
	}
	mergeActivity(&o.Activity, ov.Activity)
	set(&o.StrokeWidth, ov.StrokeWidth)
	if m := ov.Margin; m != nil {
		set(&o.Margin.Top, m.Top)
		set(&o.Margin.Right, m.Right)
		set(&o.Margin.Bottom, m.Bottom)
		set(&o.Margin.Left, m.Left)
	}

	for name, t := range ov.Type {
		a, ok := o.Types[name]
		if !ok {
			a = o.Activity
		}
		mergeActivity(&a, t.Activity)
		o.Types[name] = a
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func mergeAxis(dst *Axis, ov *AxisOverrides) {
	if ov == nil {
		return
	}
	set(&dst.TickLineLength, ov.TickLineLength)
	set(&dst.ShowGridLines, ov.ShowGridLines)
	set(&dst.ShowAxisLine, ov.ShowAxisLine)
	set(&dst.FontFace, ov.FontFace)
	set(&dst.FontSize, ov.FontSize)
}

func mergeActivity(dst *Activity, ov *ActivityOverrides) {
	if ov == nil {
		return
	}
	set(&dst.FontFace, ov.FontFace)
	set(&dst.FontSize, ov.FontSize)
	set(&dst.LateralMargin, ov.LateralMargin)
	set(&dst.DisableDrag, ov.DisableDrag)
	set(&dst.Padding, ov.Padding)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
