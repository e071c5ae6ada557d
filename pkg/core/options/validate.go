package options

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Validate checks o for values the geometry cannot work with. All problems
// are reported together; each carries [errors.ErrCodeInvalidConfig].
func (o *Options) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if !o.Orientation.Valid() {
		add(errors.New(errors.ErrCodeInvalidConfig, "unrecognized orientation %d", int(o.Orientation)))
	}
	add(validateAxis("timeAxis", o.TimeAxis))
	add(validateAxis("resourceAxis", o.ResourceAxis))

	if !finite(o.Resource.Gap) || o.Resource.Gap < 0 || o.Resource.Gap >= 1 {
		add(errors.New(errors.ErrCodeInvalidConfig, "resource.gap must be in [0, 1), got %v", o.Resource.Gap))
	}
	add(nonNegative("resource.padding", o.Resource.Padding))
	add(validateActivity("activity", o.Activity))
	add(nonNegative("strokeWidth", o.StrokeWidth))
	add(nonNegative("margin.top", o.Margin.Top))
	add(nonNegative("margin.right", o.Margin.Right))
	add(nonNegative("margin.bottom", o.Margin.Bottom))
	add(nonNegative("margin.left", o.Margin.Left))

	// Sorted for deterministic error order.
	for _, name := range slices.Sorted(maps.Keys(o.Types)) {
		if err := errors.ValidateTypeName(name); err != nil {
			add(err)
			continue
		}
		add(validateActivity("type."+name+".activity", o.Types[name]))
	}

	return errors.Join(errs...)
}

func validateAxis(path string, a Axis) error {
	if err := nonNegative(path+".tickLineLength", a.TickLineLength); err != nil {
		return err
	}
	if err := positive(path+".fontSize", a.FontSize); err != nil {
		return err
	}
	if err := errors.ValidateFontFace(a.FontFace); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s.fontFace", path)
	}
	return nil
}

func validateActivity(path string, a Activity) error {
	if err := positive(path+".fontSize", a.FontSize); err != nil {
		return err
	}
	if err := nonNegative(path+".lateralMargin", a.LateralMargin); err != nil {
		return err
	}
	if err := nonNegative(path+".padding", a.Padding); err != nil {
		return err
	}
	if err := errors.ValidateFontFace(a.FontFace); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s.fontFace", path)
	}
	return nil
}

func positive(path string, v float64) error {
	if !finite(v) || v <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", path, v)
	}
	return nil
}

func nonNegative(path string, v float64) error {
	if !finite(v) || v < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", path, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
