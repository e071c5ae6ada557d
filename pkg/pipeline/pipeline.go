// Package pipeline runs the load → layout → render pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read a dataset from a file, standard input, MongoDB or the
//     request itself
//  2. Layout: feed the dataset into a chart and take its view model
//  3. Render: encode the view model as SVG and/or JSON
//
// [Runner] adds content-addressed caching around layout and render:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "plan.csv",
//	    Formats: []string{"svg"},
//	})
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rxtimeline/pkg/cache"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	"github.com/matzehuels/rxtimeline/pkg/errors"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
)

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	// MaxDimension bounds the view size accepted from callers.
	MaxDimension = 20000.0
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options configures one pipeline run. It doubles as the body of the
// server's layout and render requests.
type Options struct {
	// Load options. Dataset, when set, takes precedence over Source.
	Source       string        `json:"source,omitempty"`
	SourceFormat rxio.Format   `json:"source_format,omitempty"`
	Database     string        `json:"database,omitempty"`
	Collection   string        `json:"collection,omitempty"`
	Series       []string      `json:"series,omitempty"`
	Dataset      *rxio.Dataset `json:"dataset,omitempty"`
	Refresh      bool          `json:"refresh,omitempty"`

	// Layout options
	Width       float64           `json:"width,omitempty"`
	Height      float64           `json:"height,omitempty"`
	Orientation string            `json:"orientation,omitempty"`
	Chart       options.Overrides `json:"options"`
	OptionsFile string            `json:"-"`
	Zoom        *state.ZoomEvent  `json:"zoom,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Palette     []string `json:"palette,omitempty"`
	Indent      bool     `json:"indent,omitempty"`

	Logger *log.Logger `json:"-"`

	chart     *options.Options
	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Dataset rxio.Dataset

	// DataHash is the content hash of the loaded dataset.
	DataHash string

	View timeline.ViewModel

	// Artifacts maps each requested format to its bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds sizes and stage timings.
type Stats struct {
	Activities int
	Rejected   int
	Rectangles int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool // all formats were cached
}

// ValidateFormat checks one format name. Names are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options, fills in defaults and
// resolves the chart options. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dataset == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or dataset is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout sets layout defaults and resolves the chart options.
func (o *Options) ValidateForLayout() error {
	o.setLoggerDefault()
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 || o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "view size %vx%v out of range (0, %v]", o.Width, o.Height, MaxDimension)
	}
	if o.Zoom != nil && o.Zoom.K <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "zoom factor must be positive, got %v", o.Zoom.K)
	}
	if o.chart != nil {
		return nil
	}

	base := options.Default()
	chart := &base
	if o.OptionsFile != "" {
		loaded, err := options.LoadFile(o.OptionsFile)
		if err != nil {
			return err
		}
		chart = loaded
	}
	ov := o.Chart
	if o.Orientation != "" {
		ov.Orientation = &o.Orientation
	}
	merged, err := options.Merge(*chart, ov)
	if err != nil {
		return err
	}
	o.chart = merged
	return nil
}

// ValidateForRender sets render defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	o.setLoggerDefault()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	slices.Sort(o.Formats)
	o.Formats = slices.Compact(o.Formats)
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ChartOptions returns the resolved chart options. It is nil until
// [Options.ValidateForLayout] succeeds.
func (o *Options) ChartOptions() *options.Options {
	return o.chart
}

// ViewKeyOpts returns the cache key inputs of the layout stage.
func (o *Options) ViewKeyOpts(ds rxio.Dataset) (cache.ViewKeyOpts, error) {
	chartHash, err := cache.HashJSON(struct {
		Chart *options.Options
		Zoom  *state.ZoomEvent
	}{o.chart, o.Zoom})
	if err != nil {
		return cache.ViewKeyOpts{}, fmt.Errorf("hash options: %w", err)
	}
	orientation := orient.Vertical
	if o.chart != nil {
		orientation = o.chart.Orientation
	}
	return cache.ViewKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		Orientation: orientation.String(),
		OptionsHash: chartHash,
		Resources:   ds.Resources,
	}, nil
}

// ArtifactKeyOpts returns the cache key inputs of one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	theme, _ := cache.HashJSON(struct {
		Title       string
		Interactive bool
		Palette     []string
		Indent      bool
	}{o.Title, o.Interactive, o.Palette, o.Indent})
	return cache.ArtifactKeyOpts{Format: format, Theme: theme}
}
