package pipeline

import (
	"context"

	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/observability"
)

// Layout loads ds into a fresh chart sized and configured by opts and
// returns its view model. Rejected activities and scale diagnostics are
// logged; neither fails the layout.
func Layout(ctx context.Context, ds rxio.Dataset, opts Options) (timeline.ViewModel, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return timeline.ViewModel{}, err
	}

	tl := timeline.New(opts.chart)
	tl.Dispatch(ChartEvents(ds, opts)...)
	vm := tl.View()

	for _, r := range vm.Rejected {
		opts.Logger.Warn("skipped activity", "id", r.Activity.ID, "series", r.Activity.Series, "reason", r.Reason)
		observability.Pipeline().OnActivityRejected(ctx, r.Activity.ID, r.Reason)
	}
	for _, d := range vm.Diagnostics {
		opts.Logger.Warn("chart diagnostic", "code", d.Code, "message", d.Message)
	}
	return vm, nil
}

// ChartEvents returns the events that size a chart to opts, load ds into it
// and apply the requested zoom. Anything that replays a client's drag must
// start from the same events the client's layout was built from.
func ChartEvents(ds rxio.Dataset, opts Options) []state.Event {
	events := []state.Event{state.Resized{Width: opts.Width, Height: opts.Height}}
	events = append(events, ds.Events()...)
	if opts.Zoom != nil {
		events = append(events, state.Zoomed{Zoom: *opts.Zoom})
	}
	return events
}
