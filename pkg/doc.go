// Package pkg provides the libraries behind rxtimeline, a resource timeline
// chart: one lane per resource, one rectangle per scheduled activity, a time
// axis and a resource axis that swap when the chart is flipped.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. [core] - The chart model: state, scales, axes, tick marks and content
//     rectangles, wired together by a memoized selector graph.
//  2. [pipeline] - Orchestration (load → layout → render) with caching.
//  3. Infrastructure - [cache], [source], [io], [render/sink], [server],
//     [observability] and [errors].
//
// # Architecture
//
// The data flow through rxtimeline:
//
//	File / stdin / HTTP / MongoDB
//	         ↓
//	    [source] + [io] (decode activities)
//	         ↓
//	    [core/state] (events fold into chart state)
//	         ↓
//	    [core/timeline] (selectors derive the view model)
//	         ↓
//	    [render/sink] (SVG and JSON output)
//
// # Quick Start
//
//	opts := options.Default()
//	tl := timeline.New(&opts)
//	tl.Dispatch(
//	    state.Resized{Width: 800, Height: 600},
//	    state.ActivitiesLoaded{Activities: acts},
//	)
//	svg := sink.RenderSVG(tl.View(), sink.WithTitle("Site A"))
//
// Or let the pipeline do it, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "plan.csv",
//	    Formats: []string{"svg"},
//	})
//
// # Main Packages
//
// [core/selector] - Memoized derived values. A selector recomputes only when
// one of its inputs changed, compared by value.
//
// [core/state] - Chart state and the events that update it: resize, flip,
// load, drag, zoom, hover and select.
//
// [core/scale] - Time, band and zoomed scales plus tick generation.
//
// [core/axis], [core/tickmark], [core/content] - Axis lines, grid lines, tick
// marks and the event and resource rectangles.
//
// [core/timeline] - The public chart: Dispatch, View and Drop.
//
// [pipeline] - Loads a dataset, lays it out and renders it, caching each
// stage through [cache].
//
// [server] - HTTP API over the pipeline.
package pkg
