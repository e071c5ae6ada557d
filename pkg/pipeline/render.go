package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	"github.com/matzehuels/rxtimeline/pkg/render/sink"
)

// Render encodes vm in every requested format. Formats are rendered
// concurrently; the view model is only read.
func Render(ctx context.Context, vm timeline.ViewModel, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(vm, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(vm timeline.ViewModel, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(vm, svgOptions(opts)...), nil
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.Indent {
			jsonOpts = append(jsonOpts, sink.WithIndent())
		}
		return sink.RenderJSON(vm, jsonOpts...)
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	if opts.Interactive {
		out = append(out, sink.WithInteraction())
	}
	if len(opts.Palette) > 0 {
		out = append(out, sink.WithPalette(opts.Palette))
	}
	return out
}
