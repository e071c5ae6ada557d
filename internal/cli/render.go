package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rxtimeline/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file|-|https://...|mongodb://...]",
		Short: "Render activities to SVG and/or JSON",
		Long: `Render a resource timeline from a JSON or CSV activity file, standard
input ("-"), an HTTP URL or a MongoDB collection.

With one format the output is written to --output as given. With several,
--output is a base path and each format gets its own extension.

Layouts and rendered outputs are cached locally, keyed by the content of the
activities and every option that affects the drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	chartFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed hover and drag script in the SVG")
	cmd.Flags().StringSliceVar(&opts.Palette, "palette", nil, "activity fill colors, cycled by type")
	cmd.Flags().BoolVar(&opts.Indent, "indent", false, "indent JSON output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reload from the database instead of the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, os.Stderr, "Rendering timeline...")
	spin.Start()
	res, err := runner.Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		return err
	}
	if spin.Cancelled() {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Rendered %d activities", res.Stats.Activities))

	paths, err := writeArtifacts(res.Artifacts, output, opts.Source)
	if err != nil {
		return err
	}

	p := printer{w: c.Out}
	p.success("Render complete")
	for _, path := range paths {
		p.file(path)
	}
	p.stats(res.Stats.Activities, res.Stats.Rejected, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	for _, r := range res.View.Rejected {
		p.warning("skipped %s: %s", r.Activity.ID, r.Reason)
	}
	for _, d := range res.View.Diagnostics {
		p.warning("%s", d.Message)
	}
	return nil
}

// writeArtifacts writes each artifact and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, output, input string) ([]string, error) {
	formats := slices.Sorted(maps.Keys(artifacts))
	var paths []string
	for _, format := range formats {
		path := output
		if path == "" || len(formats) > 1 {
			path = basePath(output, input) + "." + format
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
