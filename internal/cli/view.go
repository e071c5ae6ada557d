package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
	"github.com/matzehuels/rxtimeline/pkg/source"
	"github.com/matzehuels/rxtimeline/pkg/source/mongodb"
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [file|https://...|mongodb://...]",
		Short: "Explore and rearrange a timeline in the terminal",
		Long: `Open a timeline in an interactive terminal view.

Flip the axes, zoom and pan along time, highlight lanes and move activities
between lanes and times. Press w to write the moved activities back to the
file or collection they came from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			if opts.Source == "-" {
				return errors.New("view reads the keyboard; pass a file or mongodb:// source")
			}
			return c.runView(cmd.Context(), opts)
		},
	}

	chartFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runView(ctx context.Context, opts pipeline.Options) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ds, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	tl := timeline.New(opts.ChartOptions())
	tl.Dispatch(ds.Events()...)

	save, err := saverFor(opts)
	if err != nil {
		return err
	}
	model := NewTimelineModel(tl, filepath.Base(opts.Source), save)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// saverFor writes moved activities back to where they were loaded from.
// HTTP sources are read-only and get a nil saveFunc.
func saverFor(opts pipeline.Options) (saveFunc, error) {
	if source.IsHTTPURL(opts.Source) {
		return nil, nil
	}
	if source.IsMongoURI(opts.Source) {
		l, err := mongodb.NewLoader(mongodb.Config{
			URI:        opts.Source,
			Database:   opts.Database,
			Collection: opts.Collection,
		})
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, ds rxio.Dataset) error {
			_, err := l.Save(ctx, ds.Activities)
			return err
		}, nil
	}
	path := opts.Source
	return func(_ context.Context, ds rxio.Dataset) error {
		return rxio.ExportFile(ds, path)
	}, nil
}
