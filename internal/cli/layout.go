package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
)

// layoutCommand creates the layout command for computing the view model.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [file|-|https://...|mongodb://...]",
		Short: "Compute the timeline geometry and summarize it per lane",
		Long: `Compute the timeline geometry for a set of activities.

The layout command prints one row per resource lane. With --output it also
writes the full view model (axes, tick marks, lanes and rectangles) as JSON,
the same document 'render -f json' produces.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	chartFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the view model JSON to this file")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "reload from the database instead of the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the activities, computes the layout and prints the summary.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ds, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}

	spin := newSpinner(ctx, os.Stderr, "Computing layout...")
	spin.Start()
	vm, _, hit, err := runner.LayoutWithCacheInfo(ctx, ds, opts)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if spin.Cancelled() {
		return ctx.Err()
	}

	p := printer{w: c.Out}
	p.line(laneTable(vm, ds.Activities))
	p.stats(len(ds.Activities), len(vm.Rejected), hit)

	if output != "" {
		data, err := json.MarshalIndent(vm, "", "  ")
		if err != nil {
			return fmt.Errorf("encode view: %w", err)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		p.success("Layout written")
		p.file(output)
		p.newline()
		p.nextStep("Render", fmt.Sprintf("%s render %s", appName, opts.Source))
	}
	return nil
}

// laneSummary aggregates the placed activities of one lane.
type laneSummary struct {
	count       int
	first, last time.Time
	breadth     float64
}

// laneTable renders one row per lane with its activity count, time span
// and breadth in view units.
func laneTable(vm timeline.ViewModel, acts []state.Activity) string {
	placed := make(map[string]bool, len(vm.Events))
	for _, e := range vm.Events {
		placed[e.ID] = true
	}
	lanes := make(map[string]*laneSummary, len(vm.Resources))
	for _, r := range vm.Resources {
		lanes[r.ID] = &laneSummary{breadth: orient.Match(vm.ResourceAxis.Orientation, r.Height, r.Width)}
	}
	for _, a := range acts {
		l, ok := lanes[a.Series]
		if !ok || !placed[a.ID] {
			continue
		}
		if l.count == 0 || a.Start.Before(l.first) {
			l.first = a.Start
		}
		if l.count == 0 || a.Finish.After(l.last) {
			l.last = a.Finish
		}
		l.count++
	}

	rows := make([][]string, 0, len(vm.Resources))
	for _, r := range vm.Resources {
		l := lanes[r.ID]
		first, last := "—", "—"
		if l.count > 0 {
			first, last = l.first.Format(time.DateTime), l.last.Format(time.DateTime)
		}
		rows = append(rows, []string{r.ID, strconv.Itoa(l.count), first, last, fmt.Sprintf("%.1f", l.breadth)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Lane", "Activities", "First start", "Last finish", "Breadth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorCyan)
			default:
				return cell.Foreground(colorWhite)
			}
		}).
		Render()
}
