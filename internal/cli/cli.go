// Package cli implements the rxtimeline command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rxtimeline/pkg/buildinfo"
	"github.com/matzehuels/rxtimeline/pkg/cache"
	"github.com/matzehuels/rxtimeline/pkg/observability"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is used for the cache directory and in command examples.
const appName = "rxtimeline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdin is read when a command's input is "-".
	Stdin io.Reader
	// Out receives command results; logs go to the logger.
	Out io.Writer

	verbose bool
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdin:  os.Stdin,
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rxtimeline lays out and renders resource timelines",
		Long: `rxtimeline turns a list of scheduled activities into a resource timeline:
one lane per resource, one rectangle per activity, with time and resource
axes that can be flipped between vertical and horizontal.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			hooks := logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the root command with ctx.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	root.SetOut(c.Out)
	return root.ExecuteContext(ctx)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.Stdin = c.Stdin
	return r, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rxtimeline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags binds the load and layout flags shared by layout, render and
// view to opts.
func chartFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVar((*string)(&opts.SourceFormat), "input-format", "", "input format: json, csv (default: from extension)")
	f.StringVar(&opts.Database, "database", "", "MongoDB database (mongodb:// sources)")
	f.StringVar(&opts.Collection, "collection", "", "MongoDB collection (mongodb:// sources)")
	f.StringSliceVar(&opts.Series, "series", nil, "only load these series, in this lane order")
	f.Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "view width")
	f.Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "view height")
	f.StringVar(&opts.Orientation, "orientation", "", "time axis orientation: vertical, horizontal")
	f.StringVar(&opts.OptionsFile, "options", "", "chart options file (TOML, YAML or JSON)")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the output path without extension. An empty output
// strips the input's extension; stdin and database inputs fall back to
// "timeline".
func basePath(output, input string) string {
	if output == "" {
		if input == "-" || strings.Contains(input, "://") {
			return "timeline"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
