package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
	"github.com/matzehuels/rxtimeline/pkg/source/mongodb"
)

// importCommand creates the import command, which copies activities from a
// file into MongoDB.
func (c *CLI) importCommand() *cobra.Command {
	var cfg mongodb.Config
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "import [file|-] --mongo mongodb://...",
		Short: "Upsert activities from a JSON or CSV file into MongoDB",
		Long: `Upsert activities from a JSON or CSV file into a MongoDB collection.

Activities without an id get a UUID derived from their content, so importing
the same file twice replaces documents instead of adding duplicates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return c.runImport(cmd.Context(), opts, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.URI, "mongo", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&cfg.Database, "database", mongodb.DefaultDatabase, "MongoDB database")
	cmd.Flags().StringVar(&cfg.Collection, "collection", mongodb.DefaultCollection, "MongoDB collection")
	cmd.Flags().StringVar((*string)(&opts.SourceFormat), "input-format", "", "input format: json, csv (default: from extension)")
	_ = cmd.MarkFlagRequired("mongo")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, opts pipeline.Options, cfg mongodb.Config) error {
	dst, err := mongodb.NewLoader(cfg)
	if err != nil {
		return err
	}
	ds, err := pipeline.Load(ctx, opts, c.Stdin)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}

	prog := newProgress(c.Logger)
	n, err := dst.Save(ctx, ds.Activities)
	if err != nil {
		return fmt.Errorf("save to %s: %w", dst.Name(), err)
	}
	prog.done(fmt.Sprintf("Saved %d activities", len(ds.Activities)))

	p := printer{w: c.Out}
	p.success("Imported %d activities into %s", len(ds.Activities), dst.Name())
	p.detail("%d new", n)
	return nil
}

// exportCommand creates the export command, which writes any source to a
// JSON or CSV file.
func (c *CLI) exportCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [file|-|https://...|mongodb://...] -o out.{json,csv}",
		Short: "Write activities to a JSON or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			ds, err := pipeline.Load(cmd.Context(), opts, c.Stdin)
			if err != nil {
				return fmt.Errorf("load %s: %w", opts.Source, err)
			}
			if err := rxio.ExportFile(ds, output); err != nil {
				return err
			}
			p := printer{w: c.Out}
			p.success("Exported %d activities", len(ds.Activities))
			p.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format")
	cmd.Flags().StringVar((*string)(&opts.SourceFormat), "input-format", "", "input format: json, csv (default: from extension)")
	cmd.Flags().StringVar(&opts.Database, "database", "", "MongoDB database (mongodb:// sources)")
	cmd.Flags().StringVar(&opts.Collection, "collection", "", "MongoDB collection (mongodb:// sources)")
	cmd.Flags().StringSliceVar(&opts.Series, "series", nil, "only export these series")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
