package pipeline

import (
	"context"
	"io"

	"github.com/matzehuels/rxtimeline/pkg/errors"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/source"
)

// Loader returns the loader that opts describes. stdin backs the "-"
// source.
func Loader(opts Options, stdin io.Reader) (source.Loader, error) {
	if opts.Dataset != nil {
		return source.Static{Dataset: *opts.Dataset, Label: "inline"}, nil
	}
	if opts.Source == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "source or dataset is required")
	}
	return source.Open(opts.Source, stdin, source.Options{
		Format:     opts.SourceFormat,
		Database:   opts.Database,
		Collection: opts.Collection,
		Series:     opts.Series,
	})
}

// Load reads the dataset opts describes.
func Load(ctx context.Context, opts Options, stdin io.Reader) (rxio.Dataset, error) {
	l, err := Loader(opts, stdin)
	if err != nil {
		return rxio.Dataset{}, err
	}
	return l.Load(ctx)
}
