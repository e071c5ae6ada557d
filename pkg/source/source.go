// Package source loads activity datasets from where they live: local
// files, standard input, HTTP URLs or a MongoDB collection.
package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/source/mongodb"
)

// Loader fetches one dataset.
type Loader interface {
	Load(ctx context.Context) (rxio.Dataset, error)
	// Name identifies the dataset in logs and cache keys.
	Name() string
}

// Options configures [Open].
type Options struct {
	// Format overrides the format inferred from a file extension.
	Format rxio.Format
	// Database and Collection locate activities for mongodb:// URIs.
	Database   string
	Collection string
	// Series restricts a MongoDB load to these resources.
	Series []string
}

// Open returns the loader for uri: a MongoDB connection string, an http(s)
// URL, "-" for standard input, or a file path.
func Open(uri string, stdin io.Reader, opts Options) (Loader, error) {
	switch {
	case IsMongoURI(uri):
		return mongodb.NewLoader(mongodb.Config{
			URI:        uri,
			Database:   opts.Database,
			Collection: opts.Collection,
			Series:     opts.Series,
		})
	case IsHTTPURL(uri):
		return Remote{URL: uri, Format: opts.Format}, nil
	case uri == "-":
		if stdin == nil {
			return nil, fmt.Errorf("no standard input")
		}
		return Reader{R: stdin, Format: opts.Format, Label: "stdin"}, nil
	default:
		return File{Path: uri, Format: opts.Format}, nil
	}
}

// IsMongoURI reports whether uri is a MongoDB connection string.
func IsMongoURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://")
}

// Cacheable reports whether loads from l are slow enough to cache.
func Cacheable(l Loader) bool {
	switch l.(type) {
	case *mongodb.Loader, Remote:
		return true
	}
	return false
}

// File loads a dataset from disk.
type File struct {
	Path   string
	Format rxio.Format
}

func (f File) Name() string { return f.Path }

func (f File) Load(context.Context) (rxio.Dataset, error) {
	if f.Format == "" {
		return rxio.ImportFile(f.Path)
	}
	return rxio.ImportFileAs(f.Path, f.Format)
}

// Reader loads a dataset from a stream, such as a request body.
type Reader struct {
	R      io.Reader
	Format rxio.Format
	Label  string
}

func (r Reader) Name() string { return r.Label }

func (r Reader) Load(context.Context) (rxio.Dataset, error) {
	return rxio.Read(r.R, r.Format)
}

// Static returns a fixed dataset.
type Static struct {
	Dataset rxio.Dataset
	Label   string
}

func (s Static) Name() string                               { return s.Label }
func (s Static) Load(context.Context) (rxio.Dataset, error) { return s.Dataset, nil }
