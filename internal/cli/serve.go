package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rxtimeline/pkg/cache"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
	"github.com/matzehuels/rxtimeline/pkg/server"
	"github.com/matzehuels/rxtimeline/pkg/source"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		prefix   string
		mongoURI string
		timeout  time.Duration
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout, render and drop API over HTTP",
		Long: `Serve the timeline pipeline over HTTP.

Endpoints:
  GET  /healthz
  POST /v1/layout   view model of the posted activities
  POST /v1/render   rendered chart (?format=svg|json)
  POST /v1/drop     apply a drag and return the moved activity

Request bodies carry the activities inline. With --mongo a request may
instead set "source": "mongodb" and pick a database, collection and
series on that server; requests never supply a URI of their own.
With --redis the layout and render caches are shared through Redis;
otherwise they live in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, prefix, mongoURI, timeout, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the shared cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&prefix, "cache-prefix", "", "prefix for cache keys, to share one Redis between deployments")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI that requests with source \"mongodb\" read from")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, prefix, mongoURI string, timeout time.Duration, noCache bool) error {
	cc, err := c.serverCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	if mongoURI != "" && !source.IsMongoURI(mongoURI) {
		return fmt.Errorf("--mongo must be a mongodb:// or mongodb+srv:// URI")
	}

	srv := server.New(runner,
		server.WithMongoURI(mongoURI),
		server.WithAddr(addr),
		server.WithTimeout(timeout),
		server.WithLogger(c.Logger),
	)
	return srv.ListenAndServe(ctx)
}

// serverCache picks Redis when a URL is given, else the file cache.
func (c *CLI) serverCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case redisURL != "":
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	default:
		return newCache(false)
	}
}
