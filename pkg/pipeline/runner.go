package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rxtimeline/pkg/cache"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/observability"
	"github.com/matzehuels/rxtimeline/pkg/render/sink"
	"github.com/matzehuels/rxtimeline/pkg/source"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner may serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Stdin backs the "-" source. It defaults to os.Stdin.
	Stdin io.Reader
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// uses [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, Stdin: os.Stdin}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{}

	start := time.Now()
	ds, hit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.Dataset = ds
	res.Stats.Activities = len(ds.Activities)
	res.Stats.LoadTime = time.Since(start)
	res.CacheInfo.LoadHit = hit
	r.Logger.Info("loaded activities", "count", len(ds.Activities), "duration", res.Stats.LoadTime)

	start = time.Now()
	vm, dataHash, hit, err := r.LayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.View = vm
	res.DataHash = dataHash
	res.Stats.Rejected = len(vm.Rejected)
	res.Stats.Rectangles = len(vm.Events)
	res.Stats.LayoutTime = time.Since(start)
	res.CacheInfo.LayoutHit = hit
	r.Logger.Info("computed layout", "rectangles", len(vm.Events), "rejected", len(vm.Rejected),
		"cached", hit, "duration", res.Stats.LayoutTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, vm, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(start)
	res.CacheInfo.RenderHit = hit
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", hit, "duration", res.Stats.RenderTime)

	return res, nil
}

// LoadWithCacheInfo loads the dataset. Only MongoDB loads are cached; files
// and inline datasets are read directly.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (rxio.Dataset, bool, error) {
	r.applyLogger(&opts)
	l, err := Loader(opts, r.Stdin)
	if err != nil {
		return rxio.Dataset{}, false, err
	}

	observability.Pipeline().OnLoadStart(ctx, l.Name())
	start := time.Now()

	remote := source.Cacheable(l)
	key := r.Keyer.SourceKey(l.Name(), fmt.Sprint(opts.Series))
	if remote && !opts.Refresh {
		var ds rxio.Dataset
		if err := cache.GetJSON(ctx, r.Cache, key, &ds); err == nil {
			observability.Cache().OnCacheHit(ctx, "source")
			observability.Pipeline().OnLoadComplete(ctx, l.Name(), len(ds.Activities), time.Since(start), nil)
			return ds, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "source")
	}

	ds, err := l.Load(ctx)
	observability.Pipeline().OnLoadComplete(ctx, l.Name(), len(ds.Activities), time.Since(start), err)
	if err != nil {
		return rxio.Dataset{}, false, err
	}
	if remote {
		r.store(ctx, "source", key, ds, cache.TTLSource)
	}
	return ds, false, nil
}

// LayoutWithCacheInfo computes the view model of ds, keyed on the dataset
// hash and the resolved chart options. It also returns the dataset hash.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, ds rxio.Dataset, opts Options) (timeline.ViewModel, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return timeline.ViewModel{}, "", false, err
	}
	dataHash, err := cache.HashJSON(ds)
	if err != nil {
		return timeline.ViewModel{}, "", false, fmt.Errorf("hash dataset: %w", err)
	}
	keyOpts, err := opts.ViewKeyOpts(ds)
	if err != nil {
		return timeline.ViewModel{}, "", false, err
	}
	key := r.Keyer.ViewKey(dataHash, keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if vm, err := sink.ReadJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "view")
				return vm, dataHash, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "view")
	}

	observability.Pipeline().OnLayoutStart(ctx, len(ds.Activities))
	start := time.Now()
	vm, err := Layout(ctx, ds, opts)
	observability.Pipeline().OnLayoutComplete(ctx, len(vm.Events), time.Since(start), err)
	if err != nil {
		return timeline.ViewModel{}, "", false, err
	}
	r.store(ctx, "view", key, vm, cache.TTLView)
	return vm, dataHash, false, nil
}

// RenderWithCacheInfo renders vm, reusing cached artifacts when every
// requested format is cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, vm timeline.ViewModel, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	viewHash, err := cache.HashJSON(vm)
	if err != nil {
		return nil, false, fmt.Errorf("hash view: %w", err)
	}
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(viewHash, opts.ArtifactKeyOpts(format))
	}

	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keyFor(format))
			if err != nil || !hit {
				break
			}
			cached[format] = data
		}
		if len(cached) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return cached, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, vm, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keyFor(format), data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// store writes v as JSON. Cache failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err == nil {
		err = r.Cache.Set(ctx, key, data, ttl)
	}
	if err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
