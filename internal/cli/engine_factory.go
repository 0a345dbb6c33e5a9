package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/bpmnpath"
	"github.com/aretw0/bpmnpath/internal/config"
	"github.com/aretw0/bpmnpath/internal/logging"
	"github.com/aretw0/bpmnpath/pkg/adapters/camunda"
	"github.com/aretw0/bpmnpath/pkg/adapters/file"
	"github.com/aretw0/bpmnpath/pkg/adapters/memory"
	"github.com/aretw0/bpmnpath/pkg/adapters/redis"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/aretw0/bpmnpath/pkg/observability"
	"github.com/aretw0/bpmnpath/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime bundles an engine with the collaborators the commands share.
type Runtime struct {
	Engine   *bpmnpath.Engine
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry

	closers []func() error
}

// Close releases connections opened by NewRuntime.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// LoadConfig reads the config file named by the flags and layers the flags on top.
func LoadConfig(f Flags) (*config.Config, error) {
	return config.LoadWithOverrides(f.ConfigPath, f.Overrides())
}

// NewRuntime initializes an engine with standard CLI conventions.
// Logs go to logOut so that stdout stays clean for results.
func NewRuntime(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Runtime, error) {
	logger := logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, logOut)
	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	source, err := createSource(cfg.Source, logger)
	if err != nil {
		return nil, err
	}

	engineOpts := []bpmnpath.Option{
		bpmnpath.WithSource(source),
		bpmnpath.WithLogger(logger),
		bpmnpath.WithDefaultKey(cfg.ProcessKey),
	}

	cache, closer, err := createCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		engineOpts = append(engineOpts, bpmnpath.WithCache(cache))
	}
	if rc, ok := cache.(*redis.Cache); ok {
		engineOpts = append(engineOpts, bpmnpath.WithLocker(rc.Locker()))
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	metrics := observability.NewMetrics(rt.Registry)
	hooks := metrics.Hooks()
	if logging.ParseLevel(cfg.Log.Level) <= slog.LevelDebug {
		hooks = observability.Chain(hooks, createDebugHooks(logger))
	}
	engineOpts = append(engineOpts, bpmnpath.WithLifecycleHooks(hooks))

	engine, err := bpmnpath.New(engineOpts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine
	return rt, nil
}

func createSource(cfg config.SourceConfig, logger *slog.Logger) (ports.DefinitionSource, error) {
	switch cfg.Type {
	case "file":
		src, err := file.New(cfg.Dir, logger)
		if err != nil {
			return nil, fmt.Errorf("error opening definitions directory: %w", err)
		}
		return src, nil
	case "camunda", "":
		opts := []camunda.Option{camunda.WithTimeout(cfg.Timeout)}
		if cfg.Username != "" {
			opts = append(opts, camunda.WithBasicAuth(cfg.Username, cfg.Password))
		}
		return camunda.New(cfg.URL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

// createCache returns a nil cache when caching is off.
func createCache(ctx context.Context, cfg config.CacheConfig) (ports.DefinitionCache, func() error, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil, nil
	case "memory":
		return memory.NewCache(), nil, nil
	case "redis":
		c := redis.New(cfg.Addr, cfg.Password, cfg.DB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Prefix),
		)
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("redis cache unreachable at %s: %w", cfg.Addr, err)
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// createDebugHooks logs every fetch and search at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFetch: func(ctx context.Context, e *domain.FetchEvent) {
			logger.DebugContext(ctx, "definition loaded",
				"key", e.Key,
				"source", e.Source,
				"cache_hit", e.CacheHit,
				"duration", e.Duration,
				"err", e.Err,
			)
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			logger.DebugContext(ctx, "path searched",
				"search_id", e.SearchID,
				"key", e.Key,
				"from", e.Start,
				"to", e.End,
				"found", e.Found,
				"hops", e.Hops,
			)
		},
	}
}
