package bpmnpath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/bpmnpath/internal/keylock"
	"github.com/aretw0/bpmnpath/internal/search"
	"github.com/aretw0/bpmnpath/pkg/bpmn"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/aretw0/bpmnpath/pkg/ports"
	"github.com/google/uuid"
)

// DefaultKey is the process definition key used when callers pass an empty key.
const DefaultKey = "invoice"

// Engine is the high-level entry point for the bpmnpath library.
// It loads process definitions through a source (and optional cache) and
// searches them for paths.
type Engine struct {
	source     ports.DefinitionSource
	cache      ports.DefinitionCache
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	defaultKey string
	locker     ports.DistributedLocker
	loads      *keylock.Locker
}

var _ ports.PathEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource sets where process definitions are fetched from. Required.
func WithSource(s ports.DefinitionSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithCache keeps fetched definitions in c between searches.
func WithCache(c ports.DefinitionCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDefaultKey sets the key used when a call passes an empty key (default: "invoice").
func WithDefaultKey(key string) Option {
	return func(e *Engine) {
		e.defaultKey = key
	}
}

// WithLocker coordinates cache fills across replicas sharing the cache.
// It only takes effect together with WithCache.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{defaultKey: DefaultKey}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.source == nil {
		return nil, fmt.Errorf("a definition source is required")
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.DiscardHandler)
	}
	eng.logger = eng.logger.With("source", sourceName(eng.source))

	lockOpts := []keylock.Option{keylock.WithLogger(eng.logger)}
	if eng.locker != nil {
		lockOpts = append(lockOpts, keylock.WithDistributed(eng.locker, keylock.DefaultTTL))
	}
	eng.loads = keylock.New(lockOpts...)

	return eng, nil
}

// DefaultKey returns the key used for empty-key calls.
func (e *Engine) DefaultKey() string {
	return e.defaultKey
}

// Graph loads and parses the process definition deployed under key.
func (e *Engine) Graph(ctx context.Context, key string) (*domain.Graph, error) {
	key = e.resolveKey(key)

	def, err := e.load(ctx, key)
	if err != nil {
		return nil, err
	}

	g, err := bpmn.ParseDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", key, err)
	}
	e.logger.Debug("definition parsed", "key", key, "process", g.ProcessID, "nodes", len(g.Nodes), "edges", len(g.Edges))
	return g, nil
}

// FindPath searches the process deployed under key for a path from q.Start to q.End.
// An unreachable end is reported as a Path with no nodes, not as an error.
func (e *Engine) FindPath(ctx context.Context, key string, q domain.Query) (*domain.Path, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	key = e.resolveKey(key)

	g, err := e.Graph(ctx, key)
	if err != nil {
		return nil, err
	}

	path := &domain.Path{
		Start: q.Start,
		End:   q.End,
		Nodes: search.FindPath(g.Edges, q.Start, q.End),
	}

	searchID := uuid.NewString()
	e.logger.Info("path search",
		"search_id", searchID,
		"key", key,
		"from", q.Start,
		"to", q.End,
		"found", path.Found(),
		"hops", path.Hops(),
	)
	if e.hooks.OnSearch != nil {
		e.hooks.OnSearch(ctx, &domain.SearchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPathSearch},
			SearchID:  searchID,
			Key:       key,
			Start:     q.Start,
			End:       q.End,
			Found:     path.Found(),
			Hops:      path.Hops(),
		})
	}

	return path, nil
}

// Invalidate drops key from the cache so the next call refetches it.
func (e *Engine) Invalidate(ctx context.Context, key string) error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Delete(ctx, e.resolveKey(key))
}

// Watch returns a channel that signals when a definition changes at the source.
// Changed keys are evicted from the cache before they are delivered.
// Returns error if the source does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := e.source.(ports.Watchable)
	if !ok {
		return nil, fmt.Errorf("current source does not support watching")
	}

	changes, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for key := range changes {
			if err := e.Invalidate(ctx, key); err != nil {
				e.logger.Warn("cache invalidation failed", "key", key, "err", err)
			}
			select {
			case out <- key:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (e *Engine) resolveKey(key string) string {
	if key == "" {
		return e.defaultKey
	}
	return key
}

// load returns the definition for key, reading through the cache when one is configured.
// Concurrent misses on the same key are serialized so the source is asked once.
func (e *Engine) load(ctx context.Context, key string) (*domain.Definition, error) {
	started := time.Now()

	if def, ok := e.cached(ctx, key); ok {
		e.emitFetch(ctx, key, true, started, nil)
		return def, nil
	}
	if e.cache == nil {
		return e.fetch(ctx, key, started)
	}

	var def *domain.Definition
	err := e.loads.WithLock(ctx, key, func(ctx context.Context) error {
		// Another caller may have filled the cache while we waited.
		if d, ok := e.cached(ctx, key); ok {
			e.emitFetch(ctx, key, true, started, nil)
			def = d
			return nil
		}
		var err error
		def, err = e.fetch(ctx, key, started)
		return err
	})
	return def, err
}

// cached reports a cache hit. A broken cache must not break searches.
func (e *Engine) cached(ctx context.Context, key string) (*domain.Definition, bool) {
	if e.cache == nil {
		return nil, false
	}
	def, err := e.cache.Get(ctx, key)
	switch {
	case err == nil:
		return def, true
	case !errors.Is(err, domain.ErrCacheMiss):
		e.logger.Warn("cache read failed", "key", key, "err", err)
	}
	return nil, false
}

func (e *Engine) fetch(ctx context.Context, key string, started time.Time) (*domain.Definition, error) {
	def, err := e.source.Fetch(ctx, key)
	e.emitFetch(ctx, key, false, started, err)
	if err != nil {
		e.logger.Error("definition fetch failed", "key", key, "err", err)
		return nil, fmt.Errorf("failed to fetch definition %s: %w", key, err)
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, key, def); err != nil {
			e.logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return def, nil
}

func (e *Engine) emitFetch(ctx context.Context, key string, hit bool, started time.Time, err error) {
	e.logger.Debug("definition loaded", "key", key, "cache_hit", hit, "err", err)
	if e.hooks.OnFetch == nil {
		return
	}
	e.hooks.OnFetch(ctx, &domain.FetchEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDefinitionFetch},
		Key:       key,
		Source:    sourceName(e.source),
		CacheHit:  hit,
		Duration:  time.Since(started),
		Err:       err,
	})
}

func sourceName(s ports.DefinitionSource) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}
