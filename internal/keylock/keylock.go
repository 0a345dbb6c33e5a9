// Package keylock serializes work per string key.
//
// Locks are reference counted and dropped once no caller holds or waits on
// them, so the set of keys can grow without bound.
package keylock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/bpmnpath/pkg/ports"
)

// DefaultTTL bounds how long a crashed holder can block other replicas.
const DefaultTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out one mutex per key.
type Locker struct {
	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	distributed ports.DistributedLocker // Optional cross-process lock
	ttl         time.Duration
	logger      *slog.Logger
}

// Option configures the Locker.
type Option func(*Locker)

// WithDistributed also takes a distributed lock for each key, held at most ttl.
func WithDistributed(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(l *Locker) {
		l.distributed = locker
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithLogger configures a logger for deferred unlock errors.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locker) {
		l.logger = logger
	}
}

// New creates an empty Locker.
func New(opts ...Option) *Locker {
	l := &Locker{
		locks:  make(map[string]*lockEntry),
		ttl:    DefaultTTL,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// WithLock executes fn while holding the lock for key.
// It gives up with ctx.Err() if ctx ends while waiting.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := l.acquire(key)
	defer l.release(key)

	locked := make(chan struct{})
	go func() {
		entry.mu.Lock()
		close(locked)
	}()

	select {
	case <-locked:
	case <-ctx.Done():
		// Hand the mutex back once the waiter gets it.
		go func() {
			<-locked
			entry.mu.Unlock()
		}()
		return ctx.Err()
	}
	defer entry.mu.Unlock()

	if l.distributed != nil {
		unlock, err := l.distributed.Lock(ctx, key, l.ttl)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				l.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Len reports how many keys currently have a lock entry.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
