package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/infrastructure/metrics"
)

const (
	// DefaultLifetime is how long an entry may stay unused before eviction.
	DefaultLifetime = 10 * time.Minute
	// DefaultSweepInterval is the eviction cadence.
	DefaultSweepInterval = time.Second
)

// Finalizer runs for every evicted entry before it is removed, while the
// store lock is held. It must not call back into the same store.
type Finalizer[K comparable, V any] func(key K, value V)

// Options configures an ExpiringStore. Zero values select the defaults.
type Options struct {
	Lifetime      time.Duration
	SweepInterval time.Duration
	Clock         func() time.Time
}

type entry[V any] struct {
	value    V
	lastUsed time.Time
}

// ExpiringStore is a keyed map whose entries are evicted once they have been
// idle longer than the configured lifetime. Reads through Use and Acquire
// refresh the idle timer; Get does not.
type ExpiringStore[K comparable, V any] struct {
	name     string
	lifetime time.Duration
	interval time.Duration
	clock    func() time.Time
	finalize Finalizer[K, V]
	log      zerolog.Logger

	mu      sync.RWMutex
	entries map[K]*entry[V]

	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewExpiringStore creates a store. name labels logs and metrics; finalize may be nil.
func NewExpiringStore[K comparable, V any](name string, opts Options, finalize Finalizer[K, V], log zerolog.Logger) *ExpiringStore[K, V] {
	if opts.Lifetime <= 0 {
		opts.Lifetime = DefaultLifetime
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &ExpiringStore[K, V]{
		name:     name,
		lifetime: opts.Lifetime,
		interval: opts.SweepInterval,
		clock:    opts.Clock,
		finalize: finalize,
		log:      log.With().Str("component", "expiring-store").Str("store", name).Logger(),
		entries:  make(map[K]*entry[V]),
		done:     make(chan struct{}),
	}
}

// Name returns the store label.
func (s *ExpiringStore[K, V]) Name() string {
	return s.name
}

// Put inserts or replaces the value for key and marks it used now.
func (s *ExpiringStore[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry[V]{value: value, lastUsed: s.clock()}
	metrics.RecordStoreSize(s.name, len(s.entries))
}

// Get returns the value for key without refreshing its idle timer.
func (s *ExpiringStore[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Use returns the value for key and refreshes its idle timer.
func (s *ExpiringStore[K, V]) Use(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.lastUsed = s.clock()
	return e.value, true
}

// Touch refreshes the idle timer of key. It reports whether key was present.
func (s *ExpiringStore[K, V]) Touch(key K) bool {
	_, ok := s.Use(key)
	return ok
}

// Acquire returns the value for key, creating it with create when absent.
// Concurrent callers for the same key observe a single created value.
// created reports whether this call created it.
func (s *ExpiringStore[K, V]) Acquire(key K, create func() V) (value V, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	if e, ok := s.entries[key]; ok {
		e.lastUsed = now
		return e.value, false
	}
	value = create()
	s.entries[key] = &entry[V]{value: value, lastUsed: now}
	metrics.RecordStoreSize(s.name, len(s.entries))
	return value, true
}

// Delete removes key without running the finalizer. It returns the removed
// value; ok is false when key was absent, so only one caller ever owns it.
func (s *ExpiringStore[K, V]) Delete(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(s.entries, key)
	metrics.RecordStoreSize(s.name, len(s.entries))
	return e.value, true
}

// Values returns a snapshot of all live values in no particular order.
func (s *ExpiringStore[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]V, 0, len(s.entries))
	for _, e := range s.entries {
		values = append(values, e.value)
	}
	return values
}

// Len returns the number of live entries.
func (s *ExpiringStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep evicts every entry idle for strictly longer than the lifetime as of
// now, running the finalizer before each removal. It returns the number of
// evicted entries.
func (s *ExpiringStore[K, V]) Sweep(now time.Time) int {
	start := time.Now()

	s.mu.Lock()
	evicted := 0
	for key, e := range s.entries {
		if now.Sub(e.lastUsed) <= s.lifetime {
			continue
		}
		if s.finalize != nil {
			s.finalize(key, e.value)
		}
		delete(s.entries, key)
		evicted++
	}
	remaining := len(s.entries)
	s.mu.Unlock()

	metrics.RecordSweep(s.name, evicted, remaining, time.Since(start).Seconds())
	if evicted > 0 {
		s.log.Debug().Int("evicted", evicted).Int("remaining", remaining).Msg("expired entries evicted")
	}
	return evicted
}

// Start begins the periodic sweep in background.
// Safe to call multiple times - only the first call starts the sweeper.
func (s *ExpiringStore[K, V]) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run(ctx)
		s.log.Debug().Dur("lifetime", s.lifetime).Dur("interval", s.interval).Msg("sweeper started")
	})
}

// Stop halts the sweeper and waits for an in-flight sweep to finish.
// Safe to call multiple times - only the first call stops the sweeper.
func (s *ExpiringStore[K, V]) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		s.log.Debug().Msg("sweeper stopped")
	})
}

func (s *ExpiringStore[K, V]) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.Sweep(s.clock())
		}
	}
}
