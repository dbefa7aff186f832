// Package cache is an in-memory TTL cache for read models.
//
// The cache is never a source of truth: entries live for the lifetime of the
// process only and any mutation of the underlying data must Invalidate the
// affected key. Expired entries stop being served immediately and are purged
// by a periodic sweep, which bounds memory even for keys nobody invalidates.
//
// Lifecycle:
//
//	store := cache.New(cache.WithTTL(time.Minute))
//	if err := store.Start(); err != nil { ... } // starts the sweep job
//	defer store.Stop()
package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/limbo/missions/pkg/metrics"
)

const (
	DefaultTTL           = 60 * time.Second
	DefaultSweepInterval = 30 * time.Minute
)

// Entry is an immutable snapshot of a cached value. Values handed to Set must
// not be modified afterwards; readers share them.
type Entry struct {
	Value    any
	StoredAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	// gen counts invalidations. marks keeps the generation of recently
	// invalidated keys, every other key reads as floor.
	gen   uint64
	floor uint64
	marks map[string]mark

	ttl        time.Duration
	sweepEvery time.Duration
	clock      clockwork.Clock

	schedMu sync.Mutex
	sched   gocron.Scheduler
}

type mark struct {
	gen uint64
	at  time.Time
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithSweepInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.sweepEvery = d
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// New builds a store. The sweep does not run until Start is called.
func New(opts ...Option) *Store {
	s := &Store{
		entries:    make(map[string]Entry),
		marks:      make(map[string]mark),
		ttl:        DefaultTTL,
		sweepEvery: DefaultSweepInterval,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the entry for key unless it is absent or older than the TTL.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.expired(e, s.clock.Now()) {
		metrics.CacheMissesTotal.Inc()
		return Entry{}, false
	}
	metrics.CacheHitsTotal.Inc()
	return e, true
}

// Set replaces the entry for key and returns its storage time.
func (s *Store) Set(key string, value any) time.Time {
	e := Entry{Value: value, StoredAt: s.clock.Now()}
	s.mu.Lock()
	s.entries[key] = e
	n := len(s.entries)
	s.mu.Unlock()
	metrics.CacheEntries.Set(float64(n))
	return e.StoredAt
}

// Generation returns the invalidation generation of key. A value loaded after
// reading the generation may be stored with SetIfGeneration.
func (s *Store) Generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation(key)
}

func (s *Store) generation(key string) uint64 {
	if m, ok := s.marks[key]; ok {
		return m.gen
	}
	return s.floor
}

// SetIfGeneration stores value only when key has not been invalidated since
// gen was read. The second result reports whether it was stored.
func (s *Store) SetIfGeneration(key string, value any, gen uint64) (time.Time, bool) {
	e := Entry{Value: value, StoredAt: s.clock.Now()}
	s.mu.Lock()
	if s.generation(key) != gen {
		s.mu.Unlock()
		return time.Time{}, false
	}
	s.entries[key] = e
	n := len(s.entries)
	s.mu.Unlock()
	metrics.CacheEntries.Set(float64(n))
	return e.StoredAt, true
}

// Invalidate drops key, moves it to a new generation and reports whether it
// was present.
func (s *Store) Invalidate(key string) bool {
	now := s.clock.Now()
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.gen++
	s.marks[key] = mark{gen: s.gen, at: now}
	n := len(s.entries)
	s.mu.Unlock()
	if ok {
		metrics.CacheEvictionsTotal.WithLabelValues(metrics.EvictInvalidate).Inc()
	}
	metrics.CacheEntries.Set(float64(n))
	return ok
}

func (s *Store) Clear() {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[string]Entry)
	s.gen++
	s.floor = s.gen
	s.marks = make(map[string]mark)
	s.mu.Unlock()
	metrics.CacheEvictionsTotal.WithLabelValues(metrics.EvictClear).Add(float64(n))
	metrics.CacheEntries.Set(0)
}

// Sweep purges every expired entry and returns how many were removed.
// Generation marks older than the TTL are folded into the floor, which keeps
// every key's generation from ever going back.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	removed := 0
	for k, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, k)
			removed++
		}
	}
	for k, m := range s.marks {
		if now.Sub(m.at) > s.ttl {
			s.floor = max(s.floor, m.gen)
			delete(s.marks, k)
		}
	}
	n := len(s.entries)
	s.mu.Unlock()
	metrics.CacheEvictionsTotal.WithLabelValues(metrics.EvictSweep).Add(float64(removed))
	metrics.CacheEntries.Set(float64(n))
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) expired(e Entry, now time.Time) bool {
	return now.Sub(e.StoredAt) > s.ttl
}

// Start schedules Sweep every sweep interval. Calling Start on a running
// store is a no-op.
func (s *Store) Start() error {
	s.schedMu.Lock()
	defer s.schedMu.Unlock()
	if s.sched != nil {
		return nil
	}
	sched, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return errors.New("creating cache sweep scheduler error: " + err.Error())
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.sweepEvery),
		gocron.NewTask(func() { s.Sweep() }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return errors.New("scheduling cache sweep error: " + err.Error())
	}
	sched.Start()
	s.sched = sched
	return nil
}

// Stop halts the sweep job. Entries stay readable.
func (s *Store) Stop() error {
	s.schedMu.Lock()
	defer s.schedMu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
