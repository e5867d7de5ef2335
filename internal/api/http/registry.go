package http

import (
	"sync"
	"time"

	"cro-sprint-backend/internal/metrics"
)

type registryEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// registry keeps in-memory per-visitor state keyed by id
type registry[T any] struct {
	surface string
	onEvict func(T)
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry[T]
}

func newRegistry[T any](surface string, onEvict func(T)) *registry[T] {
	return &registry[T]{
		surface: surface,
		onEvict: onEvict,
		now:     time.Now,
		entries: make(map[string]*registryEntry[T]),
	}
}

func (r *registry[T]) Put(id string, value T) {
	r.mu.Lock()
	r.entries[id] = &registryEntry[T]{value: value, lastSeen: r.now()}
	n := len(r.entries)
	r.mu.Unlock()
	metrics.ActiveSessions.WithLabelValues(r.surface).Set(float64(n))
}

// Get returns the entry and marks it as seen
func (r *registry[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastSeen = r.now()
	return e.value, true
}

func (r *registry[T]) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	n := len(r.entries)
	r.mu.Unlock()

	if ok {
		metrics.ActiveSessions.WithLabelValues(r.surface).Set(float64(n))
		if r.onEvict != nil {
			r.onEvict(e.value)
		}
	}
	return ok
}

// SweepIdle removes entries not seen within timeout and returns how many it removed
func (r *registry[T]) SweepIdle(timeout time.Duration) int {
	cutoff := r.now().Add(-timeout)

	r.mu.Lock()
	var evicted []T
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.value)
			delete(r.entries, id)
		}
	}
	n := len(r.entries)
	r.mu.Unlock()

	metrics.ActiveSessions.WithLabelValues(r.surface).Set(float64(n))
	if r.onEvict != nil {
		for _, v := range evicted {
			r.onEvict(v)
		}
	}
	return len(evicted)
}

func (r *registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
