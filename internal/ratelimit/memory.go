package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how often Hit walks the whole map for idle keys.
const sweepEvery = time.Minute

// MemoryBackend is the in-process fallback used when no Redis URL is
// configured. State is lost on restart and not shared between replicas.
type MemoryBackend struct {
	mu        sync.Mutex
	hits      map[string]*bucket
	lastSweep time.Time
}

// bucket is one key's hits in order, oldest first.
type bucket struct {
	period time.Duration
	times  []time.Time
}

// trim drops hits older than the window and reports whether any remain.
func (b *bucket) trim(now time.Time) bool {
	cutoff := now.Add(-b.period)
	i := 0
	for i < len(b.times) && !b.times[i].After(cutoff) {
		i++
	}
	b.times = b.times[i:]
	return len(b.times) > 0
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{hits: make(map[string]*bucket)}
}

func (m *MemoryBackend) Hit(_ context.Context, key string, w Window, now time.Time) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)

	k := windowKey(key, w)
	b, ok := m.hits[k]
	if !ok {
		b = &bucket{period: w.Period}
		m.hits[k] = b
	}
	b.trim(now)

	if len(b.times) >= w.Limit {
		return Result{Blocked: true}, nil
	}
	b.times = append(b.times, now)
	return Result{Remaining: remaining(w.Limit, len(b.times))}, nil
}

// sweep forgets keys whose windows have emptied, the way Redis expires
// them with PEXPIRE.
func (m *MemoryBackend) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepEvery {
		return
	}
	m.lastSweep = now
	for k, b := range m.hits {
		if !b.trim(now) {
			delete(m.hits, k)
		}
	}
}

// keys is the number of tracked keys.
func (m *MemoryBackend) keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hits)
}
