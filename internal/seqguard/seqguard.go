// Package seqguard tags requests with per-key, monotonically increasing sequence
// numbers so that a response which resolves after a newer request for the same
// key can be recognised as stale and dropped.
package seqguard

import "sync"

type Guard struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

func New() *Guard {
	return &Guard{latest: make(map[string]uint64)}
}

// Issue returns a fresh sequence number and records it as the latest for key.
func (g *Guard) Issue(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.latest[key] = g.next
	return g.next
}

// IsLatest reports whether seq is still the newest number issued for key.
func (g *Guard) IsLatest(key string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[key] == seq
}

// Last returns the newest sequence number issued across all keys.
func (g *Guard) Last() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}

// Len returns the number of keys currently tracked.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.latest)
}

// Forget drops the bookkeeping for key. Responses still in flight for it become stale.
func (g *Guard) Forget(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.latest, key)
}

// Reset forgets every key. Sequence numbers keep increasing so nothing issued
// before the reset can match afterwards.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest = make(map[string]uint64)
}
