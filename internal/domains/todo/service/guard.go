package service

import "sync"

// cacheGuard keeps a read that overlapped a write from caching what it read.
// Writers bump the epoch after storage changes and before they invalidate, so
// a stale fill either sees the new epoch or lands before the invalidation.
type cacheGuard struct {
	mu    sync.RWMutex
	epoch uint64
}

func (g *cacheGuard) snapshot() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.epoch
}

func (g *cacheGuard) bump() {
	g.mu.Lock()
	g.epoch++
	g.mu.Unlock()
}

// store runs save only if no write was recorded since epoch was taken.
func (g *cacheGuard) store(epoch uint64, save func()) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.epoch != epoch {
		return false
	}

	save()

	return true
}
