package cart

import "sync"

// Guard enforces at most one in-flight mutation per key. Keys are cart-entry
// ids for quantity/remove operations and a per-cart coupon key for coupon
// application. A second mutation arriving while one is outstanding is
// rejected, never queued; this is what prevents lost updates when a shopper
// double-clicks increment.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// TryAcquire marks key as in flight. It returns false when a mutation for the
// key is already outstanding.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

// Release clears the in-flight mark for key. Releasing a key that is not held
// is a no-op.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
