package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_SecondAcquireRejected(t *testing.T) {
	g := NewGuard()

	assert.True(t, g.TryAcquire("entry-1"))
	assert.False(t, g.TryAcquire("entry-1"), "in-flight key must be rejected, not queued")
	assert.True(t, g.TryAcquire("entry-2"), "other keys are independent")

	g.Release("entry-1")
	assert.True(t, g.TryAcquire("entry-1"), "released key can be acquired again")
}

func TestGuard_ReleaseUnheldIsNoop(t *testing.T) {
	g := NewGuard()
	g.Release("never-held")
	assert.True(t, g.TryAcquire("never-held"))
}

func TestGuard_ConcurrentSingleWinner(t *testing.T) {
	g := NewGuard()

	const attempts = 100
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("hot-entry") {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won, "exactly one concurrent mutation may proceed")
}
