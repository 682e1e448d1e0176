package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shcya/backend/internal/domain/shared"
)

// InMemorySubmissionGuard implements SubmissionGuard using an in-memory map.
// State is not shared across instances; use the Redis guard when the API
// runs with more than one replica.
type InMemorySubmissionGuard struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySubmissionGuard creates a guard and starts a goroutine that
// evicts expired keys every cleanupInterval. Close stops it.
func NewInMemorySubmissionGuard(cleanupInterval time.Duration) *InMemorySubmissionGuard {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	g := &InMemorySubmissionGuard{
		entries:  make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupLoop(cleanupInterval)

	return g
}

// Claim holds key until window elapses. A key whose window has passed can be claimed again.
func (g *InMemorySubmissionGuard) Claim(ctx context.Context, key string, window time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiresAt, ok := g.entries[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	g.entries[key] = now.Add(window)
	return true, nil
}

// Release frees key
func (g *InMemorySubmissionGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (g *InMemorySubmissionGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

// Size returns the number of held keys, expired or not
func (g *InMemorySubmissionGuard) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

func (g *InMemorySubmissionGuard) cleanupLoop(interval time.Duration) {
	defer g.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanup()
		}
	}
}

func (g *InMemorySubmissionGuard) cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for key, expiresAt := range g.entries {
		if !now.Before(expiresAt) {
			delete(g.entries, key)
		}
	}
}

// Ensure InMemorySubmissionGuard implements SubmissionGuard
var _ shared.SubmissionGuard = (*InMemorySubmissionGuard)(nil)
