package usecase

import "sync"

// BulkOpGuard serializes the long-running cache-rewriting operations.
// Reconcile All and Recalculate All share one guard because both rewrite
// the same cache rows and must never run concurrently.
type BulkOpGuard struct {
	mu sync.Mutex
}

func NewBulkOpGuard() *BulkOpGuard {
	return &BulkOpGuard{}
}

// TryAcquire returns false when another bulk operation holds the guard.
func (g *BulkOpGuard) TryAcquire() bool {
	return g.mu.TryLock()
}

func (g *BulkOpGuard) Release() {
	g.mu.Unlock()
}
