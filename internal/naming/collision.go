package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver tracks the output paths claimed during a run and hands
// colliding records numbered "-N" variants. Claims are keyed by source path
// so re-resolving the same file is idempotent. All methods are
// goroutine-safe, though a normal run resolves sequentially.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path → source path that owns it
	counters map[string]int    // base output path → next suffix number
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output path for source. An unclaimed requested
// path (or one source already owns) is returned as-is; otherwise the first
// free "-N" variant is claimed.
func (cr *CollisionResolver) Resolve(source, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, claimed := cr.owners[requested]
	if !claimed || owner == source {
		cr.owners[requested] = source
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	n := cr.counters[requested]
	if n == 0 {
		n = 1
	}
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
		if owner, claimed := cr.owners[candidate]; !claimed || owner == source {
			cr.counters[requested] = n + 1
			cr.owners[candidate] = source
			return candidate
		}
		n++
	}
}
