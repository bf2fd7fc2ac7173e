package reminder

import (
	"fmt"
	"sync"
	"time"
)

// Tracker deduplicates firings: each task and threshold pair notifies
// at most once, no matter how often the task list is reloaded and
// replanned.
type Tracker struct {
	mu    sync.Mutex
	fired map[string]time.Time
}

func NewTracker() *Tracker {
	return &Tracker{fired: make(map[string]time.Time)}
}

func key(taskID string, th Threshold) string {
	return fmt.Sprintf("%s-%d", taskID, int(th))
}

// ShouldFire reports whether this task and threshold pair has not yet
// fired, and marks it fired.
func (t *Tracker) ShouldFire(taskID string, th Threshold, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key(taskID, th)
	if _, seen := t.fired[k]; seen {
		return false
	}
	t.fired[k] = now
	return true
}

// Prune drops entries older than an hour so a long-lived session does
// not grow the map without bound. Pruned entries belong to tasks whose
// due time is far enough past that no threshold can fire again.
func (t *Tracker) Prune(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, at := range t.fired {
		if now.Sub(at) > time.Hour {
			delete(t.fired, k)
		}
	}
}
