package utils

import (
	"sort"
	"sync"
	"time"
)

// LatencyTracker keeps a bounded ring of recent duration samples for
// percentile reporting. Solve times dominate a run, so a few hundred samples
// cover even the complete combination set many times over.
type LatencyTracker struct {
	mu      sync.RWMutex
	samples []time.Duration
	next    int
	full    bool
}

// NewLatencyTracker creates a tracker bounded to capacity samples.
func NewLatencyTracker(capacity int) *LatencyTracker {
	if capacity <= 0 {
		capacity = 512
	}
	return &LatencyTracker{samples: make([]time.Duration, capacity)}
}

// Observe records a duration, evicting the oldest sample once full.
func (l *LatencyTracker) Observe(d time.Duration) {
	l.mu.Lock()
	l.samples[l.next] = d
	l.next++
	if l.next == len(l.samples) {
		l.next = 0
		l.full = true
	}
	l.mu.Unlock()
}

// Count returns the number of samples currently held.
func (l *LatencyTracker) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.full {
		return len(l.samples)
	}
	return l.next
}

// Percentile returns the p-th percentile (0-100) of the held samples by
// nearest rank, or zero when nothing has been observed.
func (l *LatencyTracker) Percentile(p float64) time.Duration {
	l.mu.RLock()
	n := l.next
	if l.full {
		n = len(l.samples)
	}
	sorted := append([]time.Duration(nil), l.samples[:n]...)
	l.mu.RUnlock()

	if n == 0 {
		return 0
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	index := int((p / 100.0) * float64(n-1))
	return sorted[index]
}
