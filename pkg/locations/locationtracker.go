package locations

import (
	"sync"
	"time"
)

const (
	// DefaultMinInterval is the minimum time between accepted fixes.
	DefaultMinInterval = time.Second
	// DefaultMinDistance is the minimum movement, in meters, between accepted fixes.
	DefaultMinDistance = 1.0
)

// Tracker keeps the most recent accepted fix.
// A fix is accepted when it is the first one, when MinInterval has elapsed
// since the last accepted fix, or when it moved at least MinDistance meters.
type Tracker struct {
	mu          sync.RWMutex
	latest      Fix
	hasFix      bool
	MinInterval time.Duration
	MinDistance float64
}

// NewTracker creates a tracker with the default update thresholds.
func NewTracker() *Tracker {
	return &Tracker{
		MinInterval: DefaultMinInterval,
		MinDistance: DefaultMinDistance,
	}
}

// Offer submits a fix and reports whether it replaced the latest one.
func (t *Tracker) Offer(fix Fix) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fix.Time.IsZero() {
		fix.Time = time.Now()
	}
	if t.hasFix {
		elapsed := fix.Time.Sub(t.latest.Time)
		moved := DistanceMeters(t.latest, fix)
		if elapsed < t.MinInterval && moved < t.MinDistance {
			return false
		}
	}
	t.latest = fix
	t.hasFix = true
	return true
}

// Latest returns the most recent accepted fix.
func (t *Tracker) Latest() (Fix, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest, t.hasFix
}

// Reset forgets the latest fix, e.g. after the provider changed.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = Fix{}
	t.hasFix = false
}
