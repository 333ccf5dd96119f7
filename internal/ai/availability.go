package ai

import (
	"sync"
	"time"
)

// DefaultCooldown is how long a model stays suppressed after any failure.
// Flat, not exponential: repeated failures just restart the window.
const DefaultCooldown = 60 * time.Second

// Tracker remembers which models failed recently and keeps them out of
// rotation until the cooldown elapses. One tracker is shared by all in-flight
// requests; safe for concurrent use. Expiry is lazy, stale entries are
// dropped on read, there is no background timer.
type Tracker struct {
	mu         sync.Mutex
	cooldown   time.Duration
	suppressed map[string]time.Time // model -> suppressed until
}

// NewTracker creates a tracker. Zero or negative cooldown falls back to
// DefaultCooldown.
func NewTracker(cooldown time.Duration) *Tracker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Tracker{
		cooldown:   cooldown,
		suppressed: make(map[string]time.Time),
	}
}

// MarkUnavailable suppresses a model until now+cooldown. A later mark for the
// same model overwrites the earlier one.
func (t *Tracker) MarkUnavailable(model string, now time.Time) {
	t.mu.Lock()
	t.suppressed[model] = now.Add(t.cooldown)
	t.mu.Unlock()
}

// IsAvailable reports whether a model may be tried at the given instant.
// A suppression that has expired is removed on the way out.
func (t *Tracker) IsAvailable(model string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	until, ok := t.suppressed[model]
	if !ok {
		return true
	}
	if until.After(now) {
		return false
	}
	delete(t.suppressed, model)
	return true
}
