package lifecycle

import "time"

// DismissTimer counts down the grace period after a job completes.
type DismissTimer struct {
	duration time.Duration
	elapsed  time.Duration
	fired    bool
}

// NewDismissTimer arms a timer for d.
func NewDismissTimer(d time.Duration) *DismissTimer {
	return &DismissTimer{duration: d}
}

// Tick advances the timer by elapsed and reports true on the first tick
// where the accumulated time reaches the duration. It never reports true
// twice.
func (t *DismissTimer) Tick(elapsed time.Duration) bool {
	if t.fired {
		return false
	}
	if elapsed > 0 {
		t.elapsed += elapsed
	}
	if t.elapsed >= t.duration {
		t.fired = true
		return true
	}
	return false
}

// Remaining returns the time left before the timer fires.
func (t *DismissTimer) Remaining() time.Duration {
	if t.fired || t.elapsed >= t.duration {
		return 0
	}
	return t.duration - t.elapsed
}
