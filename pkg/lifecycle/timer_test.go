package lifecycle

import (
	"testing"
	"time"
)

func TestDismissTimerFiresAtDuration(t *testing.T) {
	timer := NewDismissTimer(5 * time.Second)

	steps := []struct {
		elapsed time.Duration
		fires   bool
	}{
		{2 * time.Second, false},
		{2 * time.Second, false},
		{999 * time.Millisecond, false},
		{time.Millisecond, true},
		{time.Second, false},
	}
	for i, step := range steps {
		if got := timer.Tick(step.elapsed); got != step.fires {
			t.Fatalf("step %d: expected fire=%v, got %v", i, step.fires, got)
		}
	}
	if timer.Remaining() != 0 {
		t.Fatalf("expected no time remaining, got %s", timer.Remaining())
	}
}

func TestDismissTimerIgnoresNegativeElapsed(t *testing.T) {
	timer := NewDismissTimer(time.Second)
	timer.Tick(-time.Hour)
	if got := timer.Remaining(); got != time.Second {
		t.Fatalf("expected 1s remaining, got %s", got)
	}
}

func TestDismissTimerOvershoot(t *testing.T) {
	timer := NewDismissTimer(time.Second)
	if !timer.Tick(10 * time.Second) {
		t.Fatalf("expected overshooting tick to fire")
	}
}
