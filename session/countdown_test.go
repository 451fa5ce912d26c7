package session

import (
	"testing"
	"time"
)

func startCountdown(s *Session, target time.Time, gen uint64) {
	s.mu.Lock()
	s.startCountdownLocked(target, gen)
	s.mu.Unlock()
}

func TestCountdownCountsDownAndSelfCancels(t *testing.T) {
	s, rec, fc := newTestSession(t, "")
	target := fc.Now().Add(3 * time.Second)

	startCountdown(s, target, 0)

	ticks := rec.ofKind("tick")
	if len(ticks) != 1 || ticks[0].seconds != 3 {
		t.Fatalf("start should immediately report 3s, got %+v", ticks)
	}

	advanceUntil(t, fc, countdownPollInterval, func() bool {
		return rec.has("cleared")
	})

	prev := 1 << 30
	for _, e := range rec.ofKind("tick") {
		if e.seconds > prev {
			t.Fatalf("countdown went up: %d after %d", e.seconds, prev)
		}
		if e.seconds <= 0 {
			t.Fatalf("zero is reported as cleared, not as a tick: %+v", e)
		}
		prev = e.seconds
	}

	// Self-cancelled: no external stop, and nothing more arrives.
	mark := rec.count()
	for i := 0; i < 30; i++ {
		fc.Advance(countdownPollInterval)
		time.Sleep(time.Millisecond)
	}
	if rec.count() != mark {
		t.Fatal("completed countdown must stop on its own")
	}
}

func TestCountdownReportsEverySecond(t *testing.T) {
	s, rec, fc := newTestSession(t, "")
	target := fc.Now().Add(4 * time.Second)

	startCountdown(s, target, 0)
	advanceUntil(t, fc, countdownPollInterval, func() bool {
		return rec.has("cleared")
	})

	seen := map[int]bool{}
	for _, e := range rec.ofKind("tick") {
		seen[e.seconds] = true
	}
	for want := 1; want <= 4; want++ {
		if !seen[want] {
			t.Fatalf("countdown never reported %ds (saw %v)", want, seen)
		}
	}
}

func TestNewerCountdownDisplacesOlder(t *testing.T) {
	s, rec, fc := newTestSession(t, "")

	startCountdown(s, fc.Now().Add(6*time.Second), 0)
	startCountdown(s, fc.Now().Add(2*time.Second), 0)
	mark := rec.count()

	advanceUntil(t, fc, countdownPollInterval, func() bool {
		return rec.has("cleared")
	})

	// Only the newer ticker reports: every value after the displacement
	// fits its 2-second target, never the older 6-second one.
	for _, e := range rec.snapshot()[mark:] {
		if e.kind == "tick" && e.seconds > 2 {
			t.Fatalf("stale countdown still ticking: got %ds", e.seconds)
		}
	}
}

func TestCancelStopsCountdown(t *testing.T) {
	s, rec, fc := newTestSession(t, "")
	s.Play()
	s.Cancel()

	mark := rec.count()
	for i := 0; i < 30; i++ {
		fc.Advance(countdownPollInterval)
		time.Sleep(time.Millisecond)
	}
	if rec.count() != mark {
		t.Fatal("cancel must stop the live countdown")
	}
	if _, ok := s.Config(); ok {
		t.Fatal("config should be gone after cancel")
	}
}
