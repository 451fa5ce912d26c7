package session

import (
	"time"

	"BlinkSync/blink"
)

// The countdown re-checks the clock on this period; display granularity is
// whole seconds, so ~100ms polling keeps the text fresh without drift.
const countdownPollInterval = 100 * time.Millisecond

// startCountdownLocked begins a countdown to target, displacing any ticker
// already running. Only one countdown is ever active per session: bumping
// countdownSeq makes every older ticker go inert at its next poll. Reports
// the initial value immediately. Caller holds s.mu.
func (s *Session) startCountdownLocked(target time.Time, gen uint64) {
	s.countdownSeq++
	seq := s.countdownSeq
	s.presenter.CountdownTick(blink.SecondsUntil(target, s.clock.Now()))
	go s.runCountdown(target, gen, seq)
}

// restartCountdown is the engine-facing entry: it re-aims the countdown at
// the next cycle's start, unless the generation has been superseded.
func (s *Session) restartCountdown(target time.Time, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.startCountdownLocked(target, gen)
}

// runCountdown polls until target passes, reporting whole seconds
// remaining. It is self-cancelling: on completion it clears the display
// and stops without any external call. A Cancel or a newer countdown stops
// it at the next poll instead.
func (s *Session) runCountdown(target time.Time, gen, seq uint64) {
	for {
		t := s.clock.NewTimer(countdownPollInterval)
		<-t.Chan()

		s.mu.Lock()
		if gen != s.generation || seq != s.countdownSeq {
			s.mu.Unlock()
			return
		}
		remaining := blink.SecondsUntil(target, s.clock.Now())
		if remaining <= 0 {
			s.presenter.CountdownCleared()
			s.mu.Unlock()
			return
		}
		s.presenter.CountdownTick(remaining)
		s.mu.Unlock()
	}
}
