package session

import (
	"time"

	"github.com/rs/zerolog/log"

	"BlinkSync/blink"
)

// How often a backed-off loop re-checks the pause flag.
const pausePollInterval = 100 * time.Millisecond

// runAnimation is one generation of the animation engine. It waits for the
// scheduled start instant, plays the pattern, reschedules itself onto the
// next synchronized instant, and loops until its generation is superseded
// by another Play or Cancel.
//
// The generation guard is re-checked after every suspension: a wait that
// wakes up superseded returns without touching the visible surface, so a
// stale loop can never repaint over a newer one.
func (s *Session) runAnimation(cfg blink.Config, startAt time.Time, gen uint64) {
	lg := log.With().Str("session", s.id.String()).Uint64("generation", gen).Logger()
	lg.Debug().Time("start_at", startAt).Msg("animation loop started")
	for {
		if !s.alive(gen) {
			lg.Debug().Msg("animation loop superseded")
			return
		}
		if s.pausedNow() {
			if !s.sleepFor(pausePollInterval, gen) {
				return
			}
			if s.pausedNow() {
				continue
			}
			// Unpaused: the old start instant has passed, so re-enter
			// the start wait on a fresh schedule.
			startAt = blink.NextStartTime(cfg.TimeOffset, s.clock.Now())
			s.restartCountdown(startAt, gen)
			continue
		}
		if !s.sleepUntil(startAt, gen) {
			return
		}
		if s.pausedNow() {
			continue
		}
		completed, live := s.playPattern(cfg.Color1, cfg.Color2, cfg.Pattern.Steps(), gen)
		if !live {
			lg.Debug().Msg("animation loop superseded mid-pattern")
			return
		}
		if !completed {
			// Paused mid-pattern; back off above and resync on resume.
			continue
		}
		startAt = blink.NextStartTime(cfg.TimeOffset, s.clock.Now())
		s.restartCountdown(startAt, gen)
		lg.Debug().Time("start_at", startAt).Msg("pattern complete, rescheduled")
	}
}

// playPattern flashes the pattern once, alternating the two colors
// starting with c1 and toggling after every symbol, zero-width separators
// included. It reports whether the pattern ran to completion and whether
// the generation is still live. On pause the surface is reset to neutral;
// on supersession it is left alone for the superseding action to clean up.
func (s *Session) playPattern(c1, c2 blink.ColorID, steps string, gen uint64) (completed, live bool) {
	if !s.beginFlashing(gen) {
		return false, false
	}
	cur := c1
	for i := 0; i < len(steps); i++ {
		if !s.alive(gen) {
			return false, false
		}
		if s.pausedNow() {
			return false, s.stopFlashing(gen)
		}
		if !s.setBackground(cur, gen) {
			return false, false
		}
		if d := blink.StepDuration(steps[i]); d > 0 {
			if !s.sleepFor(d, gen) {
				return false, false
			}
			if s.pausedNow() {
				return false, s.stopFlashing(gen)
			}
		}
		if cur == c1 {
			cur = c2
		} else {
			cur = c1
		}
	}
	if !s.stopFlashing(gen) {
		return false, false
	}
	return true, true
}

// beginFlashing marks the flash active and moves the phase to Running on
// the first cycle of a generation.
func (s *Session) beginFlashing(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.setPhaseLocked(PhaseRunning)
	s.flashing = true
	s.presenter.FlashingChanged(true)
	return true
}

// stopFlashing resets the surface to neutral and clears the flash flag,
// unless the generation has been superseded.
func (s *Session) stopFlashing(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.flashing = false
	s.presenter.FlashBackground(blink.ColorNone)
	s.presenter.FlashingChanged(false)
	return true
}

func (s *Session) setBackground(c blink.ColorID, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.presenter.FlashBackground(c)
	return true
}
