package session

import (
	"time"

	"BlinkSync/blink"
)

// indicatorPeriod is the preview dot's toggle period. Slow enough to read,
// fast enough to show both colors before the flash starts.
const indicatorPeriod = 600 * time.Millisecond

// runIndicator drives the small phone-preview dot, alternating the two
// pattern colors while the session waits between flash cycles. During a
// flash the full surface takes over and the dot is left as-is. Same
// generation-token lifecycle as the animation loop.
func (s *Session) runIndicator(cfg blink.Config, gen uint64) {
	cur := cfg.Color1
	for {
		if !s.alive(gen) {
			return
		}
		if !s.flashingNow() && !s.pausedNow() {
			if !s.setIndicator(cur, gen) {
				return
			}
			if cur == cfg.Color1 {
				cur = cfg.Color2
			} else {
				cur = cfg.Color1
			}
		}
		if !s.sleepFor(indicatorPeriod, gen) {
			return
		}
	}
}

func (s *Session) setIndicator(c blink.ColorID, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.presenter.IndicatorColor(c)
	return true
}
