package blink

import "time"

// NextStartTime returns the next instant both sessions will independently
// agree on, given only the shared time-offset digit and the wall clock. It
// is the smallest whole-second instant, strictly later than the start of
// the next whole second after now, whose epoch-second last digit is d or
// (d+5)%10. Matching two digits five apart halves the average wait versus
// matching one, with no handshake needed.
//
// The result is always strictly in the future and at most ~6s away.
func NextStartTime(d Digit, now time.Time) time.Time {
	sec := now.Unix() + 2
	lo := int64(d) % 10
	hi := (lo + 5) % 10
	for sec%10 != lo && sec%10 != hi {
		sec++
	}
	return time.Unix(sec, 0)
}

// SecondsUntil is the countdown value displayed while waiting for target:
// the number of whole seconds remaining, rounded up.
func SecondsUntil(target, now time.Time) int {
	ms := target.Sub(now).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + 999) / 1000)
}
