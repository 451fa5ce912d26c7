package blink

import (
	"testing"
	"time"
)

func TestNextStartTimeIsFutureWholeSecond(t *testing.T) {
	instants := []time.Time{
		time.Unix(0, 0),
		time.Unix(1700000000, 0),
		time.Unix(1700000000, 1),
		time.Unix(1700000004, 999*int64(time.Millisecond)),
		time.Unix(1700000009, 500*int64(time.Millisecond)),
		time.Now(),
	}
	for d := Digit(0); d <= 9; d++ {
		for _, now := range instants {
			got := NextStartTime(d, now)
			if !got.After(now) {
				t.Fatalf("d=%d now=%v: start %v is not in the future", d, now, got)
			}
			if got.UnixMilli()%1000 != 0 {
				t.Fatalf("d=%d now=%v: start %v is not on a whole second", d, now, got)
			}
			last := got.Unix() % 10
			if last != int64(d) && last != (int64(d)+5)%10 {
				t.Fatalf("d=%d now=%v: start second ends in %d", d, now, last)
			}
		}
	}
}

func TestNextStartTimeSkipsTheNextWholeSecond(t *testing.T) {
	// now at xx:x1.500 with d=2: second xx:x2 starts within the next
	// second and must not be chosen even though its last digit matches.
	now := time.Unix(1700000001, 500*int64(time.Millisecond))
	got := NextStartTime(2, now)
	if got.Unix() != 1700000007 {
		t.Fatalf("expected second ...07 (digit 2+5), got %d", got.Unix())
	}
}

func TestNextStartTimeMonotonic(t *testing.T) {
	base := time.Unix(1700000000, 0)
	for d := Digit(0); d <= 9; d++ {
		prev := NextStartTime(d, base)
		for i := 1; i < 200; i++ {
			now := base.Add(time.Duration(i) * 137 * time.Millisecond)
			cur := NextStartTime(d, now)
			if cur.Before(prev) {
				t.Fatalf("d=%d: start went backwards, %v then %v", d, prev, cur)
			}
			prev = cur
		}
	}
}

func TestNextStartTimeNeverMoreThanSixSecondsOut(t *testing.T) {
	for d := Digit(0); d <= 9; d++ {
		for s := int64(0); s < 10; s++ {
			now := time.Unix(1700000000+s, 250*int64(time.Millisecond))
			wait := NextStartTime(d, now).Sub(now)
			if wait > 7*time.Second {
				t.Fatalf("d=%d now=%v: wait %v too long", d, now, wait)
			}
		}
	}
}

func TestSecondsUntil(t *testing.T) {
	target := time.Unix(1700000010, 0)
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Unix(1700000005, 0), 5},
		{time.Unix(1700000009, 1), 1},
		{time.Unix(1700000009, 999*int64(time.Millisecond)), 1},
		{time.Unix(1700000010, 0), 0},
		{time.Unix(1700000011, 0), 0},
	}
	for _, c := range cases {
		if got := SecondsUntil(target, c.now); got != c.want {
			t.Fatalf("SecondsUntil(now=%v) = %d, want %d", c.now, got, c.want)
		}
	}
}
