// Package blink contains the domain logic for synchronized blinking: the
// shared blink configuration (two colors, a flash pattern and a time-offset
// digit), its query-string codec, and the start-time schedule both sides
// derive independently from the wall clock.
package blink

import (
	"math/rand"
	"time"
)

// ColorID identifies one of the accent colors a pattern can flash. The
// actual pixel color is resolved by the presentation layer's theme table.
type ColorID int

const (
	ColorRed ColorID = iota
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple

	// NumColors is the size of the accent color table. Encoded color
	// indices must be below this.
	NumColors
)

// ColorNone is the neutral background, shown whenever no flash is active.
const ColorNone ColorID = -1

// PatternID indexes the fixed pattern table.
type PatternID int

// Digit seeds the synchronized start-time schedule. It is carried in the
// shared link and is not secret.
type Digit int

// patternTable is the closed set of flash patterns. Each symbol toggles the
// flash color: '.' is a short flash, '-' a long one.
var patternTable = [...]string{
	"..--..-",
	".-.-.-.-",
	"---....-",
	".--..--.",
	"-..-..-.",
	".......-",
	"--..--..",
	".-..-..-",
	"-.-.-.--",
	"..-..-..",
}

// NumPatterns is the size of the pattern table.
const NumPatterns = PatternID(len(patternTable))

// Steps returns the pattern's symbol string, or "" for an out-of-range id.
func (p PatternID) Steps() string {
	if p < 0 || p >= NumPatterns {
		return ""
	}
	return patternTable[p]
}

func (p PatternID) String() string {
	return p.Steps()
}

// Flash phase durations per pattern symbol.
const (
	ShortFlash = 250 * time.Millisecond
	LongFlash  = 750 * time.Millisecond
)

// StepDuration maps a pattern symbol to how long its flash phase lasts.
// Unknown symbols act as zero-width separators: the color still toggles,
// but no time passes.
func StepDuration(symbol byte) time.Duration {
	switch symbol {
	case '.':
		return ShortFlash
	case '-':
		return LongFlash
	default:
		return 0
	}
}

// Config is the blink configuration shared between the two sessions via the
// link. It is immutable once created: the initiator generates it on first
// Play, the receiver decodes it from the link at startup.
type Config struct {
	Color1     ColorID
	Color2     ColorID
	Pattern    PatternID
	TimeOffset Digit
}

// InBounds reports whether every field is inside its table's bounds. This
// is the decode-side check: a link with equal colors is odd but usable.
func (c Config) InBounds() bool {
	if c.Color1 < 0 || c.Color1 >= NumColors {
		return false
	}
	if c.Color2 < 0 || c.Color2 >= NumColors {
		return false
	}
	if c.Pattern < 0 || c.Pattern >= NumPatterns {
		return false
	}
	return c.TimeOffset >= 0 && c.TimeOffset <= 9
}

// Valid additionally requires the two colors to differ, which generation
// guarantees.
func (c Config) Valid() bool {
	return c.InBounds() && c.Color1 != c.Color2
}

// NewRandomConfig generates a fresh configuration. The two colors are
// always distinct.
func NewRandomConfig(rng *rand.Rand) Config {
	c1 := ColorID(rng.Intn(int(NumColors)))
	c2 := ColorID(rng.Intn(int(NumColors) - 1))
	if c2 >= c1 {
		c2++
	}
	return Config{
		Color1:     c1,
		Color2:     c2,
		Pattern:    PatternID(rng.Intn(int(NumPatterns))),
		TimeOffset: Digit(rng.Intn(10)),
	}
}
