package blink

import (
	"net/url"
	"strconv"
	"strings"
)

// Query-string keys of the shared link. All four are required together.
const (
	keyColor1  = "c1"
	keyColor2  = "c2"
	keyPattern = "p"
	keyOffset  = "t"
)

// Encode serializes a config as a query string with decimal-integer
// parameters. Decode(Encode(c)) == c for every valid config.
func Encode(c Config) string {
	v := url.Values{}
	v.Set(keyColor1, strconv.Itoa(int(c.Color1)))
	v.Set(keyColor2, strconv.Itoa(int(c.Color2)))
	v.Set(keyPattern, strconv.Itoa(int(c.Pattern)))
	v.Set(keyOffset, strconv.Itoa(int(c.TimeOffset)))
	return v.Encode()
}

// Decode parses a query string back into a config. It never panics on
// malformed input: a missing key, a non-integer value or an out-of-range
// index all yield (Config{}, false), which callers treat as "no shared
// config".
func Decode(query string) (Config, bool) {
	v, err := url.ParseQuery(query)
	if err != nil {
		return Config{}, false
	}
	c1, ok := intParam(v, keyColor1)
	if !ok {
		return Config{}, false
	}
	c2, ok := intParam(v, keyColor2)
	if !ok {
		return Config{}, false
	}
	p, ok := intParam(v, keyPattern)
	if !ok {
		return Config{}, false
	}
	t, ok := intParam(v, keyOffset)
	if !ok {
		return Config{}, false
	}
	c := Config{
		Color1:     ColorID(c1),
		Color2:     ColorID(c2),
		Pattern:    PatternID(p),
		TimeOffset: Digit(t),
	}
	if !c.InBounds() {
		return Config{}, false
	}
	return c, true
}

func intParam(v url.Values, key string) (int, bool) {
	if !v.Has(key) {
		return 0, false
	}
	n, err := strconv.Atoi(v.Get(key))
	if err != nil {
		return 0, false
	}
	return n, true
}

// DecodeLink accepts either a full URL or a bare query string and decodes
// the config carried in it.
func DecodeLink(raw string) (Config, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Config{}, false
	}
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		return Decode(u.RawQuery)
	}
	return Decode(raw)
}

// ShareURL builds the full shareable link for a config.
func ShareURL(base string, c Config) string {
	return strings.TrimRight(base, "?&") + "?" + Encode(c)
}
