// Package session contains the synchronization core: the session state
// machine, the animation engine that plays flash patterns in lockstep with
// the schedule both sides derive from the wall clock, and the countdown and
// indicator tickers.
//
// Concurrency model: the session owns a handful of shared mutable fields
// (phase, config, generation counter, pause flag) guarded by one mutex.
// Three loops run as goroutines per play: the animation engine, the
// countdown ticker and the indicator cycler. None of them is ever stopped
// preemptively; every loop captures the generation counter at start and
// goes permanently inert as soon as the live counter moves past it. All
// waits go through the injected clock so tests can drive them with a fake.
package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"BlinkSync/blink"
)

// Phase is the user-facing phase of the session.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseCountdown
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	}
	return "unknown"
}

// Role records which side of the pairing this session is. It is fixed once
// the session knows whether it was started from a shared link.
type Role int

const (
	RoleInitiator Role = iota
	RoleReceiver
)

func (r Role) String() string {
	if r == RoleReceiver {
		return "receiver"
	}
	return "initiator"
}

var (
	ErrAlreadyConfigured = errors.New("session already has a blink config")
	ErrBadLink           = errors.New("link carries no valid blink config")
)

// Session is the session-level controller. It owns the blink config, the
// phase, the generation counter and the pause flag, and spawns the timed
// loops that drive the presenter.
type Session struct {
	id        uuid.UUID
	clock     clockwork.Clock
	rng       *rand.Rand
	presenter Presenter
	sharer    Sharer
	baseURL   string

	mu           sync.Mutex
	role         Role
	phase        Phase
	cfg          *blink.Config
	generation   uint64
	countdownSeq uint64
	paused       bool
	flashing     bool
	played       bool
}

// Options configures a new session. Zero-value fields get working defaults;
// Link may carry a shared URL or query string, which makes the session a
// receiver.
type Options struct {
	Clock     clockwork.Clock
	Rand      *rand.Rand
	Presenter Presenter
	Sharer    Sharer
	BaseURL   string
	Link      string
}

// New creates a session. The role is decided here, once: a valid encoded
// config in opts.Link means receiver, anything else means initiator with no
// config until the first Play. A malformed link is not an error, just an
// absent config.
func New(opts Options) *Session {
	s := &Session{
		id:        uuid.New(),
		clock:     opts.Clock,
		rng:       opts.Rand,
		presenter: opts.Presenter,
		sharer:    opts.Sharer,
		baseURL:   opts.BaseURL,
		phase:     PhaseWelcome,
		paused:    true,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.presenter == nil {
		s.presenter = nopPresenter{}
	}
	if s.baseURL == "" {
		s.baseURL = defaultBaseURL
	}
	if opts.Link != "" {
		if cfg, ok := blink.DecodeLink(opts.Link); ok {
			s.cfg = &cfg
			s.role = RoleReceiver
		} else {
			log.Warn().Str("session", s.id.String()).Msg("ignoring malformed shared link")
		}
	}
	log.Info().
		Str("session", s.id.String()).
		Str("role", s.role.String()).
		Bool("has_config", s.cfg != nil).
		Msg("session created")
	return s
}

const defaultBaseURL = "https://blinksync.app/s"

// Role returns the session's fixed role.
func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Config returns a copy of the current blink config, if one is present.
func (s *Session) Config() (blink.Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return blink.Config{}, false
	}
	return *s.cfg, true
}

// AdoptLink installs a config pasted by the user after startup. Only a
// session still on the welcome screen that has never played and has no
// config can adopt one; doing so fixes the role to receiver. The role never
// changes after the first Play, so a cancelled initiator stays an
// initiator.
func (s *Session) AdoptLink(raw string) error {
	cfg, ok := blink.DecodeLink(raw)
	if !ok {
		return ErrBadLink
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.played || s.cfg != nil || s.phase != PhaseWelcome {
		return ErrAlreadyConfigured
	}
	s.cfg = &cfg
	s.role = RoleReceiver
	log.Info().Str("session", s.id.String()).Msg("adopted shared link, session is now a receiver")
	return nil
}

// Play moves the session from Welcome into Countdown. On the first play of
// a config-less session a fresh config is generated and the share flow
// runs; either way a new generation of the timed loops is started, aimed at
// the next synchronized start time.
func (s *Session) Play() {
	s.mu.Lock()
	if s.phase != PhaseWelcome {
		s.mu.Unlock()
		return
	}
	var shareLink string
	if s.cfg == nil {
		cfg := blink.NewRandomConfig(s.rng)
		s.cfg = &cfg
		shareLink = blink.ShareURL(s.baseURL, cfg)
	}
	cfg := *s.cfg
	s.played = true
	s.paused = false
	s.generation++
	gen := s.generation
	startAt := blink.NextStartTime(cfg.TimeOffset, s.clock.Now())
	s.setPhaseLocked(PhaseCountdown)
	s.startCountdownLocked(startAt, gen)
	s.mu.Unlock()

	log.Info().
		Str("session", s.id.String()).
		Uint64("generation", gen).
		Time("start_at", startAt).
		Str("pattern", cfg.Pattern.String()).
		Msg("play")

	if shareLink != "" {
		s.runShareFlow(shareLink)
	}
	go s.runAnimation(cfg, startAt, gen)
	go s.runIndicator(cfg, gen)
}

// Cancel resets everything to the welcome screen from any phase: the
// config is discarded, all live loops are superseded, and the visible
// surface returns to neutral. Superseded loops never repaint, so the
// surface cleanup happens here, under the same lock that bumps the
// generation.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.generation++
	s.countdownSeq++
	s.paused = true
	s.flashing = false
	s.cfg = nil
	s.setPhaseLocked(PhaseWelcome)
	s.presenter.CountdownCleared()
	s.presenter.FlashBackground(blink.ColorNone)
	s.presenter.IndicatorColor(blink.ColorNone)
	s.presenter.FlashingChanged(false)
	gen := s.generation
	s.mu.Unlock()
	log.Info().Str("session", s.id.String()).Uint64("generation", gen).Msg("cancel")
}

// Dispose invalidates all loops without touching the presenter. Call it
// when the window closes.
func (s *Session) Dispose() {
	s.mu.Lock()
	s.generation++
	s.countdownSeq++
	s.paused = true
	s.mu.Unlock()
}

// runShareFlow hands a freshly generated link to the platform: native
// share first, clipboard second, and an on-screen fallback display if both
// refuse. Failure here is never fatal.
func (s *Session) runShareFlow(url string) {
	if s.sharer != nil {
		if s.sharer.TryShare(url) {
			log.Debug().Str("session", s.id.String()).Msg("link handed to share sheet")
			return
		}
		if s.sharer.CopyToClipboard(url) {
			log.Debug().Str("session", s.id.String()).Msg("link copied to clipboard")
			return
		}
	}
	log.Debug().Str("session", s.id.String()).Msg("sharing unavailable, showing fallback")
	s.presenter.ShareFallback(url)
}

func (s *Session) setPhaseLocked(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.presenter.PhaseChanged(p)
}

// alive reports whether gen is still the live generation.
func (s *Session) alive(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

func (s *Session) pausedNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Session) flashingNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flashing
}

// sleepFor suspends on the clock for d, then reports whether gen is still
// live. Cancellation is cooperative: the wait itself is never interrupted,
// the caller just stops afterwards.
func (s *Session) sleepFor(d time.Duration, gen uint64) bool {
	t := s.clock.NewTimer(d)
	<-t.Chan()
	return s.alive(gen)
}

func (s *Session) sleepUntil(at time.Time, gen uint64) bool {
	d := at.Sub(s.clock.Now())
	if d <= 0 {
		return s.alive(gen)
	}
	return s.sleepFor(d, gen)
}
