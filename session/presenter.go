package session

import "BlinkSync/blink"

// Presenter is the notification surface the core drives. The session never
// touches a rendering surface directly; the presentation layer implements
// this interface and decides how each event is drawn.
//
// Calls can arrive from the session's internal goroutines while its lock is
// held, so implementations must not block and must not call back into the
// session synchronously. The Fyne adapter defers all work with fyne.Do.
type Presenter interface {
	// PhaseChanged fires on every Welcome/Countdown/Running transition.
	PhaseChanged(Phase)
	// CountdownTick reports whole seconds remaining until the next flash.
	CountdownTick(seconds int)
	// CountdownCleared fires when the countdown completes or is cancelled
	// and the display should go blank.
	CountdownCleared()
	// IndicatorColor drives the small preview dot cycling the two pattern
	// colors between flash cycles. blink.ColorNone clears it.
	IndicatorColor(blink.ColorID)
	// FlashBackground sets the full-surface flash color. blink.ColorNone
	// is the neutral background.
	FlashBackground(blink.ColorID)
	// FlashingChanged reports whether a pattern is actively playing.
	FlashingChanged(active bool)
	// ShareFallback fires when neither the share sheet nor the clipboard
	// accepted the link; the UI should display it for manual copying.
	ShareFallback(url string)
}

// Sharer hands a freshly generated link to the platform. Both calls are
// best-effort; the session falls back from one to the next.
type Sharer interface {
	TryShare(url string) bool
	CopyToClipboard(url string) bool
}

type nopPresenter struct{}

func (nopPresenter) PhaseChanged(Phase)            {}
func (nopPresenter) CountdownTick(int)             {}
func (nopPresenter) CountdownCleared()             {}
func (nopPresenter) IndicatorColor(blink.ColorID)  {}
func (nopPresenter) FlashBackground(blink.ColorID) {}
func (nopPresenter) FlashingChanged(bool)          {}
func (nopPresenter) ShareFallback(string)          {}
