// Package main contains the application wiring and the AppManager which
// coordinates the session core, audio and the UI. The AppManager is both
// the session's Presenter (bridging core notifications onto the Fyne
// thread) and its Sharer (clipboard hand-off of generated links).
//
// Concurrency model: a single command-loop goroutine serializes
// Play/Cancel/AdoptLink requests coming from the UI, so session
// transitions never race each other. The session's own timed loops call
// back through the Presenter interface; every callback defers its UI work
// with fyne.Do and never calls into the session synchronously.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"

	"BlinkSync/blink"
	"BlinkSync/control"
	"BlinkSync/i18n"
	"BlinkSync/session"
	"BlinkSync/ui"
)

const (
	sampleRate    = beep.SampleRate(44100)
	cueFrequency  = 880.0
	cueDuration   = 150 * time.Millisecond
	enqueueWindow = 150 * time.Millisecond
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	session    *session.Session
	view       *ui.View

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc

	content   embed.FS // Embedded file system for assets
	muted     bool
	speakerOK bool
}

// NewAppManager creates a new application manager. The link argument is
// the shared URL this instance was launched with, if any; it decides the
// session's role.
func NewAppManager(content embed.FS, link string) *AppManager {
	a := &AppManager{content: content}
	a.muted = os.Getenv("BLINKSYNC_MUTE") != ""
	a.initSpeaker()

	a.cmdCh = make(chan control.Command, 64)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	a.session = session.New(session.Options{
		Presenter: a,
		Sharer:    a,
		BaseURL:   getenv("BLINKSYNC_BASE_URL", "https://blinksync.app/s"),
		Link:      link,
	})
	return a
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (a *AppManager) initSpeaker() {
	if a.muted {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("audio disabled: failed to initialize speaker")
		return
	}
	a.speakerOK = true
}

// EnqueueCommand posts a command to the internal command loop. If the
// channel stays full for a short window, the command is dropped rather
// than blocking the UI.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-time.After(enqueueWindow):
		log.Warn().Msg("command queue full, dropping command")
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			var err error
			switch cmd.Type {
			case control.CmdPlay:
				a.session.Play()
			case control.CmdCancel:
				a.session.Cancel()
			case control.CmdAdoptLink:
				err = a.session.AdoptLink(cmd.Link)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

// SetView connects the window's surface once the UI is built.
func (a *AppManager) SetView(v *ui.View) {
	a.view = v
}

// HasConfig reports whether the session already carries a blink config.
func (a *AppManager) HasConfig() bool {
	_, ok := a.session.Config()
	return ok
}

// HandleKeyRune handles key presses: space toggles between Play and
// Cancel.
func (a *AppManager) HandleKeyRune(r rune) {
	if r != ' ' {
		return
	}
	if a.session.Phase() == session.PhaseWelcome {
		a.EnqueueCommand(control.Command{Type: control.CmdPlay})
	} else {
		a.EnqueueCommand(control.Command{Type: control.CmdCancel})
	}
}

// ShowInfoDialog shows a dialog whose text comes from an embedded JSON
// file keyed by language.
func (a *AppManager) ShowInfoDialog(title, contentFile string, minSize fyne.Size) {
	bytes, err := a.content.ReadFile(contentFile)
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}
	var dialogues map[string]string
	if err := json.Unmarshal(bytes, &dialogues); err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}
	contentText, ok := dialogues[i18n.GetLang()]
	if !ok {
		contentText = dialogues["en"]
	}

	text := widget.NewLabel(contentText)
	text.Wrapping = fyne.TextWrapWord
	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)
	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

// Shutdown stops the command loop and invalidates the session's loops.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
	if a.session != nil {
		a.session.Dispose()
	}
}

// --- session.Presenter ---

func (a *AppManager) PhaseChanged(p session.Phase) {
	fyne.Do(func() {
		_, hasConfig := a.session.Config()
		a.view.ApplyPhase(p, hasConfig)
	})
}

func (a *AppManager) CountdownTick(seconds int) {
	fyne.Do(func() {
		a.view.SetCountdown(ui.FormatCountdown(seconds))
	})
}

func (a *AppManager) CountdownCleared() {
	fyne.Do(func() {
		a.view.SetCountdown("")
	})
}

func (a *AppManager) IndicatorColor(c blink.ColorID) {
	fyne.Do(func() {
		a.view.SetIndicatorColor(ui.AccentColor(c))
	})
}

func (a *AppManager) FlashBackground(c blink.ColorID) {
	fyne.Do(func() {
		a.view.SetFlashColor(ui.AccentColor(c))
	})
}

func (a *AppManager) FlashingChanged(active bool) {
	if active {
		a.playCue()
	}
}

func (a *AppManager) ShareFallback(url string) {
	fyne.Do(func() {
		a.view.ShowShareFallback(url)
	})
}

// playCue sounds a short tone when a flash cycle begins, so a pocketed
// phone still signals.
func (a *AppManager) playCue() {
	if a.muted || !a.speakerOK {
		return
	}
	tone, err := generators.SineTone(sampleRate, cueFrequency)
	if err != nil {
		log.Debug().Err(err).Msg("could not generate cue tone")
		return
	}
	speaker.Play(beep.Take(sampleRate.N(cueDuration), tone))
}

// --- session.Sharer ---

// TryShare would hand the link to a native share sheet; desktop builds
// have none, so this always defers to the clipboard.
func (a *AppManager) TryShare(url string) bool {
	return false
}

// CopyToClipboard puts the link on the system clipboard.
func (a *AppManager) CopyToClipboard(url string) bool {
	if a.mainWindow == nil {
		return false
	}
	fyne.Do(func() {
		a.mainWindow.Clipboard().SetContent(url)
		a.view.SetStatus(i18n.T("Link copied to clipboard"))
	})
	return true
}
