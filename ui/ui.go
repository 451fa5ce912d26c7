package ui

import (
	"errors"
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"BlinkSync/control"
	"BlinkSync/i18n"
	"BlinkSync/session"
)

// Window dimensions and accents.
const (
	WindowWidth    = 360
	WindowHeight   = 640
	IndicatorSize  = 28
	CountdownSize  = 96.0
	StatusSize     = 18.0
	CommandTimeout = 200 * time.Millisecond
)

// App is the interface the UI needs from the application side.
type App interface {
	EnqueueCommand(cmd control.Command)
	HandleKeyRune(rune)
	ShowInfoDialog(title, contentFile string, minSize fyne.Size)
	SetView(*View)
	HasConfig() bool
}

// View is the main window's mutable surface. All mutators must run on the
// UI thread; the application side wraps calls in fyne.Do.
type View struct {
	window fyne.Window

	flashRect     *canvas.Rectangle
	indicatorDot  *canvas.Circle
	countdownText *canvas.Text
	statusText    *canvas.Text
	playButton    *widget.Button
	cancelButton  *widget.Button
	linkEntry     *widget.Entry
	joinButton    *widget.Button
	linkRow       fyne.CanvasObject
}

// SetFlashColor repaints the full-window flash surface.
func (v *View) SetFlashColor(c color.Color) {
	v.flashRect.FillColor = c
	v.flashRect.Refresh()
}

// SetIndicatorColor repaints the preview dot.
func (v *View) SetIndicatorColor(c color.Color) {
	v.indicatorDot.FillColor = c
	v.indicatorDot.Refresh()
}

// SetCountdown shows seconds remaining; empty clears the display.
func (v *View) SetCountdown(text string) {
	v.countdownText.Text = text
	v.countdownText.Refresh()
}

// SetStatus sets the small status line.
func (v *View) SetStatus(text string) {
	v.statusText.Text = text
	v.statusText.Refresh()
}

// ApplyPhase swaps the visible controls for the given phase.
func (v *View) ApplyPhase(p session.Phase, hasConfig bool) {
	switch p {
	case session.PhaseWelcome:
		v.playButton.Show()
		v.cancelButton.Hide()
		if hasConfig {
			v.linkRow.Hide()
		} else {
			v.linkRow.Show()
		}
		v.SetStatus("")
		v.SetCountdown("")
	case session.PhaseCountdown:
		v.playButton.Hide()
		v.cancelButton.Show()
		v.linkRow.Hide()
		v.SetStatus(i18n.T("Get ready"))
	case session.PhaseRunning:
		v.playButton.Hide()
		v.cancelButton.Show()
		v.linkRow.Hide()
		v.SetStatus(i18n.T("Flashing"))
	}
	v.playButton.Refresh()
	v.cancelButton.Refresh()
}

// ShowShareFallback displays the link for manual copying when neither the
// share sheet nor the clipboard took it.
func (v *View) ShowShareFallback(url string) {
	entry := widget.NewEntry()
	entry.SetText(url)
	label := widget.NewLabel(i18n.T("Share this link with the person you are looking for"))
	label.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(label, entry)
	dialog.ShowCustom(i18n.T("Share"), i18n.T("Close"), content, v.window)
}

// ShowAdoptError reports why a pasted link was not taken: a link that did
// not decode and a session that already has one get different messages.
func (v *View) ShowAdoptError(err error) {
	if errors.Is(err, session.ErrAlreadyConfigured) {
		v.SetStatus(i18n.T("A link is already set up"))
		return
	}
	v.SetStatus(i18n.T("That link is not valid"))
}

func enqueueAndWait(a App, cmd control.Command) {
	reply := make(chan error, 1)
	cmd.Reply = reply
	a.EnqueueCommand(cmd)
	select {
	case <-reply:
	case <-time.After(CommandTimeout):
	}
}

// CreateMainWindow builds the single window of the app: a full-surface
// flash rectangle with the countdown, preview dot and controls stacked on
// top of it.
func CreateMainWindow(a App, fyneApp fyne.App) (fyne.Window, *View) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "BlinkSync"
	}
	w := fyneApp.NewWindow(title)

	v := &View{window: w}

	v.flashRect = canvas.NewRectangle(NeutralColor)
	v.indicatorDot = canvas.NewCircle(NeutralColor)

	v.countdownText = canvas.NewText("", color.White)
	v.countdownText.TextSize = CountdownSize
	v.countdownText.TextStyle.Bold = true
	v.countdownText.Alignment = fyne.TextAlignCenter

	v.statusText = canvas.NewText("", color.White)
	v.statusText.TextSize = StatusSize
	v.statusText.Alignment = fyne.TextAlignCenter

	v.playButton = widget.NewButton(i18n.T("Play"), func() {
		enqueueAndWait(a, control.Command{Type: control.CmdPlay})
	})
	v.cancelButton = widget.NewButton(i18n.T("Cancel"), func() {
		enqueueAndWait(a, control.Command{Type: control.CmdCancel})
	})
	v.cancelButton.Hide()

	v.linkEntry = widget.NewEntry()
	v.linkEntry.SetPlaceHolder(i18n.T("Paste a shared link"))
	join := func() {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdAdoptLink, Link: v.linkEntry.Text, Reply: reply})
		go func() {
			select {
			case err := <-reply:
				if err != nil {
					fyne.Do(func() { v.ShowAdoptError(err) })
				} else {
					fyne.Do(func() {
						v.linkEntry.SetText("")
						v.ApplyPhase(session.PhaseWelcome, true)
					})
				}
			case <-time.After(CommandTimeout):
			}
		}()
	}
	v.joinButton = widget.NewButton(i18n.T("Join"), join)
	v.linkEntry.OnSubmitted = func(string) { join() }
	v.linkRow = container.NewBorder(nil, nil, nil, v.joinButton, v.linkEntry)

	aboutIcon := widget.NewIcon(theme.QuestionIcon())
	helpButton := NewTappableContainer(aboutIcon, func() {
		a.ShowInfoDialog(i18n.T("About BlinkSync"), "assets/dialogue_about.json", fyne.NewSize(320, 240))
	})

	dotWrap := container.NewGridWrap(fyne.NewSize(IndicatorSize, IndicatorSize), v.indicatorDot)

	overlay := container.NewVBox(
		layout.NewSpacer(),
		container.New(layout.NewCenterLayout(), v.statusText),
		container.New(layout.NewCenterLayout(), v.countdownText),
		container.New(layout.NewCenterLayout(), dotWrap),
		layout.NewSpacer(),
		v.linkRow,
		container.New(layout.NewCenterLayout(), container.NewStack(v.playButton, v.cancelButton)),
		container.NewHBox(helpButton, layout.NewSpacer()),
	)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)

	w.SetContent(container.NewStack(v.flashRect, container.NewPadded(overlay)))
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// A receiver launched with a link already holds a config; lay out the
	// welcome screen to match before the first phase change arrives.
	v.ApplyPhase(session.PhaseWelcome, a.HasConfig())

	a.SetView(v)
	return w, v
}

// FormatCountdown renders seconds-remaining for the big display.
func FormatCountdown(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return strconv.Itoa(seconds)
}

// TappableContainer wraps a canvas object with a primary-tap handler.
type TappableContainer struct {
	widget.BaseWidget
	Content  fyne.CanvasObject
	OnTapped func()
}

func NewTappableContainer(c fyne.CanvasObject, onTapped func()) *TappableContainer {
	t := &TappableContainer{Content: c, OnTapped: onTapped}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(t.Content, layout.NewSpacer()))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}
