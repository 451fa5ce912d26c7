package main

import (
	"embed"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"BlinkSync/ui"
)

//go:embed assets/*
var content embed.FS

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if os.Getenv("BLINKSYNC_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	fyneApp := app.New()
	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	// A receiver launches the app with the shared link as its argument.
	link := ""
	if len(os.Args) > 1 {
		link = os.Args[1]
	}

	a := NewAppManager(content, link)

	w, _ := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w

	w.SetOnClosed(func() {
		a.Shutdown()
	})

	w.ShowAndRun()
}
