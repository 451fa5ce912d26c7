package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"BlinkSync/blink"
)

// NeutralColor is the resting background: dark enough that any accent
// color reads as a flash against it.
var NeutralColor = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

// accentColors resolves the symbolic color ids to pixel colors. Indexed by
// blink.ColorID; picked for maximum mutual contrast at full brightness so
// the flashes carry across a dark street.
var accentColors = [blink.NumColors]color.NRGBA{
	{R: 0xff, G: 0x2d, B: 0x2d, A: 0xff}, // red
	{R: 0xff, G: 0x9f, B: 0x1c, A: 0xff}, // orange
	{R: 0xff, G: 0xe9, B: 0x3e, A: 0xff}, // yellow
	{R: 0x2e, G: 0xe6, B: 0x6e, A: 0xff}, // green
	{R: 0x2e, G: 0x86, B: 0xff, A: 0xff}, // blue
	{R: 0xb1, G: 0x4b, B: 0xff, A: 0xff}, // purple
}

// AccentColor resolves a symbolic color id; anything outside the table
// (including blink.ColorNone) resolves to the neutral background.
func AccentColor(id blink.ColorID) color.Color {
	if id < 0 || id >= blink.NumColors {
		return NeutralColor
	}
	return accentColors[id]
}

// CustomTheme darkens the stock theme so the flash surface owns the
// window.
type CustomTheme struct {
	fyne.Theme
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme() fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme()}
}

// Color overrides the window background; everything else falls through.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return NeutralColor
	}
	return t.Theme.Color(name, theme.VariantDark)
}
