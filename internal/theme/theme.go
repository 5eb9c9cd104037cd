// Package theme provides the desktop colour palette. Without a theme the
// built-in Aero palette is used; with one, colours are derived from a
// bubbletint tint.
package theme

import (
	"fmt"
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, the Aero palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "dir", themesDir, "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if a bubbletint theme is active
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil when the Aero palette is in use.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available returns the sorted ids of all registered themes, custom ones
// included.
func Available() []string {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir)
	}
	ids := tint.TintIDs()
	sort.Strings(ids)
	return ids
}

// Lookup returns the registered theme with the given id without changing
// the active one.
func Lookup(id string) (*tint.Tint, bool) {
	prev := tint.Current()
	if !tint.SetTintID(id) {
		return nil, false
	}
	t := tint.Current()
	if prev != nil {
		tint.SetTintID(prev.ID)
	}
	return t, true
}

// Aero palette.
var (
	aeroSkyTop      = lipgloss.Color("#1c4f8a")
	aeroSkyBottom   = lipgloss.Color("#3a9ad9")
	aeroGlassActive = lipgloss.Color("#4a86c5")
	aeroGlassIdle   = lipgloss.Color("#8aa4bf")
	aeroWindowBg    = lipgloss.Color("#f0f4f9")
	aeroWindowFg    = lipgloss.Color("#1b1b1b")
	aeroTaskbar     = lipgloss.Color("#10243d")
	aeroTaskbarFg   = lipgloss.Color("#dce9f7")
	aeroOrb         = lipgloss.Color("#2f9e44")
	aeroClose       = lipgloss.Color("#c42b1c")
	aeroHighlight   = lipgloss.Color("#6fb6f2")
)

// WallpaperTop returns the colour of the upper wallpaper band.
func WallpaperTop() color.Color {
	t := Current()
	if t == nil {
		return aeroSkyTop
	}
	return t.Bg
}

// WallpaperBottom returns the colour of the lower wallpaper band.
func WallpaperBottom() color.Color {
	t := Current()
	if t == nil {
		return aeroSkyBottom
	}
	return t.Blue
}

// WallpaperPattern returns the colour of the wallpaper pattern glyphs.
func WallpaperPattern() color.Color {
	t := Current()
	if t == nil {
		return aeroHighlight
	}
	return t.BrightBlack
}

// BorderActive returns the border colour of the active window.
func BorderActive() color.Color {
	t := Current()
	if t == nil {
		return aeroGlassActive
	}
	return t.BrightCyan
}

// BorderInactive returns the border colour of background windows.
func BorderInactive() color.Color {
	t := Current()
	if t == nil {
		return aeroGlassIdle
	}
	return t.BrightBlack
}

// BorderInteracting returns the border colour while a window is dragged or resized.
func BorderInteracting() color.Color {
	t := Current()
	if t == nil {
		return aeroHighlight
	}
	return t.BrightYellow
}

// TitleBarFg returns the title text colour for active or background windows.
func TitleBarFg(active bool) color.Color {
	t := Current()
	if t == nil {
		if active {
			return lipgloss.Color("#ffffff")
		}
		return lipgloss.Color("#e4ebf2")
	}
	if active {
		return t.BrightWhite
	}
	return t.White
}

// TitleBarBg returns the title bar background for active or background windows.
func TitleBarBg(active bool) color.Color {
	if active {
		return BorderActive()
	}
	return BorderInactive()
}

// WindowBg returns the window body background.
func WindowBg() color.Color {
	t := Current()
	if t == nil {
		return aeroWindowBg
	}
	return t.Bg
}

// WindowFg returns the window body text colour.
func WindowFg() color.Color {
	t := Current()
	if t == nil {
		return aeroWindowFg
	}
	return t.Fg
}

// WindowAccent returns the colour used for headings inside windows.
func WindowAccent() color.Color {
	t := Current()
	if t == nil {
		return aeroSkyTop
	}
	return t.BrightBlue
}

// ButtonClose returns the close button background.
func ButtonClose() color.Color {
	t := Current()
	if t == nil {
		return aeroClose
	}
	return t.Red
}

// ButtonFg returns the foreground colour for title bar buttons.
func ButtonFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

// TaskbarBg returns the background colour for the taskbar.
func TaskbarBg() color.Color {
	t := Current()
	if t == nil {
		return aeroTaskbar
	}
	return t.Black
}

// TaskbarFg returns the foreground colour for the taskbar.
func TaskbarFg() color.Color {
	t := Current()
	if t == nil {
		return aeroTaskbarFg
	}
	return t.White
}

// TaskbarActiveBg returns the background of the active window's taskbar entry.
func TaskbarActiveBg() color.Color {
	t := Current()
	if t == nil {
		return aeroGlassActive
	}
	return t.Blue
}

// TaskbarMinimizedFg returns the text colour of minimized taskbar entries.
func TaskbarMinimizedFg() color.Color {
	t := Current()
	if t == nil {
		return aeroGlassIdle
	}
	return t.BrightBlack
}

// StartButtonBg returns the background of the start orb.
func StartButtonBg() color.Color {
	t := Current()
	if t == nil {
		return aeroOrb
	}
	return t.Green
}

// IconFg returns the colour of desktop icon glyphs.
func IconFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

// IconLabelFg returns the colour of desktop icon labels.
func IconLabelFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#eaf4ff")
	}
	return t.Fg
}

// IconPressedBg returns the highlight behind an icon being pressed.
func IconPressedBg() color.Color {
	t := Current()
	if t == nil {
		return aeroHighlight
	}
	return t.Blue
}

// PanelBg returns the background of the search and power panels.
func PanelBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#16324f")
	}
	return t.Black
}

// PanelFg returns the text colour of the panels.
func PanelFg() color.Color {
	return TaskbarFg()
}

// PanelAccent returns the selection colour inside panels.
func PanelAccent() color.Color {
	t := Current()
	if t == nil {
		return aeroHighlight
	}
	return t.BrightBlue
}

// NotificationError returns the color for error notifications.
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return aeroSkyBottom
	}
	return t.Blue
}

// NotificationBg returns the background color for notifications.
func NotificationBg() color.Color {
	return PanelBg()
}

// NotificationFg returns the foreground color for notifications.
func NotificationFg() color.Color {
	return PanelFg()
}

// LogViewerTitle returns the color for log viewer titles.
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

// LogViewerError returns the color for error messages in the log viewer.
func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

// LogViewerWarn returns the color for warning messages in the log viewer.
func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

// LogViewerInfo returns the color for info messages in the log viewer.
func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

// LogViewerBg returns the background color for the log viewer.
func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// Swatch returns the colours shown for t by `aerodesk themes`.
func Swatch(t *tint.Tint) []color.Color {
	return []color.Color{t.Bg, t.Fg, t.Red, t.Green, t.Yellow, t.Blue, t.Purple, t.Cyan}
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
