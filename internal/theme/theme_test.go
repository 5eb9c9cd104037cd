package theme

import (
	"image/color"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestAeroPaletteWithoutTheme(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("empty theme name should select the Aero palette")
	}

	tests := []struct {
		name string
		got  color.Color
		want string
	}{
		{"wallpaper top", WallpaperTop(), "#1c4f8a"},
		{"active border", BorderActive(), "#4a86c5"},
		{"close button", ButtonClose(), "#c42b1c"},
		{"taskbar", TaskbarBg(), "#10243d"},
		{"start orb", StartButtonBg(), "#2f9e44"},
		{"active title bar", TitleBarBg(true), "#4a86c5"},
		{"inactive title bar", TitleBarBg(false), "#8aa4bf"},
	}
	for _, tt := range tests {
		if got := ColorToString(tt.got); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestColorToString(t *testing.T) {
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
	if got := ColorToString(lipgloss.Color("#A1B2C3")); got != "#a1b2c3" {
		t.Errorf("ColorToString = %s", got)
	}
}
