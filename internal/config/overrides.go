package config

import (
	"charm.land/log/v2"

	"github.com/aerodesk/aerodesk/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Unicode glyphs
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// TaskbarPosition overrides the taskbar position
	TaskbarPosition string

	// HideWindowButtons overrides hiding window control buttons
	HideWindowButtons bool

	// HideClock overrides hiding the clock
	HideClock bool

	// NoAnimations disables UI animations
	NoAnimations bool

	// ThemeName is the theme to load
	ThemeName string

	// ContentFile replaces the built-in desktop catalog
	ContentFile string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if overrides.TaskbarPosition != "" {
		TaskbarPosition = overrides.TaskbarPosition
	} else if userConfig != nil && userConfig.Appearance.TaskbarPosition != "" {
		TaskbarPosition = userConfig.Appearance.TaskbarPosition
	}

	// OR of CLI flag and user config
	if userConfig != nil {
		HideWindowButtons = overrides.HideWindowButtons || userConfig.Appearance.HideWindowButtons
		HideClock = overrides.HideClock || userConfig.Appearance.HideClock
		HideTray = userConfig.Appearance.HideTray
	} else {
		HideWindowButtons = overrides.HideWindowButtons
		HideClock = overrides.HideClock
	}

	if userConfig != nil && userConfig.Appearance.Wallpaper != "" {
		Wallpaper = userConfig.Appearance.Wallpaper
	}

	if userConfig != nil {
		AnimationsEnabled = userConfig.AnimationsOn()
	}
	if overrides.NoAnimations {
		AnimationsEnabled = false
	}

	if overrides.ContentFile != "" && userConfig != nil {
		userConfig.Desktop.ContentFile = overrides.ContentFile
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil {
		themeName = userConfig.Appearance.Theme
	}
	if err := theme.Initialize(themeName); err != nil {
		log.Warn("failed to load theme", "theme", themeName, "err", err)
	}
}
