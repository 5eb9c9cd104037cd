// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// DefaultWindowWidth is the default width for new windows
	DefaultWindowWidth = 56

	// DefaultWindowHeight is the default height for new windows
	DefaultWindowHeight = 16

	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 24

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 6

	// MaxSquareSide caps the side of full-square windows (the arcade)
	MaxSquareSide = 40
)

// =============================================================================
// Placement
// =============================================================================

const (
	// CascadeOriginX is the column of the first window
	CascadeOriginX = 4

	// CascadeOriginY is the row of the first window
	CascadeOriginY = 2

	// CascadeStepX is the horizontal cascade offset per open window
	CascadeStepX = 3

	// CascadeStepY is the vertical cascade offset per open window
	CascadeStepY = 1

	// MobileBreakpoint is the viewport width below which windows use the narrow layout
	MobileBreakpoint = 70

	// MobileMargin surrounds windows in the narrow layout
	MobileMargin = 1
)

// =============================================================================
// Desktop Icons
// =============================================================================

const (
	// IconCellWidth is the width of one icon grid cell
	IconCellWidth = 12

	// IconCellHeight is the height of one icon grid cell
	IconCellHeight = 4

	// IconOriginX is the column of grid cell (0,0)
	IconOriginX = 2

	// IconOriginY is the row of grid cell (0,0)
	IconOriginY = 1

	// IconClickThreshold is the displacement below which an icon press is a click
	IconClickThreshold = 1

	// IconMoveThreshold is the displacement from which an icon press is a move
	IconMoveThreshold = 2
)

// =============================================================================
// Animation
// =============================================================================

const (
	// NormalFPS is the renderer frame rate
	NormalFPS = 60

	// AnimationFPS is the frame rate of restore animations
	AnimationFPS = 60

	// SpringFrequency is the angular frequency of the restore spring
	SpringFrequency = 9.0

	// SpringDamping is the damping ratio of the restore spring
	SpringDamping = 0.85

	// AnimationSettleDistance is how close (in cells) an animation must be to stop
	AnimationSettleDistance = 0.5

	// MaxAnimationDuration bounds a restore animation regardless of the spring
	MaxAnimationDuration = 600 * time.Millisecond
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// NotificationDuration is how long notifications remain visible
	NotificationDuration = 2500 * time.Millisecond

	// TrayUpdateInterval is the interval between CPU/RAM samples
	TrayUpdateInterval = 2 * time.Second

	// ClockUpdateInterval is the interval between clock redraws
	ClockUpdateInterval = time.Second

	// ServerShutdownTimeout bounds graceful shutdown of the SSH and web servers
	ServerShutdownTimeout = 5 * time.Second
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// TaskbarHeight is the number of rows reserved for the taskbar
	TaskbarHeight = 1

	// TaskbarEntryWidth is the width of one taskbar button
	TaskbarEntryWidth = 16

	// PanelWidth is the width of the search and power panels
	PanelWidth = 36

	// SearchPanelHeight is the height of the search panel
	SearchPanelHeight = 12

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 48

	// NotificationMargin is the margin from screen edge for notifications
	NotificationMargin = 2

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3

	// MaxTitleLength is the maximum length of a window title in the title bar
	MaxTitleLength = 32
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexWallpaper is the z-index of the desktop background
	ZIndexWallpaper = 0

	// ZIndexIcons is the z-index of the desktop icons
	ZIndexIcons = 1

	// ZIndexWindowBase is added to a window's stacking order
	ZIndexWindowBase = 10

	// ZIndexTaskbar is the z-index of the taskbar
	ZIndexTaskbar = 100000

	// ZIndexPanel is the z-index of the search and power panels
	ZIndexPanel = 100001

	// ZIndexHelp is the z-index of the keybinding help overlay
	ZIndexHelp = 100002

	// ZIndexLogs is the z-index of the log viewer overlay
	ZIndexLogs = 100003

	// ZIndexNotifications is the z-index for notifications
	ZIndexNotifications = 100004
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the maximum number of log messages to keep in memory
	MaxLogMessages = 200

	// MaxShellHistory is the number of commands the terminal window remembers
	MaxShellHistory = 50

	// MaxShellScrollback is the number of output lines the terminal window keeps
	MaxShellScrollback = 500

	// MaxSearchQuery is the longest search query accepted
	MaxSearchQuery = 40

	// MaxIconShortcuts is the number of icons reachable through open_icon_N bindings
	MaxIconShortcuts = 9
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultHost is the default listen host for the SSH and web servers
	DefaultHost = "localhost"

	// DefaultSSHPort is the default SSH server port
	DefaultSSHPort = "2222"

	// DefaultWebPort is the default web terminal port
	DefaultWebPort = "7681"

	// DefaultTerminalWidth is the fallback terminal width when screen size unknown
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback terminal height when screen size unknown
	DefaultTerminalHeight = 24
)

// =============================================================================
// Glyphs
// =============================================================================

const (
	// ButtonMinimize is the minimize button in the title bar
	ButtonMinimize = " _ "
	// ButtonMaximize is the full screen button in the title bar
	ButtonMaximize = " □ "
	// ButtonRestore replaces ButtonMaximize while a window is full screen
	ButtonRestore = " ❐ "
	// ButtonClose is the close button in the title bar
	ButtonClose = " × "

	// StartButton is the label of the start (search) button
	StartButton = " ⊞ Start "
	// PowerButton is the label of the power button
	PowerButton = " ⏻ "
	// SearchPrompt prefixes the search query
	SearchPrompt = "⌕ "
	// MinimizedMarker prefixes minimized taskbar entries
	MinimizedMarker = "▁"
	// ActiveMarker prefixes the active taskbar entry
	ActiveMarker = "▶"
)

const (
	// ButtonMinimizeASCII is the ASCII fallback for ButtonMinimize
	ButtonMinimizeASCII = " _ "
	// ButtonMaximizeASCII is the ASCII fallback for ButtonMaximize
	ButtonMaximizeASCII = " ^ "
	// ButtonRestoreASCII is the ASCII fallback for ButtonRestore
	ButtonRestoreASCII = " v "
	// ButtonCloseASCII is the ASCII fallback for ButtonClose
	ButtonCloseASCII = " x "

	// StartButtonASCII is the ASCII fallback for StartButton
	StartButtonASCII = " [Start] "
	// PowerButtonASCII is the ASCII fallback for PowerButton
	PowerButtonASCII = " (o) "
	// SearchPromptASCII is the ASCII fallback for SearchPrompt
	SearchPromptASCII = "> "
	// MinimizedMarkerASCII is the ASCII fallback for MinimizedMarker
	MinimizedMarkerASCII = "_"
	// ActiveMarkerASCII is the ASCII fallback for ActiveMarker
	ActiveMarkerASCII = "*"
)

// NotificationIcon* prefix notifications by severity.
const (
	NotificationIconError   = "[X]"
	NotificationIconWarning = "[!]"
	NotificationIconSuccess = "[OK]"
	NotificationIconInfo    = "[i]"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters instead of Unicode glyphs
// Set via --ascii-only command-line flag
var UseASCIIOnly = false

// AnimationsEnabled controls whether UI animations are enabled
// Set via --no-animations flag or appearance.animations_enabled config
var AnimationsEnabled = true

// BorderStyle controls which border style to use for windows
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// TaskbarPosition controls where the taskbar is drawn: bottom or top
// Set via --taskbar-position flag or appearance.taskbar_position config
var TaskbarPosition = "bottom"

// HideWindowButtons controls whether to hide window control buttons
// Set via --hide-window-buttons flag or appearance.hide_window_buttons config
var HideWindowButtons = false

// HideClock controls whether the taskbar clock is hidden
var HideClock = false

// HideTray controls whether the CPU/RAM tray is hidden
var HideTray = false

// Wallpaper selects the desktop background pattern: aero, plain or dots
var Wallpaper = "aero"

// GetButtonMinimize returns the minimize button glyph
func GetButtonMinimize() string {
	if UseASCIIOnly {
		return ButtonMinimizeASCII
	}
	return ButtonMinimize
}

// GetButtonMaximize returns the full screen button glyph
func GetButtonMaximize(fullScreen bool) string {
	switch {
	case UseASCIIOnly && fullScreen:
		return ButtonRestoreASCII
	case UseASCIIOnly:
		return ButtonMaximizeASCII
	case fullScreen:
		return ButtonRestore
	default:
		return ButtonMaximize
	}
}

// GetButtonClose returns the close button glyph
func GetButtonClose() string {
	if UseASCIIOnly {
		return ButtonCloseASCII
	}
	return ButtonClose
}

// GetStartButton returns the start button label
func GetStartButton() string {
	if UseASCIIOnly {
		return StartButtonASCII
	}
	return StartButton
}

// GetPowerButton returns the power button label
func GetPowerButton() string {
	if UseASCIIOnly {
		return PowerButtonASCII
	}
	return PowerButton
}

// GetSearchPrompt returns the search prompt
func GetSearchPrompt() string {
	if UseASCIIOnly {
		return SearchPromptASCII
	}
	return SearchPrompt
}

// GetMinimizedMarker returns the marker for minimized taskbar entries
func GetMinimizedMarker() string {
	if UseASCIIOnly {
		return MinimizedMarkerASCII
	}
	return MinimizedMarker
}

// GetActiveMarker returns the marker for the active taskbar entry
func GetActiveMarker() string {
	if UseASCIIOnly {
		return ActiveMarkerASCII
	}
	return ActiveMarker
}

// ValidBorderStyles lists the accepted appearance.border_style values.
var ValidBorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// TaskbarOnTop reports whether the taskbar occupies the first row.
func TaskbarOnTop() bool {
	return TaskbarPosition == "top"
}
