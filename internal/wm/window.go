package wm

// Mode is the visibility state of a window. Minimized and full screen are
// mutually exclusive.
type Mode int

const (
	// ModeNormal is a visible window at its own geometry.
	ModeNormal Mode = iota
	// ModeMinimized windows are kept in the registry but not drawn.
	ModeMinimized
	// ModeFullScreen windows fill the viewport content area.
	ModeFullScreen
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMinimized:
		return "minimized"
	case ModeFullScreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Window is the session-lifetime record of one open window.
type Window struct {
	ID       string
	Position Point
	Size     Size
	// Z orders windows for painting; higher paints above lower. Values are
	// unique and grow with every focus.
	Z    int
	Mode Mode
	// LastPosition holds the placement from before full screen was entered.
	LastPosition *Point
	// Mobile windows were placed with the narrow layout and cannot be
	// dragged or resized.
	Mobile bool

	opened int // open sequence, drives taskbar ordering
}

// IsMinimized reports whether the window is minimized.
func (w Window) IsMinimized() bool { return w.Mode == ModeMinimized }

// IsFullScreen reports whether the window fills the viewport.
func (w Window) IsFullScreen() bool { return w.Mode == ModeFullScreen }

// Draggable reports whether the title bar may start a drag.
func (w Window) Draggable() bool { return w.Mode == ModeNormal && !w.Mobile }

// Resizable reports whether the border affordances may start a resize.
func (w Window) Resizable() bool { return w.Mode == ModeNormal && !w.Mobile }

// Rect returns the window's own geometry, ignoring full screen.
func (w Window) Rect() Rect {
	return Rect{Min: w.Position, Size: w.Size}
}

func (w *Window) clone() Window {
	c := *w
	if w.LastPosition != nil {
		p := *w.LastPosition
		c.LastPosition = &p
	}
	return c
}
