// Package input routes keyboard and mouse events to the AeroDesk desktop.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
)

// ProgramOptions returns the tea.ProgramOption values a desktop runs with,
// locally or behind a server.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(MotionFilter),
	}
}

// HandleInput is the main input coordinator that routes messages to the
// keyboard and mouse handlers.
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.PasteMsg:
		handlePaste(msg.Content, d)
		return d, nil
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	}
	return d, nil
}

// MotionFilter is a tea.WithFilter function that drops pointer motion
// unless a window drag, window resize or icon press is in progress.
//
// Usage:
//
//	p := tea.NewProgram(desk, tea.WithFilter(input.MotionFilter))
func MotionFilter(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*app.Desktop)
	if !ok {
		return msg
	}
	if d.Grab.Held() || d.IconPress != nil {
		return msg
	}
	return nil
}
