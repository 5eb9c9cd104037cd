package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/aerodesk/aerodesk/internal/config"
)

// TickerMsg is the periodic clock tick. It redraws the clock and expires
// notifications.
type TickerMsg time.Time

// AnimationMsg drives restore animations, one frame per message.
type AnimationMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows Update to delegate to the input package without an import cycle.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

// inputHandler is set by the main package before the program starts.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// ClockTickCmd schedules the next clock tick.
func ClockTickCmd() tea.Cmd {
	return tea.Tick(config.ClockUpdateInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// AnimationTickCmd schedules the next animation frame.
func AnimationTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.AnimationFPS, func(t time.Time) tea.Msg {
		return AnimationMsg(t)
	})
}

// Init starts the clock and, unless the tray is hidden, the CPU/RAM sampler.
func (d *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{ClockTickCmd()}
	if !config.HideTray {
		cmds = append(cmds, SampleTrayCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the desktop state.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)

	case TickerMsg:
		d.CleanupNotifications()
		cmd = ClockTickCmd()

	case TrayMsg:
		d.applyTray(msg)
		if !config.HideTray {
			cmd = TrayTickCmd()
		}

	case AnimationMsg:
		if d.UpdateAnimations(d.now()) {
			return d, AnimationTickCmd()
		}
		d.animating = false
		return d, nil

	default:
		if inputHandler == nil {
			return d, nil
		}
		var model tea.Model
		model, cmd = inputHandler(msg, d)
		if model != d {
			return model, cmd
		}
	}

	if len(d.Animations) > 0 && !d.animating {
		d.animating = true
		cmd = tea.Batch(cmd, AnimationTickCmd())
	}
	return d, cmd
}
