package input

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/wm"
)

// HandleKeyPress handles all keyboard input. Every key feeds the easter egg
// first; then system bindings, overlays, the open panel, the active terminal
// window, window bindings and desktop bindings get a chance, in that order.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	key := msg.String()

	if d.FeedEasterEgg(key) {
		return d, nil
	}

	switch d.Keybinds.Action(key) {
	case config.ActionQuit:
		d.LogInfo("Quit requested")
		return d, tea.Quit
	case config.ActionToggleLogs:
		d.ShowLogs = !d.ShowLogs
		if d.ShowLogs {
			d.ScrollLogs(len(d.LogMessages))
		}
		return d, nil
	case config.ActionToggleHelp:
		d.ShowHelp = !d.ShowHelp
		return d, nil
	}

	if d.ShowLogs {
		handleLogViewerKey(key, d)
		return d, nil
	}
	if d.ShowHelp {
		if key == "esc" || key == "q" || key == "?" {
			d.ShowHelp = false
		}
		return d, nil
	}

	switch d.Taskbar.Panel() {
	case wm.PanelSearch:
		if handled, cmd := handleSearchKey(msg, d); handled {
			return d, cmd
		}
	case wm.PanelPower:
		if handled, cmd := handlePowerKey(key, d); handled {
			return d, cmd
		}
	}

	if sh, id, ok := d.ActiveShell(); ok && handleShellKey(msg, sh, id, d) {
		return d, nil
	}

	if handleWindowAction(d.Keybinds.Action(key), d) {
		return d, nil
	}

	handleDesktopAction(d.Keybinds.Action(key), d)
	return d, nil
}

func handleLogViewerKey(key string, d *app.Desktop) {
	switch key {
	case "esc", "q":
		d.ShowLogs = false
	case "up", "k":
		d.ScrollLogs(-1)
	case "down", "j":
		d.ScrollLogs(1)
	case "pgup":
		d.ScrollLogs(-10)
	case "pgdown":
		d.ScrollLogs(10)
	case "home", "g":
		d.ScrollLogs(-len(d.LogMessages))
	case "end", "G":
		d.ScrollLogs(len(d.LogMessages))
	}
}

// isText reports whether msg inserts printable text.
func isText(msg tea.KeyPressMsg) bool {
	return msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0
}

func handleSearchKey(msg tea.KeyPressMsg, d *app.Desktop) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.Taskbar.Dismiss()
		return true, nil
	case "enter":
		_, cmd := activatePanelItem(d.SearchSelection, d)
		return true, cmd
	case "up":
		moveSelection(&d.SearchSelection, -1, len(d.SearchResults()))
		return true, nil
	case "down":
		moveSelection(&d.SearchSelection, 1, len(d.SearchResults()))
		return true, nil
	case "backspace":
		if r := []rune(d.SearchQuery); len(r) > 0 {
			d.SearchQuery = string(r[:len(r)-1])
		}
		d.SearchSelection = 0
		return true, nil
	}

	if isText(msg) {
		if len([]rune(d.SearchQuery+msg.Text)) <= config.MaxSearchQuery {
			d.SearchQuery += msg.Text
		}
		d.SearchSelection = 0
		return true, nil
	}
	return false, nil
}

func handlePowerKey(key string, d *app.Desktop) (bool, tea.Cmd) {
	switch key {
	case "esc":
		d.Taskbar.Dismiss()
		return true, nil
	case "enter":
		_, cmd := activatePanelItem(d.PowerSelection, d)
		return true, cmd
	case "up":
		moveSelection(&d.PowerSelection, -1, len(app.PowerItems))
		return true, nil
	case "down":
		moveSelection(&d.PowerSelection, 1, len(app.PowerItems))
		return true, nil
	}
	return false, nil
}

// handleShellKey edits the input line of the active terminal window.
func handleShellKey(msg tea.KeyPressMsg, sh *content.Shell, id string, d *app.Desktop) bool {
	switch msg.String() {
	case "enter":
		d.SubmitShell(id)
	case "backspace":
		sh.Backspace()
	case "delete":
		sh.Delete()
	case "left":
		sh.Left()
	case "right":
		sh.Right()
	case "home", "ctrl+a":
		sh.Home()
	case "end", "ctrl+e":
		sh.End()
	case "up":
		sh.HistoryPrev()
	case "down":
		sh.HistoryNext()
	case "ctrl+u":
		sh.KillLine()
	default:
		if !isText(msg) {
			return false
		}
		sh.Insert(msg.Text)
	}
	return true
}

func handlePaste(text string, d *app.Desktop) {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(text)
	switch {
	case d.Taskbar.Panel() == wm.PanelSearch:
		r := []rune(d.SearchQuery + text)
		d.SearchQuery = string(r[:min(len(r), config.MaxSearchQuery)])
		d.SearchSelection = 0
	default:
		if sh, _, ok := d.ActiveShell(); ok {
			sh.Insert(text)
		}
	}
}

// handleWindowAction applies a window binding to the active window.
func handleWindowAction(action string, d *app.Desktop) bool {
	switch action {
	case config.ActionNextWindow:
		d.CycleWindows(true)
		return true
	case config.ActionPrevWindow:
		d.CycleWindows(false)
		return true
	}

	id := d.Registry.Active()
	w, ok := d.Registry.Get(id)
	if !ok {
		return false
	}

	switch action {
	case config.ActionCloseWindow:
		d.Close(id)
	case config.ActionMinimizeWindow:
		d.Registry.Minimize(id)
	case config.ActionToggleFullScreen:
		d.Registry.ToggleFullScreen(id)
	case config.ActionMoveLeft, config.ActionMoveRight, config.ActionMoveUp, config.ActionMoveDown:
		if !w.Draggable() {
			return true
		}
		step := map[string]wm.Point{
			config.ActionMoveLeft:  {X: -2},
			config.ActionMoveRight: {X: 2},
			config.ActionMoveUp:    {Y: -1},
			config.ActionMoveDown:  {Y: 1},
		}[action]
		p := w.Position.Add(step)
		d.Registry.Move(id, p.X, p.Y)
	case config.ActionGrowWidth, config.ActionShrinkWidth, config.ActionGrowHeight, config.ActionShrinkHeight:
		if !w.Resizable() {
			return true
		}
		size := w.Size
		switch action {
		case config.ActionGrowWidth:
			size.Width += 2
		case config.ActionShrinkWidth:
			size.Width -= 2
		case config.ActionGrowHeight:
			size.Height++
		case config.ActionShrinkHeight:
			size.Height--
		}
		d.Registry.Resize(id, size.Width, size.Height)
	default:
		return false
	}
	return true
}

func handleDesktopAction(action string, d *app.Desktop) {
	switch action {
	case config.ActionToggleSearch:
		d.ToggleSearch()
	case config.ActionTogglePower:
		d.TogglePower()
	case config.ActionDismiss:
		d.Taskbar.Dismiss()
	default:
		if i, ok := config.IconIndex(action); ok {
			if icons := d.Icons.Icons(); i < len(icons) {
				d.Open(icons[i].ID)
			}
		}
	}
}
