package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/wm"
)

var iconGesture = wm.GestureThresholds{
	Click: config.IconClickThreshold,
	Move:  config.IconMoveThreshold,
}

// handleMouseClick handles a button press. Only the left button acts. The
// taskbar is checked first, then an open panel, then the windows from the
// top down, then the desktop icons.
func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return d, nil
	}
	p := wm.Point{X: mouse.X, Y: mouse.Y}

	// A press always starts a fresh interaction, even if the release of the
	// previous one never arrived.
	d.ReleaseGrab()
	d.IconPress = nil

	if d.ShowHelp {
		d.ShowHelp = false
		return d, nil
	}
	if d.ShowLogs {
		return d, nil
	}

	if p.Y == d.TaskbarRow() {
		return handleTaskbarClick(p.X, d)
	}

	if d.Taskbar.Panel() != wm.PanelNone {
		if i, ok := d.PanelItemAt(p); ok {
			return activatePanelItem(i, d)
		}
		if rect, _ := d.PanelRect(); rect.Contains(p) {
			return d, nil
		}
		d.Taskbar.Dismiss()
	}

	if hit, ok := d.HitWindow(p); ok {
		handleWindowClick(hit, d.ToContent(p), d)
		return d, nil
	}

	if !d.InContent(p) {
		return d, nil
	}
	cp := d.ToContent(p)
	if icon, ok := d.Icons.HitTest(cp); ok {
		d.IconPress = &app.IconPress{ID: icon.ID, Start: cp, Current: cp}
	}
	return d, nil
}

func handleWindowClick(hit app.Hit, cp wm.Point, d *app.Desktop) {
	id := hit.Window
	switch hit.Region {
	case app.RegionClose:
		d.Close(id)
	case app.RegionMaximize:
		d.Registry.Focus(id)
		d.Registry.ToggleFullScreen(id)
	case app.RegionMinimize:
		d.Registry.Minimize(id)
	case app.RegionBorder:
		if grab, ok := d.Controller.BeginResize(id, hit.Dir, cp); ok {
			d.Grab = grab
		} else {
			d.Registry.Focus(id)
		}
	case app.RegionTitle:
		if grab, ok := d.Controller.BeginDrag(id, cp); ok {
			d.Grab = grab
		} else {
			d.Registry.Focus(id)
		}
	default:
		d.Registry.Focus(id)
	}
}

func handleTaskbarClick(x int, d *app.Desktop) (tea.Model, tea.Cmd) {
	item, ok := d.TaskbarHit(x)
	if !ok {
		d.Taskbar.Dismiss()
		return d, nil
	}

	switch item.Kind {
	case app.TaskbarStart:
		d.ToggleSearch()
	case app.TaskbarPower:
		d.TogglePower()
	case app.TaskbarEntry:
		d.Taskbar.Dismiss()
		d.Taskbar.Activate(item.Entry.ID)
	case app.TaskbarTray:
		d.Taskbar.Dismiss()
	}
	return d, nil
}

// activatePanelItem runs entry i of the open panel.
func activatePanelItem(i int, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch d.Taskbar.Panel() {
	case wm.PanelSearch:
		results := d.SearchResults()
		if i < 0 || i >= len(results) {
			return d, nil
		}
		d.Taskbar.Dismiss()
		d.Open(results[i].ID)
	case wm.PanelPower:
		d.Taskbar.Dismiss()
		switch app.PowerItems[i] {
		case "Restart":
			d.Restart()
		case "Shut down":
			d.LogInfo("Shutting down")
			return d, tea.Quit
		}
	}
	return d, nil
}

// handleMouseMotion feeds the pointer to the held drag or resize, or tracks
// an icon press.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	cp := d.ToContent(wm.Point{X: mouse.X, Y: mouse.Y})

	switch {
	case d.Grab.Held():
		d.Controller.Motion(cp)
	case d.IconPress != nil:
		d.IconPress.Current = cp
	}
	return d, nil
}

// handleMouseRelease ends the current interaction. An icon press becomes a
// click, a move or nothing depending on how far the pointer travelled.
func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	end := d.ToContent(wm.Point{X: mouse.X, Y: mouse.Y})

	if d.Grab != nil {
		d.ReleaseGrab()
	}

	press := d.IconPress
	if press == nil {
		return d, nil
	}
	d.IconPress = nil

	switch wm.ClassifyGesture(press.Start, end, iconGesture) {
	case wm.GestureClick:
		d.Open(press.ID)
	case wm.GestureMove:
		cell := d.Icons.CellAt(end)
		if !d.Icons.MoveIcon(press.ID, cell.GX, cell.GY) {
			d.LogWarn("Cannot move icon %s to cell %d,%d", press.ID, cell.GX, cell.GY)
		}
	}
	return d, nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (tea.Model, tea.Cmd) {
	delta := 0
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return d, nil
	}

	switch {
	case d.ShowLogs:
		d.ScrollLogs(delta)
	case d.Taskbar.Panel() == wm.PanelSearch:
		moveSelection(&d.SearchSelection, delta, len(d.SearchResults()))
	case d.Taskbar.Panel() == wm.PanelPower:
		moveSelection(&d.PowerSelection, delta, len(app.PowerItems))
	}
	return d, nil
}

func moveSelection(sel *int, delta, n int) {
	if n == 0 {
		*sel = 0
		return
	}
	*sel = max(0, min(*sel+delta, n-1))
}
