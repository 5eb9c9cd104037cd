package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/wm"
)

// Region is the part of a window under the pointer.
type Region int

const (
	// RegionNone is outside the window.
	RegionNone Region = iota
	// RegionBody is the content area.
	RegionBody
	// RegionTitle is the title bar outside the buttons.
	RegionTitle
	// RegionBorder is one of the eight resize affordances.
	RegionBorder
	// RegionMinimize is the minimize button.
	RegionMinimize
	// RegionMaximize is the full screen button.
	RegionMaximize
	// RegionClose is the close button.
	RegionClose
)

func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionTitle:
		return "title"
	case RegionBorder:
		return "border"
	case RegionMinimize:
		return "minimize"
	case RegionMaximize:
		return "maximize"
	case RegionClose:
		return "close"
	default:
		return "none"
	}
}

// Window chrome, in rows from the window's top edge: the top border, then
// the title bar, then the body, then the bottom border.
const (
	titleRow    = 1
	bodyRow     = 2
	chromeRows  = 3
	buttonWidth = 3
)

// BodySize returns the content area of a window of the given outer size.
func BodySize(outer wm.Size) wm.Size {
	return wm.Size{Width: max(outer.Width-2, 0), Height: max(outer.Height-chromeRows, 0)}
}

// ChromeAt classifies p, relative to the top-left corner of a window of the
// given size. The outermost ring of cells holds the resize affordances; the
// title bar ends in the minimize, full screen and close buttons when buttons
// is set.
func ChromeAt(size wm.Size, p wm.Point, buttons bool) (Region, wm.Direction) {
	if p.X < 0 || p.Y < 0 || p.X >= size.Width || p.Y >= size.Height {
		return RegionNone, 0
	}

	var dir wm.Direction
	if p.Y == 0 {
		dir |= wm.DirN
	} else if p.Y == size.Height-1 {
		dir |= wm.DirS
	}
	if p.X == 0 {
		dir |= wm.DirW
	} else if p.X == size.Width-1 {
		dir |= wm.DirE
	}
	if dir != 0 {
		return RegionBorder, dir
	}

	if p.Y != titleRow {
		return RegionBody, 0
	}
	if buttons {
		right := size.Width - 1
		switch {
		case p.X >= right-buttonWidth:
			return RegionClose, 0
		case p.X >= right-2*buttonWidth:
			return RegionMaximize, 0
		case p.X >= right-3*buttonWidth:
			return RegionMinimize, 0
		}
	}
	return RegionTitle, 0
}

// Hit is the result of hit testing the windows.
type Hit struct {
	Window string
	Region Region
	Dir    wm.Direction
}

// ContentOrigin returns the screen position of the content area's top-left
// corner.
func (d *Desktop) ContentOrigin() wm.Point {
	return wm.Point{Y: d.Registry.Viewport().TopInset}
}

// ToContent converts a screen point to content coordinates.
func (d *Desktop) ToContent(p wm.Point) wm.Point {
	return p.Sub(d.ContentOrigin())
}

// ToScreen converts a content point to screen coordinates.
func (d *Desktop) ToScreen(p wm.Point) wm.Point {
	return p.Add(d.ContentOrigin())
}

// InContent reports whether the screen point lies in the content area.
func (d *Desktop) InContent(p wm.Point) bool {
	return d.Registry.Viewport().ContentRect().Contains(d.ToContent(p))
}

// HitWindow returns the topmost window under the screen point p and the part
// of it that was hit. Borders of windows that cannot be resized count as body.
func (d *Desktop) HitWindow(p wm.Point) (Hit, bool) {
	if !d.InContent(p) {
		return Hit{}, false
	}
	cp := d.ToContent(p)
	id, ok := d.Registry.TopAt(cp)
	if !ok {
		return Hit{}, false
	}
	w, _ := d.Registry.Get(id)
	b, _ := d.Registry.Bounds(id)

	region, dir := ChromeAt(b.Size, cp.Sub(b.Min), !config.HideWindowButtons)
	if region == RegionBorder && !w.Resizable() {
		region, dir = RegionBody, 0
	}
	return Hit{Window: id, Region: region, Dir: dir}, true
}

// TaskbarItemKind identifies a taskbar element.
type TaskbarItemKind int

const (
	// TaskbarStart is the start button; it opens the search panel.
	TaskbarStart TaskbarItemKind = iota + 1
	// TaskbarEntry is a window button.
	TaskbarEntry
	// TaskbarTray is the CPU/RAM and clock area.
	TaskbarTray
	// TaskbarPower is the power button.
	TaskbarPower
)

// TaskbarItem is one element of the taskbar, with its column span.
type TaskbarItem struct {
	Kind  TaskbarItemKind
	Entry wm.Entry
	X     int
	Width int
	Text  string
}

// TaskbarRow returns the screen row of the taskbar.
func (d *Desktop) TaskbarRow() int {
	if config.TaskbarOnTop() {
		return 0
	}
	return d.Height - config.TaskbarHeight
}

// TrayText returns the tray contents, or "" when both the tray and the
// clock are hidden.
func (d *Desktop) TrayText() string {
	var parts []string
	if !config.HideTray {
		parts = append(parts, fmt.Sprintf("CPU %3.0f%%  RAM %3.0f%%", d.CPUPercent, d.RAMPercent))
	}
	if !config.HideClock {
		parts = append(parts, d.now().Format("15:04"))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// TaskbarItems lays out the taskbar left to right: start button, window
// entries, tray and power button. Entries that do not fit are left out.
func (d *Desktop) TaskbarItems() []TaskbarItem {
	start := config.GetStartButton()
	power := config.GetPowerButton()
	tray := d.TrayText()

	items := []TaskbarItem{{Kind: TaskbarStart, X: 0, Width: ansi.StringWidth(start), Text: start}}

	right := d.Width - ansi.StringWidth(power)
	items = append(items, TaskbarItem{Kind: TaskbarPower, X: right, Width: ansi.StringWidth(power), Text: power})
	if tray != "" {
		tw := ansi.StringWidth(tray)
		right -= tw
		items = append(items, TaskbarItem{Kind: TaskbarTray, X: right, Width: tw, Text: tray})
	}

	x := items[0].Width + 1
	for _, e := range d.Taskbar.Entries() {
		if x+config.TaskbarEntryWidth > right {
			break
		}
		items = append(items, TaskbarItem{Kind: TaskbarEntry, Entry: e, X: x, Width: config.TaskbarEntryWidth})
		x += config.TaskbarEntryWidth + 1
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].X < items[j].X })
	return items
}

// TaskbarHit returns the taskbar element at column x.
func (d *Desktop) TaskbarHit(x int) (TaskbarItem, bool) {
	for _, it := range d.TaskbarItems() {
		if x >= it.X && x < it.X+it.Width {
			return it, true
		}
	}
	return TaskbarItem{}, false
}

// entryRect returns the screen rectangle of the taskbar entry for id.
func (d *Desktop) entryRect(id string) (wm.Rect, bool) {
	for _, it := range d.TaskbarItems() {
		if it.Kind == TaskbarEntry && it.Entry.ID == id {
			return wm.Rect{
				Min:  wm.Point{X: it.X, Y: d.TaskbarRow()},
				Size: wm.Size{Width: it.Width, Height: config.TaskbarHeight},
			}, true
		}
	}
	return wm.Rect{}, false
}

// PowerItems are the entries of the power panel.
var PowerItems = []string{"Restart", "Shut down"}

// Panel rows: border, prompt, separator, then results.
const searchResultRow = 3

// PanelRect returns the screen rectangle of the open taskbar panel. Panels
// hang off the taskbar: the search panel under the start button, the power
// panel under the power button.
func (d *Desktop) PanelRect() (wm.Rect, bool) {
	var size wm.Size
	var x int
	contentH := d.Registry.Viewport().ContentHeight()

	switch d.Taskbar.Panel() {
	case wm.PanelSearch:
		size = wm.Size{Width: min(config.PanelWidth, d.Width), Height: min(config.SearchPanelHeight, contentH)}
	case wm.PanelPower:
		size = wm.Size{Width: min(config.PanelWidth/2, d.Width), Height: min(len(PowerItems)+2, contentH)}
		x = d.Width - size.Width
	default:
		return wm.Rect{}, false
	}

	y := config.TaskbarHeight
	if !config.TaskbarOnTop() {
		y = d.TaskbarRow() - size.Height
	}
	return wm.Rect{Min: wm.Point{X: x, Y: y}, Size: size}, true
}

// SearchResults returns the results that fit in the search panel.
func (d *Desktop) SearchResults() []content.SearchResult {
	rect, ok := d.PanelRect()
	if !ok || d.Taskbar.Panel() != wm.PanelSearch {
		return nil
	}
	res := d.Catalog.Search(d.SearchQuery)
	rows := max(rect.Size.Height-searchResultRow-1, 0)
	if len(res) > rows {
		res = res[:rows]
	}
	return res
}

// PanelItemAt returns the index of the panel item under the screen point p:
// a search result or a power menu entry.
func (d *Desktop) PanelItemAt(p wm.Point) (int, bool) {
	rect, ok := d.PanelRect()
	if !ok || !rect.Contains(p) {
		return 0, false
	}
	row := p.Y - rect.Min.Y

	switch d.Taskbar.Panel() {
	case wm.PanelSearch:
		i := row - searchResultRow
		if i >= 0 && i < len(d.SearchResults()) {
			return i, true
		}
	case wm.PanelPower:
		i := row - 1
		if i >= 0 && i < len(PowerItems) {
			return i, true
		}
	}
	return 0, false
}

// ToggleSearch opens or closes the search panel with an empty query.
func (d *Desktop) ToggleSearch() {
	d.SearchQuery = ""
	d.SearchSelection = 0
	d.Taskbar.Toggle(wm.PanelSearch)
}

// TogglePower opens or closes the power panel.
func (d *Desktop) TogglePower() {
	d.PowerSelection = 0
	d.Taskbar.Toggle(wm.PanelPower)
}
