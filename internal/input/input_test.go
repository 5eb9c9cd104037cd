package input

import (
	"io"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/wm"
)

func newDesktop(t *testing.T) *app.Desktop {
	t.Helper()
	d, err := app.New(app.Options{
		Width:      100,
		Height:     30,
		NoGreeting: true,
		Logger:     log.New(io.Discard),
		Now:        func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	return d
}

func click(d *app.Desktop, x, y int) tea.Cmd {
	_, cmd := HandleInput(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
	return cmd
}

func motion(d *app.Desktop, x, y int) {
	HandleInput(tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
}

func release(d *app.Desktop, x, y int) {
	HandleInput(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
}

func press(d *app.Desktop, key tea.KeyPressMsg) tea.Cmd {
	_, cmd := HandleInput(key, d)
	return cmd
}

func typeText(d *app.Desktop, s string) {
	for _, r := range s {
		press(d, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// iconCenter returns the screen position of the middle of icon id's cell.
func iconCenter(t *testing.T, d *app.Desktop, id string) wm.Point {
	t.Helper()
	ic, ok := d.Icons.Get(id)
	if !ok {
		t.Fatalf("no icon %q", id)
	}
	r := d.Icons.CellRect(ic.Cell)
	return d.ToScreen(wm.Point{X: r.Min.X + r.Size.Width/2, Y: r.Min.Y + 1})
}

func TestIconClickOpensWindow(t *testing.T) {
	d := newDesktop(t)
	p := iconCenter(t, d, "projects")

	click(d, p.X, p.Y)
	if d.IconPress == nil || d.IconPress.ID != "projects" {
		t.Fatalf("IconPress = %+v", d.IconPress)
	}
	release(d, p.X, p.Y)

	if d.Registry.Active() != "projects" {
		t.Errorf("active = %q, want projects", d.Registry.Active())
	}
	if d.IconPress != nil {
		t.Error("release clears the icon press")
	}
}

func TestIconGestures(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   int
		wantOpen bool
		wantCell wm.Cell
	}{
		{"click", 0, 0, true, wm.Cell{GX: 0, GY: 0}},
		{"dead band", 1, 0, false, wm.Cell{GX: 0, GY: 0}},
		{"move to free cell", 26, 0, false, wm.Cell{GX: 2, GY: 0}},
		{"move onto occupied cell", 12, 0, false, wm.Cell{GX: 0, GY: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDesktop(t)
			p := iconCenter(t, d, "about")

			click(d, p.X, p.Y)
			motion(d, p.X+tt.dx, p.Y+tt.dy)
			release(d, p.X+tt.dx, p.Y+tt.dy)

			if got := d.Registry.Has("about"); got != tt.wantOpen {
				t.Errorf("window open = %v, want %v", got, tt.wantOpen)
			}
			ic, _ := d.Icons.Get("about")
			if ic.Cell != tt.wantCell {
				t.Errorf("icon cell = %+v, want %+v", ic.Cell, tt.wantCell)
			}
		})
	}
}

func TestTitleBarDrag(t *testing.T) {
	d := newDesktop(t)
	d.Open("about") // (4,2) 56x16

	click(d, 10, 3)
	if !d.Grab.Held() {
		t.Fatal("pressing the title bar should start a drag")
	}
	motion(d, 20, 8)
	motion(d, 25, 9)
	release(d, 25, 9)

	w, _ := d.Registry.Get("about")
	if w.Position != (wm.Point{X: 19, Y: 8}) {
		t.Errorf("position = %+v, want {19 8}", w.Position)
	}
	if d.Grab != nil || d.Controller.Active() {
		t.Error("release ends the drag")
	}

	motion(d, 40, 12)
	w, _ = d.Registry.Get("about")
	if w.Position != (wm.Point{X: 19, Y: 8}) {
		t.Error("motion after release must not move the window")
	}
}

func TestDragIsNotClamped(t *testing.T) {
	d := newDesktop(t)
	d.Open("about")

	click(d, 10, 3)
	motion(d, -20, 3)
	release(d, -20, 3)

	w, _ := d.Registry.Get("about")
	if w.Position.X != -26 {
		t.Errorf("x = %d, want -26", w.Position.X)
	}
}

func TestBorderResize(t *testing.T) {
	tests := []struct {
		name     string
		from, to wm.Point
		wantPos  wm.Point
		wantSize wm.Size
	}{
		{"east", wm.Point{X: 59, Y: 10}, wm.Point{X: 64, Y: 10}, wm.Point{X: 4, Y: 2}, wm.Size{Width: 61, Height: 16}},
		{"south", wm.Point{X: 20, Y: 17}, wm.Point{X: 20, Y: 20}, wm.Point{X: 4, Y: 2}, wm.Size{Width: 56, Height: 19}},
		{"west", wm.Point{X: 4, Y: 10}, wm.Point{X: 1, Y: 10}, wm.Point{X: 1, Y: 2}, wm.Size{Width: 59, Height: 16}},
		{"north clamps", wm.Point{X: 20, Y: 2}, wm.Point{X: 20, Y: 20}, wm.Point{X: 4, Y: 12}, wm.Size{Width: 56, Height: config.MinWindowHeight}},
		{"south east corner", wm.Point{X: 59, Y: 17}, wm.Point{X: 61, Y: 18}, wm.Point{X: 4, Y: 2}, wm.Size{Width: 58, Height: 17}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDesktop(t)
			d.Open("about")

			click(d, tt.from.X, tt.from.Y)
			if d.Controller.Phase() != wm.PhaseResizing {
				t.Fatalf("phase = %v, want resizing", d.Controller.Phase())
			}
			motion(d, tt.to.X, tt.to.Y)
			release(d, tt.to.X, tt.to.Y)

			w, _ := d.Registry.Get("about")
			if w.Position != tt.wantPos || w.Size != tt.wantSize {
				t.Errorf("geometry = %+v %+v, want %+v %+v", w.Position, w.Size, tt.wantPos, tt.wantSize)
			}
		})
	}
}

func TestTitleBarButtons(t *testing.T) {
	d := newDesktop(t)
	d.Open("about") // title row y=3, right border x=59

	click(d, 50, 3) // minimize: 50..52
	if w, _ := d.Registry.Get("about"); !w.IsMinimized() {
		t.Fatal("minimize button should minimize")
	}

	d.Registry.Focus("about")
	click(d, 54, 3) // maximize: 53..55
	if w, _ := d.Registry.Get("about"); !w.IsFullScreen() {
		t.Fatal("maximize button should enter full screen")
	}

	// Full screen: the title row is content row 1 and the close button
	// ends next to the right edge.
	click(d, 98, 1)
	if d.Registry.Has("about") {
		t.Error("close button should close the window")
	}
}

func TestClickFocusesBackgroundWindow(t *testing.T) {
	d := newDesktop(t)
	d.Open("about")    // (4,2)
	d.Open("projects") // (7,3) 64x20

	click(d, 5, 10) // about's body, left of projects
	if d.Registry.Active() != "about" {
		t.Errorf("active = %q, want about", d.Registry.Active())
	}
	if d.Grab != nil {
		t.Error("body clicks do not grab")
	}
}

func TestStaleGrabReleasedOnClick(t *testing.T) {
	d := newDesktop(t)
	d.Open("about")

	click(d, 10, 3)
	stale := d.Grab
	// The release was lost; the next press starts over.
	click(d, 80, 20)
	if stale.Held() || d.Controller.Active() {
		t.Error("a new press releases the previous grab")
	}
}

func TestTaskbarEntryCycle(t *testing.T) {
	d := newDesktop(t)
	d.Open("about")
	d.Open("projects")

	var aboutX int
	for _, it := range d.TaskbarItems() {
		if it.Kind == app.TaskbarEntry && it.Entry.ID == "about" {
			aboutX = it.X
		}
	}
	row := d.TaskbarRow()

	click(d, aboutX, row)
	if d.Registry.Active() != "about" {
		t.Fatalf("background entry focuses: active = %q", d.Registry.Active())
	}
	click(d, aboutX, row)
	if w, _ := d.Registry.Get("about"); !w.IsMinimized() {
		t.Fatal("active entry minimizes")
	}
	click(d, aboutX, row)
	if w, _ := d.Registry.Get("about"); w.IsMinimized() || d.Registry.Active() != "about" {
		t.Error("minimized entry restores and focuses")
	}
}

func TestSearchPanelFlow(t *testing.T) {
	d := newDesktop(t)

	click(d, 0, d.TaskbarRow())
	if d.Taskbar.Panel() != wm.PanelSearch {
		t.Fatal("start button opens search")
	}

	typeText(d, "pro")
	if d.SearchQuery != "pro" {
		t.Errorf("query = %q", d.SearchQuery)
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyEnter})
	if d.Registry.Active() != "projects" {
		t.Errorf("active = %q, want projects", d.Registry.Active())
	}
	if d.Taskbar.Panel() != wm.PanelNone {
		t.Error("opening a result closes the panel")
	}

	press(d, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if d.Taskbar.Panel() != wm.PanelSearch || d.SearchQuery != "" {
		t.Fatalf("toggle_search reopens with an empty query: panel=%v query=%q", d.Taskbar.Panel(), d.SearchQuery)
	}
	typeText(d, "x")
	press(d, tea.KeyPressMsg{Code: tea.KeyBackspace})
	if d.SearchQuery != "" {
		t.Errorf("backspace: query = %q", d.SearchQuery)
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyDown})
	press(d, tea.KeyPressMsg{Code: tea.KeyDown})
	if d.SearchSelection != 2 {
		t.Errorf("selection = %d, want 2", d.SearchSelection)
	}

	// Clicking the desktop outside the panel dismisses it.
	click(d, 90, 5)
	if d.Taskbar.Panel() != wm.PanelNone {
		t.Error("clicking outside dismisses the panel")
	}
}

func TestSearchResultClick(t *testing.T) {
	d := newDesktop(t)
	d.ToggleSearch()
	rect, _ := d.PanelRect()

	// Third row of results with the empty query is the third icon.
	click(d, rect.Min.X+2, rect.Min.Y+5)
	if d.Registry.Active() != "experience" {
		t.Errorf("active = %q, want experience", d.Registry.Active())
	}
}

func TestPowerPanel(t *testing.T) {
	d := newDesktop(t)
	d.Open("about")

	click(d, d.Width-1, d.TaskbarRow())
	if d.Taskbar.Panel() != wm.PanelPower {
		t.Fatal("power button opens the power panel")
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyEnter})
	if d.Registry.Len() != 0 || d.Taskbar.Panel() != wm.PanelNone {
		t.Error("restart closes windows and panels")
	}

	d.TogglePower()
	press(d, tea.KeyPressMsg{Code: tea.KeyDown})
	cmd := press(d, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("shut down should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("shut down should return tea.Quit")
	}
}

func TestTerminalTyping(t *testing.T) {
	d := newDesktop(t)
	d.Open("terminal")
	sh := d.Shells["terminal"]

	typeText(d, "echo hi")
	press(d, tea.KeyPressMsg{Code: tea.KeyLeft})
	press(d, tea.KeyPressMsg{Code: tea.KeyBackspace})
	if sh.Input() != "echo i" {
		t.Fatalf("input = %q", sh.Input())
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyEnd})
	press(d, tea.KeyPressMsg{Code: tea.KeyEnter})

	sb := sh.Scrollback()
	if len(sb) == 0 || sb[len(sb)-1] != "i" {
		t.Errorf("scrollback tail = %q", sb)
	}

	press(d, tea.KeyPressMsg{Code: tea.KeyUp})
	if sh.Input() != "echo i" {
		t.Errorf("history recall = %q", sh.Input())
	}
	press(d, tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl})
	if sh.Input() != "" {
		t.Errorf("ctrl+u = %q", sh.Input())
	}

	HandleInput(tea.PasteMsg{Content: "open\nabout"}, d)
	press(d, tea.KeyPressMsg{Code: tea.KeyEnter})
	if d.Registry.Active() != "about" {
		t.Errorf("active = %q, want about", d.Registry.Active())
	}
}

func TestWindowKeybindings(t *testing.T) {
	d := newDesktop(t)
	d.Open("about")

	press(d, tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModAlt})
	press(d, tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModAlt})
	w, _ := d.Registry.Get("about")
	if w.Position != (wm.Point{X: 6, Y: 3}) {
		t.Errorf("position = %+v", w.Position)
	}

	press(d, tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModAlt | tea.ModShift})
	w, _ = d.Registry.Get("about")
	if w.Size.Width != 58 {
		t.Errorf("width = %d", w.Size.Width)
	}

	press(d, tea.KeyPressMsg{Code: tea.KeyF11})
	if w, _ := d.Registry.Get("about"); !w.IsFullScreen() {
		t.Fatal("f11 enters full screen")
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModAlt})
	press(d, tea.KeyPressMsg{Code: tea.KeyF11})
	if w, _ := d.Registry.Get("about"); w.Position != (wm.Point{X: 6, Y: 3}) {
		t.Errorf("full screen windows do not move: %+v", w.Position)
	}

	press(d, tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl})
	if d.Registry.Has("about") {
		t.Error("ctrl+w closes")
	}
}

func TestIconShortcut(t *testing.T) {
	d := newDesktop(t)
	press(d, tea.KeyPressMsg{Code: '2', Mod: tea.ModAlt})
	if d.Registry.Active() != "projects" {
		t.Errorf("alt+2 opens the second icon: active = %q", d.Registry.Active())
	}
}

func TestKonamiCode(t *testing.T) {
	d := newDesktop(t)
	keys := []tea.KeyPressMsg{
		{Code: tea.KeyUp}, {Code: tea.KeyUp},
		{Code: tea.KeyDown}, {Code: tea.KeyDown},
		{Code: tea.KeyLeft}, {Code: tea.KeyRight},
		{Code: tea.KeyLeft}, {Code: tea.KeyRight},
		{Code: 'b', Text: "b"}, {Code: 'a', Text: "a"},
	}
	for _, k := range keys {
		press(d, k)
	}
	if d.Registry.Active() != "secret" {
		t.Errorf("active = %q, want secret", d.Registry.Active())
	}
}

func TestOverlaysCaptureKeys(t *testing.T) {
	d := newDesktop(t)

	press(d, tea.KeyPressMsg{Code: tea.KeyF1})
	if !d.ShowHelp {
		t.Fatal("f1 opens help")
	}
	press(d, tea.KeyPressMsg{Code: '2', Mod: tea.ModAlt})
	if d.Registry.Len() != 0 {
		t.Error("help swallows other keys")
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyEscape})
	if d.ShowHelp {
		t.Error("esc closes help")
	}

	press(d, tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if !d.ShowLogs {
		t.Fatal("ctrl+l opens the log viewer")
	}
	press(d, tea.KeyPressMsg{Code: tea.KeyEscape})
	if d.ShowLogs {
		t.Error("esc closes the log viewer")
	}

	cmd := press(d, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c quits")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestMotionFilter(t *testing.T) {
	d := newDesktop(t)
	move := tea.MouseMotionMsg{X: 20, Y: 10}

	if MotionFilter(d, move) != nil {
		t.Error("idle motion is dropped")
	}
	if MotionFilter(d, tea.KeyPressMsg{Code: 'a'}) == nil {
		t.Error("other messages pass")
	}

	p := iconCenter(t, d, "skills")
	click(d, p.X, p.Y)
	if MotionFilter(d, move) == nil {
		t.Error("motion passes during an icon press")
	}
	release(d, p.X+1, p.Y)

	d.Open("about")
	click(d, 10, 3)
	if MotionFilter(d, move) == nil {
		t.Error("motion passes during a drag")
	}
	release(d, 10, 3)
	if MotionFilter(d, move) != nil {
		t.Error("motion is dropped again after release")
	}
}
