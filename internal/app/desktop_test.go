package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/wm"
)

// testClock is a settable clock for desktops under test.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestDesktop(t *testing.T, opts Options) (*Desktop, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)}
	if opts.Width == 0 {
		opts.Width, opts.Height = 100, 30
	}
	opts.Logger = log.New(io.Discard)
	opts.Now = clock.now
	d, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d, clock
}

func TestNewRejectsOverlappingIcons(t *testing.T) {
	cat, err := content.ParseCatalog([]byte(`
[[windows]]
id = "a"
[[windows]]
id = "b"
[[icons]]
id = "a"
[[icons]]
id = "b"
`))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	_, err = New(Options{Catalog: cat, Logger: log.New(io.Discard)})
	if !errors.Is(err, wm.ErrCellOccupied) {
		t.Fatalf("New() error = %v, want ErrCellOccupied", err)
	}
}

func TestGreetingOpensOnce(t *testing.T) {
	store := content.NewVisitStore(filepath.Join(t.TempDir(), "visits.toml"))

	first, _ := newTestDesktop(t, Options{Visits: store, Visitor: "alice"})
	if !first.Registry.Has(WelcomeID) {
		t.Fatal("welcome window should open on the first size")
	}
	c, _ := first.Resolve(WelcomeID)
	if !strings.HasPrefix(c.Body(), "Welcome to AeroDesk!") {
		t.Errorf("first greeting = %q", c.Body())
	}

	first.Close(WelcomeID)
	first.SetSize(120, 40)
	if first.Registry.Has(WelcomeID) {
		t.Error("resizing must not greet again")
	}

	again, _ := newTestDesktop(t, Options{Visits: store, Visitor: "alice"})
	c, _ = again.Resolve(WelcomeID)
	if !strings.HasPrefix(c.Body(), "Welcome back!") {
		t.Errorf("returning greeting = %q", c.Body())
	}

	other, _ := newTestDesktop(t, Options{Visits: store, Visitor: "bob"})
	c, _ = other.Resolve(WelcomeID)
	if !strings.HasPrefix(c.Body(), "Welcome to AeroDesk!") {
		t.Errorf("other visitor greeting = %q", c.Body())
	}
}

func TestGreetingWaitsForSize(t *testing.T) {
	d, err := New(Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	if d.Registry.Len() != 0 {
		t.Fatal("no window before the first size")
	}
	d.Update(tea.WindowSizeMsg{Width: 90, Height: 28})
	if d.Width != 90 || d.Height != 28 {
		t.Errorf("size = %dx%d", d.Width, d.Height)
	}
	if !d.Registry.Has(WelcomeID) {
		t.Error("welcome window should open after the first size")
	}
}

func TestOpenUnknownWarns(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	d.Open("nope")
	if d.Registry.Len() != 0 {
		t.Error("unknown ids must not open windows")
	}
	if len(d.Notifications) != 1 || d.Notifications[0].Type != "warning" {
		t.Errorf("notifications = %+v", d.Notifications)
	}
}

func TestTerminalShellLifecycle(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true, Visitor: "alice"})

	d.Open("terminal")
	sh, id, ok := d.ActiveShell()
	if !ok || id != "terminal" {
		t.Fatalf("ActiveShell() = %v, %q, %v", sh, id, ok)
	}
	if !strings.HasPrefix(sh.Prompt(), "alice@") {
		t.Errorf("prompt = %q", sh.Prompt())
	}

	sh.Insert("open projects")
	d.SubmitShell("terminal")
	if d.Registry.Active() != "projects" {
		t.Errorf("active = %q, want projects", d.Registry.Active())
	}

	d.Registry.Focus("terminal")
	sh.Insert("exit")
	d.SubmitShell("terminal")
	if d.Registry.Has("terminal") {
		t.Error("exit should close the terminal window")
	}
	if _, ok := d.Shells["terminal"]; ok {
		t.Error("shell should be dropped with its window")
	}
}

func TestCycleWindows(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	for _, id := range []string{"about", "projects", "skills"} {
		d.Open(id)
	}

	tests := []struct {
		forward bool
		want    string
	}{
		{true, "about"},
		{true, "projects"},
		{false, "about"},
		{false, "skills"},
	}
	for i, tt := range tests {
		d.CycleWindows(tt.forward)
		if got := d.Registry.Active(); got != tt.want {
			t.Errorf("step %d: active = %q, want %q", i, got, tt.want)
		}
	}

	d.Registry.Minimize("projects")
	d.Registry.Focus("about")
	d.CycleWindows(true)
	if got := d.Registry.Active(); got != "skills" {
		t.Errorf("minimized windows are skipped: active = %q", got)
	}
}

func TestEasterEgg(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})

	seq := content.KonamiCode
	for i, k := range seq {
		got := d.FeedEasterEgg(k)
		if want := i == len(seq)-1; got != want {
			t.Fatalf("key %d (%s): FeedEasterEgg() = %v", i, k, got)
		}
	}
	if !d.Registry.Has("secret") {
		t.Error("secret window should be open")
	}
	if len(d.Notifications) != 1 || d.Notifications[0].Type != "success" {
		t.Errorf("notifications = %+v", d.Notifications)
	}
}

func TestRestart(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	d.Open("about")
	d.Open("terminal")
	d.TogglePower()

	d.Restart()
	snap := d.Registry.Snapshot()
	if len(snap.Open) != 1 || snap.Open[0] != WelcomeID {
		t.Errorf("open = %v, want only the welcome window", snap.Open)
	}
	if d.Taskbar.Panel() != wm.PanelNone {
		t.Error("restart closes panels")
	}
	if len(d.Shells) != 0 {
		t.Error("restart drops shells")
	}
}

func TestLogBufferCap(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	d.LogMessages = nil
	for i := range config.MaxLogMessages + 10 {
		d.LogInfo("msg %d", i)
	}
	if len(d.LogMessages) != config.MaxLogMessages {
		t.Fatalf("len = %d", len(d.LogMessages))
	}
	if got := d.LogMessages[0].Message; got != "msg 10" {
		t.Errorf("oldest = %q", got)
	}
}

func TestScrollLogsClamps(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	d.LogMessages = nil
	for i := range 100 {
		d.LogInfo("msg %d", i)
	}
	d.ScrollLogs(-5)
	if d.LogScrollOffset != 0 {
		t.Errorf("offset = %d, want 0", d.LogScrollOffset)
	}
	d.ScrollLogs(1000)
	if d.LogScrollOffset != d.maxLogScroll() {
		t.Errorf("offset = %d, want %d", d.LogScrollOffset, d.maxLogScroll())
	}
}

func TestNotificationsExpire(t *testing.T) {
	d, clock := newTestDesktop(t, Options{NoGreeting: true})
	d.ShowNotification("short", "info", time.Second)
	d.ShowNotification("long", "error", 5*time.Second)

	clock.t = clock.t.Add(2 * time.Second)
	d.Update(TickerMsg(clock.t))

	if len(d.Notifications) != 1 || d.Notifications[0].Message != "long" {
		t.Errorf("notifications = %+v", d.Notifications)
	}
}

func TestTrayMessages(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})

	_, cmd := d.Update(TrayMsg{CPU: 12.4, RAM: 56.6})
	if !d.TrayReady || d.CPUPercent != 12.4 || d.RAMPercent != 56.6 {
		t.Errorf("tray = %v %v %v", d.TrayReady, d.CPUPercent, d.RAMPercent)
	}
	if cmd == nil {
		t.Error("a sample schedules the next one")
	}
	if got := d.TrayText(); !strings.Contains(got, "CPU  12%") || !strings.Contains(got, "RAM  57%") {
		t.Errorf("TrayText() = %q", got)
	}

	before := len(d.LogMessages)
	d.Update(TrayMsg{Err: fmt.Errorf("no counters")})
	d.Update(TrayMsg{Err: fmt.Errorf("no counters")})
	if len(d.LogMessages) != before+1 {
		t.Errorf("tray failures logged %d times, want once", len(d.LogMessages)-before)
	}
	if d.CPUPercent != 12.4 {
		t.Error("a failed sample keeps the last reading")
	}
}

func TestViewRendersDesktop(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	d.Open("about")
	d.Open("terminal")
	d.ToggleSearch()
	d.ShowNotification("hello there", "info", time.Minute)

	out := ansi.Strip(fmt.Sprint(d.GetCanvas().Render()))
	for _, want := range []string{"About Me", "Terminal", "Start", "12:00", "hello there"} {
		if !strings.Contains(out, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	_ = d.View()
}

func TestViewBeforeSize(t *testing.T) {
	d, err := New(Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	_ = d.View()
}
