// Package app provides the AeroDesk desktop model: window state, rendering and
// the glue between the window manager and the content catalog.
package app

import (
	"fmt"
	"slices"
	"time"

	"charm.land/log/v2"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/wm"
)

// WelcomeID is the window that shows the greeting.
const WelcomeID = "welcome"

// Options configures a Desktop.
type Options struct {
	// Config supplies window sizes and keybindings; nil uses the defaults.
	Config *config.UserConfig
	// Catalog supplies the windows and icons; nil uses the built-in one.
	Catalog *content.Catalog
	// Visitor identifies who is looking: the shell user name and the visit
	// store key. Empty means "guest".
	Visitor string
	// Visits remembers returning visitors; nil treats every visit as the first.
	Visits *content.VisitStore
	// Logger receives a copy of the in-app log; nil uses log.Default().
	Logger *log.Logger
	// Width and Height set the initial screen size. Zero waits for the first
	// tea.WindowSizeMsg.
	Width  int
	Height int
	// NoGreeting skips opening the welcome window.
	NoGreeting bool
	// Now replaces time.Now.
	Now func() time.Time
}

// IconPress is an icon gesture in progress, in content coordinates.
type IconPress struct {
	ID      string
	Start   wm.Point
	Current wm.Point
}

// Desktop is the Bubble Tea model for one AeroDesk session. It is only
// touched from the program's event loop.
type Desktop struct {
	Width  int
	Height int

	Registry   *wm.Registry
	Controller *wm.Controller
	Icons      *wm.IconGrid
	Taskbar    *wm.Taskbar
	Catalog    *content.Catalog
	Keybinds   *config.KeybindRegistry

	// Grab is held while a title bar drag or border resize is in progress.
	Grab *wm.Grab
	// IconPress is set between pressing and releasing a desktop icon.
	IconPress *IconPress

	Shells map[string]*content.Shell
	Egg    *content.SequenceMatcher

	SearchQuery     string
	SearchSelection int
	PowerSelection  int

	ShowHelp        bool
	ShowLogs        bool
	LogMessages     []LogMessage
	LogScrollOffset int
	Notifications   []Notification
	Animations      []*Animation

	CPUPercent float64
	RAMPercent float64
	TrayReady  bool

	Visitor string

	visits      *content.VisitStore
	noGreeting  bool
	greeted     bool
	welcomeText string
	animating   bool
	trayFailed  bool
	logger      *log.Logger
	now         func() time.Time
}

// New creates a desktop. It fails when the catalog's icons overlap.
func New(opts Options) (*Desktop, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = content.DefaultCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	visitor := opts.Visitor
	if visitor == "" {
		visitor = "guest"
	}

	d := &Desktop{
		Catalog:    cat,
		Keybinds:   config.NewKeybindRegistry(cfg),
		Shells:     make(map[string]*content.Shell),
		Visitor:    visitor,
		visits:     opts.Visits,
		noGreeting: opts.NoGreeting,
		logger:     logger,
		now:        now,
	}

	def := wm.Size{Width: cfg.Desktop.DefaultWidth, Height: cfg.Desktop.DefaultHeight}
	d.Registry = wm.NewRegistry(wm.Options{
		Viewport: d.viewport(),
		Limits:   wm.Limits{MinWidth: cfg.Desktop.MinWidth, MinHeight: cfg.Desktop.MinHeight},
		Placement: wm.Placement{
			Origin:           wm.Point{X: config.CascadeOriginX, Y: config.CascadeOriginY},
			Step:             wm.Point{X: config.CascadeStepX, Y: config.CascadeStepY},
			MobileBreakpoint: cfg.Desktop.MobileBreakpoint,
			MobileMargin:     config.MobileMargin,
			Policy:           cat.SizePolicy(def, config.MaxSquareSide),
		},
		OnChange: d.onChange,
	})
	d.Controller = wm.NewController(d.Registry)
	d.Taskbar = wm.NewTaskbar(d.Registry, d.Title)

	icons, err := cat.IconGrid(
		wm.Size{Width: config.IconCellWidth, Height: config.IconCellHeight},
		wm.Point{X: config.IconOriginX, Y: config.IconOriginY},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out desktop icons: %w", err)
	}
	d.Icons = icons

	if egg := cat.EasterEgg; egg.Target != "" {
		d.Egg = content.NewSequenceMatcher(egg.Sequence)
	}

	if opts.Width > 0 && opts.Height > 0 {
		d.SetSize(opts.Width, opts.Height)
	}
	return d, nil
}

// Now returns the desktop's clock reading.
func (d *Desktop) Now() time.Time { return d.now() }

// SetSize updates the screen size. The first non-empty size opens the
// welcome window.
func (d *Desktop) SetSize(width, height int) {
	d.Width, d.Height = width, height
	d.Registry.SetViewport(d.viewport())
	d.Icons.SetMobile(d.Registry.IsMobile())

	if !d.greeted && width > 0 && height > 0 {
		d.greet()
	}
}

func (d *Desktop) viewport() wm.Viewport {
	vp := wm.Viewport{Width: d.Width, Height: d.Height}
	if config.TaskbarOnTop() {
		vp.TopInset = config.TaskbarHeight
	} else {
		vp.BottomInset = config.TaskbarHeight
	}
	return vp
}

func (d *Desktop) greet() {
	d.greeted = true
	if d.noGreeting {
		return
	}

	visited := d.visits != nil && d.visits.HasVisited(d.Visitor)
	d.welcomeText = d.Catalog.GreetingText(visited)
	d.Registry.Open(WelcomeID)

	if d.visits != nil {
		if err := d.visits.MarkVisited(d.Visitor, d.now()); err != nil {
			d.LogWarn("Failed to remember visit: %v", err)
		}
	}
}

// Resolve returns the content for a window id. The catalog wins over the
// built-in welcome window.
func (d *Desktop) Resolve(id string) (content.Content, bool) {
	if c, ok := d.Catalog.Resolve(id); ok {
		return c, true
	}
	if id == WelcomeID {
		return content.NewContent("Welcome", "✱", content.KindText, d.welcomeText), true
	}
	return content.NotFound(id), false
}

// Title returns the title shown for id in title bars and the taskbar.
func (d *Desktop) Title(id string) string {
	c, _ := d.Resolve(id)
	return c.Title
}

// Open opens, focuses or restores the window for id. Unknown ids only
// produce a warning.
func (d *Desktop) Open(id string) {
	if _, ok := d.Resolve(id); !ok {
		d.ShowNotification(fmt.Sprintf("Nothing to open for %q", id), "warning", config.NotificationDuration)
		return
	}
	d.Registry.Open(id)
}

// Close removes the window for id.
func (d *Desktop) Close(id string) {
	d.Registry.Close(id)
}

// CloseAll removes every window.
func (d *Desktop) CloseAll() {
	for _, id := range d.Registry.Snapshot().Open {
		d.Registry.Close(id)
	}
}

// Restart closes every window and shows the greeting again.
func (d *Desktop) Restart() {
	d.CloseAll()
	d.Taskbar.Dismiss()
	d.LogInfo("Desktop restarted")
	d.greet()
}

// ActiveShell returns the shell of the active window when it is a terminal.
func (d *Desktop) ActiveShell() (*content.Shell, string, bool) {
	id := d.Registry.Active()
	sh, ok := d.Shells[id]
	return sh, id, ok
}

// SubmitShell runs the input line of the terminal window id and applies the
// intent of the command.
func (d *Desktop) SubmitShell(id string) {
	sh, ok := d.Shells[id]
	if !ok {
		return
	}
	res := sh.Submit()
	switch res.Intent.Kind {
	case content.IntentOpen:
		d.Open(res.Intent.Target)
	case content.IntentExit:
		d.Close(id)
	}
}

// CycleWindows focuses the next (or previous) visible window in opening
// order.
func (d *Desktop) CycleWindows(forward bool) {
	snap := d.Registry.Snapshot()
	visible := slices.DeleteFunc(slices.Clone(snap.Open), func(id string) bool {
		return snap.Minimized[id]
	})
	if len(visible) == 0 {
		return
	}

	cur := slices.Index(visible, snap.Active)
	var next int
	switch {
	case cur < 0:
		next = 0
	case forward:
		next = (cur + 1) % len(visible)
	default:
		next = (cur - 1 + len(visible)) % len(visible)
	}
	d.Registry.Focus(visible[next])
}

// FeedEasterEgg passes a key to the easter egg matcher and opens the hidden
// window when the sequence completes.
func (d *Desktop) FeedEasterEgg(key string) bool {
	if d.Egg == nil || !d.Egg.Feed(key) {
		return false
	}
	d.Open(d.Catalog.EasterEgg.Target)
	d.ShowNotification("You found a secret!", "success", config.NotificationDuration)
	return true
}

// ReleaseGrab ends any pointer interaction in progress.
func (d *Desktop) ReleaseGrab() {
	d.Grab.Release()
	d.Grab = nil
	d.Controller.Release()
}

func (d *Desktop) onChange(ev wm.Event) {
	d.logger.Debug("window event", "event", ev.Kind, "window", ev.ID)

	switch ev.Kind {
	case wm.EventOpened:
		c, _ := d.Resolve(ev.ID)
		if c.Kind == content.KindTerminal {
			d.Shells[ev.ID] = content.NewShell(d.Catalog, d.Visitor, c.Body(),
				content.WithClock(d.now),
				content.WithLimits(config.MaxShellHistory, config.MaxShellScrollback))
		}
		d.LogInfo("Opened %s", ev.ID)

	case wm.EventClosed:
		delete(d.Shells, ev.ID)
		d.dropAnimations(ev.ID)
		if d.Grab != nil && d.Grab.Window() == ev.ID {
			d.ReleaseGrab()
		}
		d.LogInfo("Closed %s", ev.ID)

	case wm.EventRestored:
		d.startRestoreAnimation(ev.ID)

	case wm.EventMinimized:
		d.dropAnimations(ev.ID)
	}
}
