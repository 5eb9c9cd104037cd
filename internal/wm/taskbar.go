package wm

// Entry is one taskbar button.
type Entry struct {
	ID        string
	Label     string
	Minimized bool
	Active    bool
}

// Panel is a taskbar disclosure overlay. At most one is open.
type Panel int

const (
	// PanelNone means no overlay is open.
	PanelNone Panel = iota
	// PanelSearch is the search overlay.
	PanelSearch
	// PanelPower is the power menu.
	PanelPower
)

func (p Panel) String() string {
	switch p {
	case PanelSearch:
		return "search"
	case PanelPower:
		return "power"
	default:
		return "none"
	}
}

// Taskbar projects the registry into clickable entries and forwards clicks
// back to it.
type Taskbar struct {
	reg   *Registry
	label func(id string) string
	panel Panel
}

// NewTaskbar creates a taskbar over reg. label maps a window id to its
// button text; nil uses the id.
func NewTaskbar(reg *Registry, label func(id string) string) *Taskbar {
	if label == nil {
		label = func(id string) string { return id }
	}
	return &Taskbar{reg: reg, label: label}
}

// Entries returns one entry per open window in the order they were opened.
func (t *Taskbar) Entries() []Entry {
	snap := t.reg.Snapshot()
	out := make([]Entry, 0, len(snap.Open))
	for _, id := range snap.Open {
		out = append(out, Entry{
			ID:        id,
			Label:     t.label(id),
			Minimized: snap.Minimized[id],
			Active:    id == snap.Active,
		})
	}
	return out
}

// Activate handles a click on the entry for id: a minimized window is
// restored, a background window is focused and the active window is
// minimized. Entries that have closed since they were drawn are ignored.
func (t *Taskbar) Activate(id string) {
	w, ok := t.reg.Get(id)
	if !ok {
		return
	}
	if !w.IsMinimized() && t.reg.Active() == id {
		t.reg.Minimize(id)
		return
	}
	t.reg.Open(id)
}

// Panel returns the open overlay.
func (t *Taskbar) Panel() Panel { return t.panel }

// Toggle opens p, closing any other overlay, or closes p if it is open.
func (t *Taskbar) Toggle(p Panel) {
	if t.panel == p {
		t.panel = PanelNone
		return
	}
	t.panel = p
}

// Dismiss closes any open overlay.
func (t *Taskbar) Dismiss() { t.panel = PanelNone }
