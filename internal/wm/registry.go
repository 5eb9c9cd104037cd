package wm

import (
	"slices"
	"sort"
)

// EventKind identifies a registry mutation.
type EventKind int

const (
	// EventOpened fires when a window is created.
	EventOpened EventKind = iota
	// EventRestored fires when a minimized window is shown again.
	EventRestored
	// EventFocused fires when a window is brought to the front.
	EventFocused
	// EventMinimized fires when a window is minimized.
	EventMinimized
	// EventClosed fires when a window is removed.
	EventClosed
	// EventMoved fires when a window's position changes.
	EventMoved
	// EventResized fires when a window's size changes.
	EventResized
	// EventFullScreenEntered fires when a window fills the viewport.
	EventFullScreenEntered
	// EventFullScreenExited fires when a window leaves full screen.
	EventFullScreenExited
)

var eventNames = [...]string{
	EventOpened:            "opened",
	EventRestored:          "restored",
	EventFocused:           "focused",
	EventMinimized:         "minimized",
	EventClosed:            "closed",
	EventMoved:             "moved",
	EventResized:           "resized",
	EventFullScreenEntered: "fullscreen-entered",
	EventFullScreenExited:  "fullscreen-exited",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event describes one effective registry mutation.
type Event struct {
	Kind EventKind
	ID   string
}

// Options configures a Registry.
type Options struct {
	Viewport  Viewport
	Limits    Limits
	Placement Placement
	// OnChange, if set, is called after every effective mutation.
	OnChange func(Event)
}

// Registry owns the set of open windows, the z-order counter and the active
// window. It is not safe for concurrent use; callers mutate it from a single
// event loop.
//
// Every mutator tolerates unknown ids: UI callbacks may arrive after the
// window they refer to has been closed.
type Registry struct {
	windows  map[string]*Window
	nextZ    int
	opened   int
	active   string
	viewport Viewport
	limits   Limits
	place    Placement
	onChange func(Event)
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		windows:  make(map[string]*Window),
		viewport: opts.Viewport,
		limits:   opts.Limits,
		place:    opts.Placement,
		onChange: opts.OnChange,
	}
}

// SetViewport updates the viewport used for placement and full screen.
func (r *Registry) SetViewport(vp Viewport) {
	r.viewport = vp
}

// Viewport returns the current viewport.
func (r *Registry) Viewport() Viewport { return r.viewport }

// Limits returns the minimum window dimensions.
func (r *Registry) Limits() Limits { return r.limits }

// IsMobile reports whether new windows use the narrow layout.
func (r *Registry) IsMobile() bool { return r.place.IsMobile(r.viewport) }

func (r *Registry) emit(kind EventKind, id string) {
	if r.onChange != nil {
		r.onChange(Event{Kind: kind, ID: id})
	}
}

func (r *Registry) bump() int {
	r.nextZ++
	return r.nextZ
}

// Open creates the window for id, or brings an existing one to the front,
// restoring it when minimized. It reports whether a window was created.
func (r *Registry) Open(id string) bool {
	if id == "" {
		return false
	}

	if w, ok := r.windows[id]; ok {
		if w.Mode == ModeMinimized {
			w.Mode = ModeNormal
			w.Z = r.bump()
			r.active = id
			r.emit(EventRestored, id)
			return false
		}
		w.Z = r.bump()
		r.active = id
		r.emit(EventFocused, id)
		return false
	}

	pos, size, mobile := r.place.Initial(id, len(r.windows), r.viewport)
	r.opened++
	w := &Window{
		ID:       id,
		Position: pos,
		Size:     r.limits.Clamp(size),
		Z:        r.bump(),
		Mode:     ModeNormal,
		Mobile:   mobile,
		opened:   r.opened,
	}
	r.windows[id] = w
	r.active = id
	r.emit(EventOpened, id)
	return true
}

// Close removes the window entirely.
func (r *Registry) Close(id string) {
	if _, ok := r.windows[id]; !ok {
		return
	}
	delete(r.windows, id)
	if r.active == id {
		r.active = r.topVisible()
	}
	r.emit(EventClosed, id)
}

// Minimize hides the window without changing its Z. A full-screen window
// leaves full screen first.
func (r *Registry) Minimize(id string) {
	w, ok := r.windows[id]
	if !ok || w.Mode == ModeMinimized {
		return
	}
	if w.Mode == ModeFullScreen {
		r.exitFullScreen(w)
	}
	w.Mode = ModeMinimized
	if r.active == id {
		r.active = r.topVisible()
	}
	r.emit(EventMinimized, id)
}

// Focus brings the window to the front and makes it active. Focusing a
// minimized window restores it.
func (r *Registry) Focus(id string) {
	w, ok := r.windows[id]
	if !ok {
		return
	}
	if w.Mode == ModeMinimized {
		r.Open(id)
		return
	}
	w.Z = r.bump()
	r.active = id
	r.emit(EventFocused, id)
}

// Move sets the window's top-left corner. Ignored while full screen.
func (r *Registry) Move(id string, x, y int) {
	w, ok := r.windows[id]
	if !ok || w.Mode == ModeFullScreen {
		return
	}
	p := Point{X: x, Y: y}
	if w.Position == p {
		return
	}
	w.Position = p
	r.emit(EventMoved, id)
}

// Resize sets the window's size, clamped to the minimum dimensions.
// Ignored while full screen.
func (r *Registry) Resize(id string, width, height int) {
	w, ok := r.windows[id]
	if !ok || w.Mode == ModeFullScreen {
		return
	}
	s := r.limits.Clamp(Size{Width: width, Height: height})
	if w.Size == s {
		return
	}
	w.Size = s
	r.emit(EventResized, id)
}

// ToggleFullScreen enters or leaves full screen. Entering caches the current
// position, moves the window to the content origin and brings it to the
// front; leaving restores the cached position.
func (r *Registry) ToggleFullScreen(id string) {
	w, ok := r.windows[id]
	if !ok {
		return
	}
	if w.Mode == ModeFullScreen {
		r.exitFullScreen(w)
		r.emit(EventFullScreenExited, id)
		return
	}

	last := w.Position
	w.LastPosition = &last
	w.Mode = ModeFullScreen
	w.Position = Point{}
	w.Z = r.bump()
	r.active = id
	r.emit(EventFullScreenEntered, id)
}

func (r *Registry) exitFullScreen(w *Window) {
	if w.LastPosition != nil {
		w.Position = *w.LastPosition
	}
	w.LastPosition = nil
	w.Mode = ModeNormal
}

// topVisible returns the highest-Z non-minimized window, or "".
func (r *Registry) topVisible() string {
	best, bestZ := "", -1
	for id, w := range r.windows {
		if w.Mode != ModeMinimized && w.Z > bestZ {
			best, bestZ = id, w.Z
		}
	}
	return best
}

// Active returns the focused window id, or "" when none.
func (r *Registry) Active() string { return r.active }

// Has reports whether a window exists for id.
func (r *Registry) Has(id string) bool {
	_, ok := r.windows[id]
	return ok
}

// Len returns the number of windows, minimized ones included.
func (r *Registry) Len() int { return len(r.windows) }

// Get returns a copy of the window for id.
func (r *Registry) Get(id string) (Window, bool) {
	w, ok := r.windows[id]
	if !ok {
		return Window{}, false
	}
	return w.clone(), true
}

// Bounds returns the rectangle the window occupies on screen: its own
// geometry, or the whole content area while full screen.
func (r *Registry) Bounds(id string) (Rect, bool) {
	w, ok := r.windows[id]
	if !ok {
		return Rect{}, false
	}
	if w.Mode == ModeFullScreen {
		return r.viewport.ContentRect(), true
	}
	return w.Rect(), true
}

// Windows returns copies of all windows ordered by Z, lowest first.
func (r *Registry) Windows() []Window {
	out := make([]Window, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// Visible returns the non-minimized windows ordered by Z, lowest first.
func (r *Registry) Visible() []Window {
	return slices.DeleteFunc(r.Windows(), func(w Window) bool {
		return w.Mode == ModeMinimized
	})
}

// Snapshot is the registry membership as seen by the taskbar.
type Snapshot struct {
	// Open lists window ids in the order they were opened.
	Open      []string
	Minimized map[string]bool
	Active    string
}

// Snapshot returns the current membership.
func (r *Registry) Snapshot() Snapshot {
	ws := make([]*Window, 0, len(r.windows))
	for _, w := range r.windows {
		ws = append(ws, w)
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].opened < ws[j].opened })

	s := Snapshot{
		Open:      make([]string, 0, len(ws)),
		Minimized: make(map[string]bool),
		Active:    r.active,
	}
	for _, w := range ws {
		s.Open = append(s.Open, w.ID)
		if w.Mode == ModeMinimized {
			s.Minimized[w.ID] = true
		}
	}
	return s
}

// TopAt returns the id of the topmost visible window whose on-screen
// rectangle contains p.
func (r *Registry) TopAt(p Point) (string, bool) {
	best, bestZ := "", -1
	for id, w := range r.windows {
		if w.Mode == ModeMinimized {
			continue
		}
		b, _ := r.Bounds(id)
		if b.Contains(p) && w.Z > bestZ {
			best, bestZ = id, w.Z
		}
	}
	return best, best != ""
}
