package wm

import "strings"

// Direction is the set of edges a resize acts on.
type Direction uint8

const (
	// DirN moves the top edge.
	DirN Direction = 1 << iota
	// DirS moves the bottom edge.
	DirS
	// DirE moves the right edge.
	DirE
	// DirW moves the left edge.
	DirW
)

// ParseDirection parses a direction token such as "se" or "n".
func ParseDirection(tok string) (Direction, bool) {
	var d Direction
	for _, c := range strings.ToLower(tok) {
		switch c {
		case 'n':
			d |= DirN
		case 's':
			d |= DirS
		case 'e':
			d |= DirE
		case 'w':
			d |= DirW
		default:
			return 0, false
		}
	}
	if d == 0 || d&(DirN|DirS) == DirN|DirS || d&(DirE|DirW) == DirE|DirW {
		return 0, false
	}
	return d, true
}

func (d Direction) String() string {
	var b strings.Builder
	if d&DirN != 0 {
		b.WriteByte('n')
	}
	if d&DirS != 0 {
		b.WriteByte('s')
	}
	if d&DirE != 0 {
		b.WriteByte('e')
	}
	if d&DirW != 0 {
		b.WriteByte('w')
	}
	return b.String()
}

// Phase is the controller's interaction state.
type Phase int

const (
	// PhaseIdle means no pointer interaction is in progress.
	PhaseIdle Phase = iota
	// PhaseDragging means a title-bar drag is in progress.
	PhaseDragging
	// PhaseResizing means a border resize is in progress.
	PhaseResizing
)

// Grab is the handle for one pointer interaction. Pointer motion is only
// routed to the controller while a grab is held. Release is idempotent and
// safe to defer on every exit path of the code that started the interaction.
type Grab struct {
	c        *Controller
	window   string
	released bool
}

// Window returns the id of the grabbed window.
func (g *Grab) Window() string { return g.window }

// Held reports whether the grab is still the controller's current one.
func (g *Grab) Held() bool {
	return g != nil && !g.released && g.c.grab == g
}

// Release ends the interaction if this grab is still current.
func (g *Grab) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	if g.c.grab == g {
		g.c.reset()
	}
}

// Controller translates pointer events into registry moves and resizes.
// It keeps only ephemeral per-interaction state; window geometry lives in
// the registry.
type Controller struct {
	reg   *Registry
	phase Phase
	grab  *Grab

	window string
	offset Point // pointer offset from the window's top-left corner

	dir          Direction
	startPointer Point
	startSize    Size
	startPos     Point
}

// NewController creates an idle controller acting on reg.
func NewController(reg *Registry) *Controller {
	return &Controller{reg: reg}
}

// Phase returns the current interaction state.
func (c *Controller) Phase() Phase { return c.phase }

// Active reports whether an interaction is in progress.
func (c *Controller) Active() bool { return c.phase != PhaseIdle }

// Window returns the id of the window being manipulated, or "".
func (c *Controller) Window() string { return c.window }

// Direction returns the resize direction, or 0 when not resizing.
func (c *Controller) Direction() Direction { return c.dir }

func (c *Controller) acquire(id string) (Window, *Grab, bool) {
	w, ok := c.reg.Get(id)
	if !ok {
		return Window{}, nil, false
	}
	c.Release()
	c.reg.Focus(id)
	g := &Grab{c: c, window: id}
	c.grab = g
	c.window = id
	return w, g, true
}

// BeginDrag starts dragging window id from its title bar. Full-screen,
// minimized and mobile windows cannot be dragged.
func (c *Controller) BeginDrag(id string, pointer Point) (*Grab, bool) {
	if w, ok := c.reg.Get(id); !ok || !w.Draggable() {
		return nil, false
	}
	w, g, ok := c.acquire(id)
	if !ok {
		return nil, false
	}
	c.phase = PhaseDragging
	c.offset = pointer.Sub(w.Position)
	return g, true
}

// BeginResize starts resizing window id from the affordance dir.
func (c *Controller) BeginResize(id string, dir Direction, pointer Point) (*Grab, bool) {
	if dir == 0 {
		return nil, false
	}
	if w, ok := c.reg.Get(id); !ok || !w.Resizable() {
		return nil, false
	}
	w, g, ok := c.acquire(id)
	if !ok {
		return nil, false
	}
	c.phase = PhaseResizing
	c.dir = dir
	c.startPointer = pointer
	c.startSize = w.Size
	c.startPos = w.Position
	return g, true
}

// Motion applies a pointer move to the grabbed window. It reports whether
// the registry was asked to change anything. If the window has gone away or
// can no longer be manipulated the grab is released.
func (c *Controller) Motion(pointer Point) bool {
	if c.phase == PhaseIdle {
		return false
	}
	w, ok := c.reg.Get(c.window)
	if !ok || !w.Draggable() {
		c.Release()
		return false
	}

	switch c.phase {
	case PhaseDragging:
		// No bounds clamp: a window may be dragged partly or fully off
		// screen.
		p := pointer.Sub(c.offset)
		c.reg.Move(c.window, p.X, p.Y)
	case PhaseResizing:
		pos, size := ResizeGeometry(c.dir, c.startPos, c.startSize, pointer.Sub(c.startPointer), c.reg.Limits())
		c.reg.Resize(c.window, size.Width, size.Height)
		c.reg.Move(c.window, pos.X, pos.Y)
	}
	return true
}

// Release ends the current interaction, if any.
func (c *Controller) Release() {
	if c.grab != nil {
		c.grab.released = true
	}
	c.reset()
}

func (c *Controller) reset() {
	c.phase = PhaseIdle
	c.grab = nil
	c.window = ""
	c.offset = Point{}
	c.dir = 0
	c.startPointer = Point{}
	c.startSize = Size{}
	c.startPos = Point{}
}

// ResizeGeometry computes the new position and size for a resize from dir
// by delta, starting at pos/size. East and south edges grow with the delta;
// west and north edges shrink and shift the position by the clamped size
// change so the opposite edge stays anchored.
func ResizeGeometry(dir Direction, pos Point, size Size, delta Point, limits Limits) (Point, Size) {
	w, h := size.Width, size.Height
	if dir&DirE != 0 {
		w = size.Width + delta.X
	}
	if dir&DirW != 0 {
		w = size.Width - delta.X
	}
	if dir&DirS != 0 {
		h = size.Height + delta.Y
	}
	if dir&DirN != 0 {
		h = size.Height - delta.Y
	}

	clamped := limits.Clamp(Size{Width: w, Height: h})

	out := pos
	if dir&DirW != 0 {
		out.X = pos.X + (size.Width - clamped.Width)
	}
	if dir&DirN != 0 {
		out.Y = pos.Y + (size.Height - clamped.Height)
	}
	return out, clamped
}
