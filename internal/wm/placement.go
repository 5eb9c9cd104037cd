package wm

// SizePolicy decides the initial size of a window from its id.
type SizePolicy struct {
	// Default is used for ids without an entry in Sizes.
	Default Size
	// Sizes holds per-id initial sizes.
	Sizes map[string]Size
	// Square lists ids that use the full-square rule: the largest square
	// that fits the content area, capped at MaxSquare.
	Square map[string]bool
	// MaxSquare caps the full-square side.
	MaxSquare int
}

// Placement computes where new windows appear.
type Placement struct {
	// Origin is where the first window is placed.
	Origin Point
	// Step is the cascade offset applied per already open window.
	Step Point
	// MobileBreakpoint is the viewport width below which the narrow layout
	// is used. Zero disables it.
	MobileBreakpoint int
	// MobileMargin surrounds mobile windows.
	MobileMargin int
	Policy       SizePolicy
}

// IsMobile reports whether the viewport uses the narrow layout.
func (p Placement) IsMobile(vp Viewport) bool {
	return p.MobileBreakpoint > 0 && vp.Width < p.MobileBreakpoint
}

// Initial returns the position and size of a new window. open is the number
// of windows already in the registry.
func (p Placement) Initial(id string, open int, vp Viewport) (Point, Size, bool) {
	if p.IsMobile(vp) {
		m := p.MobileMargin
		size := Size{
			Width:  max(vp.Width-2*m, 0),
			Height: max(vp.ContentHeight()-2*m, 0),
		}
		return Point{X: m, Y: m}, size, true
	}

	if p.Policy.Square[id] {
		side := min(vp.Width, vp.ContentHeight())
		if p.Policy.MaxSquare > 0 {
			side = min(side, p.Policy.MaxSquare)
		}
		side = max(side, 0)
		return Point{X: max((vp.Width-side)/2, 0)}, Size{Width: side, Height: side}, false
	}

	size, ok := p.Policy.Sizes[id]
	if !ok {
		size = p.Policy.Default
	}

	pos := Point{
		X: p.Origin.X + p.Step.X*open,
		Y: p.Origin.Y + p.Step.Y*open,
	}
	// Wrap the cascade once it would push the window out of the content
	// area.
	if open > 0 && (pos.X+size.Width > vp.Width || pos.Y+size.Height > vp.ContentHeight()) {
		pos = p.Origin
	}
	return pos, size, false
}
