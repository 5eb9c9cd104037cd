package wm

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIcon is returned when an icon id is added twice.
	ErrDuplicateIcon = errors.New("duplicate icon id")
	// ErrCellOccupied is returned when an icon is added to a taken cell.
	ErrCellOccupied = errors.New("grid cell occupied")
	// ErrNegativeCell is returned when an icon is added outside the grid.
	ErrNegativeCell = errors.New("negative grid cell")
)

// Cell addresses a slot on the desktop icon grid.
type Cell struct {
	GX int
	GY int
}

// Icon is a desktop launcher.
type Icon struct {
	ID    string
	Label string
	Cell  Cell
}

// IconGrid holds the desktop icons. No two icons share a cell.
type IconGrid struct {
	icons  []*Icon
	byID   map[string]*Icon
	cell   Size
	origin Point
	mobile bool
}

// NewIconGrid creates an empty grid whose cells are cellSize large, with
// cell (0,0) at origin.
func NewIconGrid(cellSize Size, origin Point) *IconGrid {
	return &IconGrid{
		byID:   make(map[string]*Icon),
		cell:   Size{Width: max(cellSize.Width, 1), Height: max(cellSize.Height, 1)},
		origin: origin,
	}
}

// Add places an icon. It fails for duplicate ids, taken or negative cells.
func (g *IconGrid) Add(icon Icon) error {
	if _, ok := g.byID[icon.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateIcon, icon.ID)
	}
	if icon.Cell.GX < 0 || icon.Cell.GY < 0 {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrNegativeCell, icon.ID, icon.Cell.GX, icon.Cell.GY)
	}
	if other, ok := g.At(icon.Cell); ok {
		return fmt.Errorf("%w: %s and %s at (%d,%d)", ErrCellOccupied, other.ID, icon.ID, icon.Cell.GX, icon.Cell.GY)
	}
	ic := icon
	g.icons = append(g.icons, &ic)
	g.byID[ic.ID] = &ic
	return nil
}

// Icons returns copies of the icons in insertion order.
func (g *IconGrid) Icons() []Icon {
	out := make([]Icon, len(g.icons))
	for i, ic := range g.icons {
		out[i] = *ic
	}
	return out
}

// Get returns the icon with the given id.
func (g *IconGrid) Get(id string) (Icon, bool) {
	ic, ok := g.byID[id]
	if !ok {
		return Icon{}, false
	}
	return *ic, true
}

// At returns the icon occupying c.
func (g *IconGrid) At(c Cell) (Icon, bool) {
	for _, ic := range g.icons {
		if ic.Cell == c {
			return *ic, true
		}
	}
	return Icon{}, false
}

// SetMobile enables or disables the narrow layout, in which icons cannot be
// moved.
func (g *IconGrid) SetMobile(mobile bool) { g.mobile = mobile }

// Mobile reports whether the narrow layout is active.
func (g *IconGrid) Mobile() bool { return g.mobile }

// MoveIcon moves icon id to (gx, gy). The move is rejected, leaving the grid
// unchanged, when the id is unknown, the cell is negative or taken by another
// icon, or the grid is in the narrow layout. Moving onto its own cell is an
// accepted no-op.
func (g *IconGrid) MoveIcon(id string, gx, gy int) bool {
	ic, ok := g.byID[id]
	if !ok || g.mobile || gx < 0 || gy < 0 {
		return false
	}
	dst := Cell{GX: gx, GY: gy}
	if other, ok := g.At(dst); ok && other.ID != id {
		return false
	}
	ic.Cell = dst
	return true
}

// CellSize returns the size of one grid cell.
func (g *IconGrid) CellSize() Size { return g.cell }

// CellAt maps a point to the grid cell containing it. Points left of or above
// the origin map to negative cells.
func (g *IconGrid) CellAt(p Point) Cell {
	return Cell{
		GX: floorDiv(p.X-g.origin.X, g.cell.Width),
		GY: floorDiv(p.Y-g.origin.Y, g.cell.Height),
	}
}

// CellRect returns the rectangle covered by c.
func (g *IconGrid) CellRect(c Cell) Rect {
	return Rect{
		Min: Point{
			X: g.origin.X + c.GX*g.cell.Width,
			Y: g.origin.Y + c.GY*g.cell.Height,
		},
		Size: g.cell,
	}
}

// HitTest returns the icon under p.
func (g *IconGrid) HitTest(p Point) (Icon, bool) {
	return g.At(g.CellAt(p))
}

// Gesture is the outcome of a pointer-down/up pair on an icon.
type Gesture int

const (
	// GestureNone is the dead band between a click and a move.
	GestureNone Gesture = iota
	// GestureClick opens the icon's window.
	GestureClick
	// GestureMove repositions the icon.
	GestureMove
)

func (g Gesture) String() string {
	switch g {
	case GestureClick:
		return "click"
	case GestureMove:
		return "move"
	default:
		return "none"
	}
}

// GestureThresholds separates clicks from moves. A displacement below Click
// is a click, one of at least Move is a move, anything in between does
// nothing.
type GestureThresholds struct {
	Click int
	Move  int
}

// ClassifyGesture classifies the displacement between start and end using
// the larger of the horizontal and vertical distances.
func ClassifyGesture(start, end Point, t GestureThresholds) Gesture {
	d := max(abs(end.X-start.X), abs(end.Y-start.Y))
	switch {
	case d < t.Click:
		return GestureClick
	case d >= t.Move:
		return GestureMove
	default:
		return GestureNone
	}
}
