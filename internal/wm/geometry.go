// Package wm implements the desktop window manager: the window registry,
// the drag/resize controller, the desktop icon grid and the taskbar
// projection.
//
// The package performs no I/O and has no notion of rendering. All
// coordinates are integers in whatever unit the caller uses (terminal cells
// for the TUI front end) and are relative to the viewport's content area,
// i.e. below any fixed top bar.
package wm

// Point is a position in content-area coordinates.
type Point struct {
	X int
	Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle with its top-left corner at Min.
type Rect struct {
	Min  Point
	Size Size
}

// Right returns the first column to the right of the rectangle.
func (r Rect) Right() int { return r.Min.X + r.Size.Width }

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Min.Y + r.Size.Height }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Right() &&
		p.Y >= r.Min.Y && p.Y < r.Bottom()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Limits are the component-defined minimum window dimensions.
type Limits struct {
	MinWidth  int
	MinHeight int
}

// Clamp raises s to the minimum dimensions.
func (l Limits) Clamp(s Size) Size {
	return Size{
		Width:  max(s.Width, l.MinWidth),
		Height: max(s.Height, l.MinHeight),
	}
}

// Viewport describes the host surface. TopInset and BottomInset are rows
// reserved for fixed bars (the taskbar) and are not part of the content area.
type Viewport struct {
	Width       int
	Height      int
	TopInset    int
	BottomInset int
}

// ContentHeight returns the height available to windows.
func (v Viewport) ContentHeight() int {
	return max(v.Height-v.TopInset-v.BottomInset, 0)
}

// ContentRect returns the content area in content coordinates.
func (v Viewport) ContentRect() Rect {
	return Rect{Size: Size{Width: v.Width, Height: v.ContentHeight()}}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// floorDiv divides rounding towards negative infinity so that negative
// coordinates map to negative grid cells.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
