package wm

import (
	"errors"
	"testing"
)

func newTestGrid(t *testing.T) *IconGrid {
	t.Helper()
	g := NewIconGrid(Size{Width: 100, Height: 100}, Point{X: 10, Y: 10})
	for _, ic := range []Icon{
		{ID: "about", Label: "About", Cell: Cell{GX: 0, GY: 0}},
		{ID: "projects", Label: "Projects", Cell: Cell{GX: 0, GY: 1}},
		{ID: "terminal", Label: "Terminal", Cell: Cell{GX: 0, GY: 2}},
	} {
		if err := g.Add(ic); err != nil {
			t.Fatalf("Add(%s): %v", ic.ID, err)
		}
	}
	return g
}

func TestMoveIcon(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		gx, gy   int
		mobile   bool
		want     bool
		wantCell Cell
	}{
		{name: "free cell", id: "about", gx: 3, gy: 4, want: true, wantCell: Cell{GX: 3, GY: 4}},
		{name: "own cell", id: "about", gx: 0, gy: 0, want: true, wantCell: Cell{}},
		{name: "occupied cell", id: "about", gx: 0, gy: 1, want: false, wantCell: Cell{}},
		{name: "negative x", id: "about", gx: -1, gy: 0, want: false, wantCell: Cell{}},
		{name: "negative y", id: "about", gx: 2, gy: -3, want: false, wantCell: Cell{}},
		{name: "mobile layout", id: "about", gx: 5, gy: 5, mobile: true, want: false, wantCell: Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t)
			g.SetMobile(tt.mobile)

			if got := g.MoveIcon(tt.id, tt.gx, tt.gy); got != tt.want {
				t.Errorf("MoveIcon() = %v, want %v", got, tt.want)
			}
			ic, _ := g.Get(tt.id)
			if ic.Cell != tt.wantCell {
				t.Errorf("cell = %+v, want %+v", ic.Cell, tt.wantCell)
			}
		})
	}
}

func TestMoveIconUnknown(t *testing.T) {
	g := newTestGrid(t)
	before := g.Icons()
	if g.MoveIcon("ghost", 5, 5) {
		t.Error("unknown id should be rejected")
	}
	after := g.Icons()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("icon %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestIconCellsStayUnique(t *testing.T) {
	g := newTestGrid(t)
	moves := []struct {
		id     string
		gx, gy int
	}{
		{"about", 0, 1}, {"projects", 0, 0}, {"terminal", 1, 1},
		{"about", 1, 1}, {"about", 1, 0}, {"projects", 1, 0},
	}
	for _, m := range moves {
		g.MoveIcon(m.id, m.gx, m.gy)
		seen := make(map[Cell]string)
		for _, ic := range g.Icons() {
			if prev, dup := seen[ic.Cell]; dup {
				t.Fatalf("%s and %s share %+v", prev, ic.ID, ic.Cell)
			}
			seen[ic.Cell] = ic.ID
		}
	}
}

func TestAddRejectsConflicts(t *testing.T) {
	g := newTestGrid(t)

	if err := g.Add(Icon{ID: "about", Cell: Cell{GX: 9, GY: 9}}); !errors.Is(err, ErrDuplicateIcon) {
		t.Errorf("duplicate id: err = %v", err)
	}
	if err := g.Add(Icon{ID: "other", Cell: Cell{GX: 0, GY: 2}}); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("occupied cell: err = %v", err)
	}
	if err := g.Add(Icon{ID: "neg", Cell: Cell{GX: -1}}); !errors.Is(err, ErrNegativeCell) {
		t.Errorf("negative cell: err = %v", err)
	}
	if len(g.Icons()) != 3 {
		t.Errorf("failed adds changed the grid: %d icons", len(g.Icons()))
	}
}

func TestCellAtAndHitTest(t *testing.T) {
	g := newTestGrid(t)

	tests := []struct {
		p    Point
		want Cell
	}{
		{Point{X: 10, Y: 10}, Cell{GX: 0, GY: 0}},
		{Point{X: 109, Y: 109}, Cell{GX: 0, GY: 0}},
		{Point{X: 110, Y: 215}, Cell{GX: 1, GY: 2}},
		{Point{X: 9, Y: 10}, Cell{GX: -1, GY: 0}},
		{Point{X: -200, Y: -1}, Cell{GX: -3, GY: -1}},
	}
	for _, tt := range tests {
		if got := g.CellAt(tt.p); got != tt.want {
			t.Errorf("CellAt(%+v) = %+v, want %+v", tt.p, got, tt.want)
		}
	}

	if ic, ok := g.HitTest(Point{X: 50, Y: 150}); !ok || ic.ID != "projects" {
		t.Errorf("HitTest = %q,%v; want projects", ic.ID, ok)
	}
	if _, ok := g.HitTest(Point{X: 500, Y: 500}); ok {
		t.Error("empty cell should not hit")
	}

	r := g.CellRect(Cell{GX: 2, GY: 1})
	if r.Min != (Point{X: 210, Y: 110}) || r.Size != (Size{Width: 100, Height: 100}) {
		t.Errorf("CellRect = %+v", r)
	}
}

func TestClassifyGesture(t *testing.T) {
	th := GestureThresholds{Click: 5, Move: 10}
	start := Point{X: 100, Y: 100}

	tests := []struct {
		name string
		end  Point
		want Gesture
	}{
		{"no movement", start, GestureClick},
		{"jitter", Point{X: 104, Y: 97}, GestureClick},
		{"dead band", Point{X: 107, Y: 100}, GestureNone},
		{"click threshold is exclusive", Point{X: 105, Y: 100}, GestureNone},
		{"move threshold is inclusive", Point{X: 100, Y: 90}, GestureMove},
		{"large move", Point{X: 300, Y: 250}, GestureMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyGesture(start, tt.end, th); got != tt.want {
				t.Errorf("ClassifyGesture() = %v, want %v", got, tt.want)
			}
		})
	}
}
