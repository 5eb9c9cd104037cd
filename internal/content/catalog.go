// Package content resolves window ids to what the desktop shows inside them:
// the catalog of windows and icons, the greeting, the terminal window's toy
// shell, the key-sequence easter egg and catalog search.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/aerodesk/aerodesk/internal/wm"
)

//go:embed desktop.toml
var defaultCatalog []byte

// Kind selects how a window's body is produced.
type Kind string

const (
	// KindText windows show their static body.
	KindText Kind = "text"
	// KindTerminal windows run a Shell.
	KindTerminal Kind = "terminal"
	// KindGame windows are the arcade placeholder.
	KindGame Kind = "game"
)

// WindowSpec describes one window the desktop can open.
type WindowSpec struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Glyph string `toml:"glyph"`
	Kind  Kind   `toml:"kind"`
	// Width and Height are the initial size; zero uses the desktop default.
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Square bool   `toml:"square"`
	Body   string `toml:"body"`
}

// IconSpec places a desktop icon that opens the window with the same id.
type IconSpec struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	GX    int    `toml:"gx"`
	GY    int    `toml:"gy"`
}

// Owner is the person the portfolio belongs to.
type Owner struct {
	Name   string `toml:"name"`
	Handle string `toml:"handle"`
	Role   string `toml:"role"`
	Host   string `toml:"host"`
}

// GreetingSpec holds the first-visit and returning-visitor texts.
type GreetingSpec struct {
	FirstVisit string `toml:"first_visit"`
	Returning  string `toml:"returning"`
}

// EasterEggSpec is a key sequence that opens a hidden window.
type EasterEggSpec struct {
	Sequence []string `toml:"sequence"`
	Target   string   `toml:"target"`
}

// Catalog is the single namespace of window ids.
type Catalog struct {
	Owner     Owner         `toml:"owner"`
	Greeting  GreetingSpec  `toml:"greeting"`
	EasterEgg EasterEggSpec `toml:"easter_egg"`
	Windows   []WindowSpec  `toml:"windows"`
	Icons     []IconSpec    `toml:"icons"`

	byID map[string]int
}

// ErrInvalidCatalog wraps every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	// #nosec G304 - the catalog path comes from the user's own config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a TOML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.byID = make(map[string]int, len(c.Windows))
	for i := range c.Windows {
		w := &c.Windows[i]
		if w.ID == "" {
			return fmt.Errorf("%w: window %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.byID[w.ID]; dup {
			return fmt.Errorf("%w: duplicate window id %q", ErrInvalidCatalog, w.ID)
		}
		switch w.Kind {
		case "":
			w.Kind = KindText
		case KindText, KindTerminal, KindGame:
		default:
			return fmt.Errorf("%w: window %q has unknown kind %q", ErrInvalidCatalog, w.ID, w.Kind)
		}
		if w.Title == "" {
			w.Title = w.ID
		}
		c.byID[w.ID] = i
	}

	for _, ic := range c.Icons {
		if _, ok := c.byID[ic.ID]; !ok {
			return fmt.Errorf("%w: icon %q has no window", ErrInvalidCatalog, ic.ID)
		}
	}
	if t := c.EasterEgg.Target; t != "" {
		if _, ok := c.byID[t]; !ok {
			return fmt.Errorf("%w: easter egg target %q has no window", ErrInvalidCatalog, t)
		}
		if len(c.EasterEgg.Sequence) == 0 {
			return fmt.Errorf("%w: easter egg has an empty sequence", ErrInvalidCatalog)
		}
	}
	return nil
}

// Window returns the window definition for id.
func (c *Catalog) Window(id string) (WindowSpec, bool) {
	i, ok := c.byID[id]
	if !ok {
		return WindowSpec{}, false
	}
	return c.Windows[i], true
}

// Title returns the window title for id, or id itself when unknown.
func (c *Catalog) Title(id string) string {
	if w, ok := c.Window(id); ok {
		return w.Title
	}
	return id
}

// IconGrid builds the desktop icon layer. Conflicting icons are reported as
// errors from wm.IconGrid.Add.
func (c *Catalog) IconGrid(cell wm.Size, origin wm.Point) (*wm.IconGrid, error) {
	g := wm.NewIconGrid(cell, origin)
	for _, ic := range c.Icons {
		label := ic.Label
		if label == "" {
			label = c.Title(ic.ID)
		}
		if err := g.Add(wm.Icon{ID: ic.ID, Label: label, Cell: wm.Cell{GX: ic.GX, GY: ic.GY}}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
	}
	return g, nil
}

// SizePolicy returns the initial-size rules for the catalog's windows.
func (c *Catalog) SizePolicy(def wm.Size, maxSquare int) wm.SizePolicy {
	p := wm.SizePolicy{
		Default:   def,
		Sizes:     make(map[string]wm.Size),
		Square:    make(map[string]bool),
		MaxSquare: maxSquare,
	}
	for _, w := range c.Windows {
		if w.Square {
			p.Square[w.ID] = true
			continue
		}
		if w.Width > 0 || w.Height > 0 {
			s := def
			if w.Width > 0 {
				s.Width = w.Width
			}
			if w.Height > 0 {
				s.Height = w.Height
			}
			p.Sizes[w.ID] = s
		}
	}
	return p
}
