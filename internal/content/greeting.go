package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// GreetingText returns the welcome text for a first or returning visit.
func (c *Catalog) GreetingText(hasVisited bool) string {
	text := c.Greeting.FirstVisit
	if hasVisited {
		text = c.Greeting.Returning
	}
	text = strings.TrimSpace(text)
	if text == "" {
		if hasVisited {
			return "Welcome back!"
		}
		return "Welcome!"
	}
	return text
}

// VisitStore remembers which visitors have been here before. The file is a
// TOML table of visitor key to last visit time. Safe for concurrent use.
type VisitStore struct {
	mu   sync.Mutex
	path string
}

// NewVisitStore returns a store backed by path. The file is created on the
// first MarkVisited.
func NewVisitStore(path string) *VisitStore {
	return &VisitStore{path: path}
}

// DefaultVisitStore returns the store in $XDG_STATE_HOME/aerodesk/visits.toml.
func DefaultVisitStore() (*VisitStore, error) {
	p, err := xdg.StateFile("aerodesk/visits.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get visit store path: %w", err)
	}
	return NewVisitStore(p), nil
}

type visitFile struct {
	Visitors map[string]time.Time `toml:"visitors"`
}

func (s *VisitStore) read() (visitFile, error) {
	f := visitFile{Visitors: make(map[string]time.Time)}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("failed to read visit store: %w", err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return visitFile{Visitors: make(map[string]time.Time)}, fmt.Errorf("failed to parse visit store: %w", err)
	}
	if f.Visitors == nil {
		f.Visitors = make(map[string]time.Time)
	}
	return f, nil
}

// HasVisited reports whether visitor was marked before. A store that cannot
// be read counts as a first visit.
func (s *VisitStore) HasVisited(visitor string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.read()
	if err != nil {
		return false
	}
	_, ok := f.Visitors[visitor]
	return ok
}

// MarkVisited records a visit by visitor at time at.
func (s *VisitStore) MarkVisited(visitor string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		// corrupt store: replaced on write
		f = visitFile{Visitors: make(map[string]time.Time)}
	}
	f.Visitors[visitor] = at.UTC().Truncate(time.Second)

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode visit store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create visit store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write visit store: %w", err)
	}
	return nil
}
