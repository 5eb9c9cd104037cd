package aerodesk

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func TestNewForPTY(t *testing.T) {
	m, err := NewForPTY(fakePTY{90, 28},
		WithRememberVisits(false),
		WithVisitor("alice"),
		WithLogger(log.New(io.Discard)),
	)
	if err != nil {
		t.Fatalf("NewForPTY() error = %v", err)
	}
	if m.Width != 90 || m.Height != 28 || m.Visitor != "alice" {
		t.Errorf("model = %dx%d %s", m.Width, m.Height, m.Visitor)
	}
	if m.Registry.Len() != 1 {
		t.Error("a sized desktop opens the welcome window")
	}
}

func TestNewWithContentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desk.toml")
	data := `
[[windows]]
id = "cv"
title = "CV"
body = "hello"

[[icons]]
id = "cv"
label = "CV"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := New(WithContentFile(path), WithRememberVisits(false), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := m.Catalog.Window("cv"); !ok {
		t.Error("content file should replace the catalog")
	}

	if _, err := New(WithContentFile(filepath.Join(t.TempDir(), "missing.toml")), WithRememberVisits(false)); err == nil {
		t.Error("a missing content file is an error")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m, err := New(WithSize(80, 24), WithRememberVisits(false), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	if FilterMouseMotion(m, tea.MouseMotionMsg{X: 1, Y: 1}) != nil {
		t.Error("idle motion is dropped")
	}
	if len(ProgramOptions()) == 0 {
		t.Error("ProgramOptions() is empty")
	}
}
