package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/colorprofile"

	"github.com/aerodesk/aerodesk/internal/config"
)

func TestPrintKeybindings(t *testing.T) {
	var buf bytes.Buffer
	printKeybindings(&buf, config.GetKeybindings(config.NewKeybindRegistry(config.DefaultConfig())))

	out := buf.String()
	for _, want := range []string{"System", "Windows", "Desktop", "ctrl+c / ctrl+q", "Quit", "Open desktop icon 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestPrintThemesWithoutColor(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	defer xdg.Reload()

	var buf bytes.Buffer
	if err := printThemes(&buf, colorprofile.NoTTY); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d themes", len(lines))
	}
	for _, l := range lines {
		if strings.ContainsRune(l, '\x1b') || strings.Contains(l, " ") {
			t.Errorf("plain output should be bare ids, got %q", l)
		}
	}
}
