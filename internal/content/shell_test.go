package content

import (
	"strings"
	"testing"
	"time"
)

func newTestShell(opts ...ShellOption) *Shell {
	fixed := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	opts = append([]ShellOption{WithClock(func() time.Time { return fixed })}, opts...)
	return NewShell(DefaultCatalog(), "guest", "", opts...)
}

func TestShellPrompt(t *testing.T) {
	s := newTestShell()
	if got, want := s.Prompt(), "guest@aerodesk:~$ "; got != want {
		t.Errorf("Prompt() = %q, want %q", got, want)
	}
}

func TestShellExec(t *testing.T) {
	tests := []struct {
		line   string
		first  string
		intent Intent
	}{
		{"help", "Commands:", Intent{}},
		{"ls", "about", Intent{}},
		{"open projects", "opening projects...", Intent{Kind: IntentOpen, Target: "projects"}},
		{"open", "usage: open <id>", Intent{}},
		{"open nope", "open: nope: no such window", Intent{}},
		{"whoami", "guest", Intent{}},
		{"date", "Sat, 09 Mar 2024 14:30:00 UTC", Intent{}},
		{"echo  hi   there", "hi there", Intent{}},
		{"exit", "logout", Intent{Kind: IntentExit}},
		{"rm -rf /", "rm: command not found", Intent{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := newTestShell()
			res := s.Exec(tt.line)
			if len(res.Lines) == 0 {
				t.Fatalf("Exec(%q) produced no output", tt.line)
			}
			if !strings.HasPrefix(res.Lines[0], tt.first) {
				t.Errorf("first line = %q, want prefix %q", res.Lines[0], tt.first)
			}
			if res.Intent != tt.intent {
				t.Errorf("intent = %+v, want %+v", res.Intent, tt.intent)
			}
		})
	}
}

func TestShellBlankLine(t *testing.T) {
	s := newTestShell()
	res := s.Exec("   ")
	if len(res.Lines) != 0 || len(s.History()) != 0 {
		t.Errorf("blank line should do nothing, got %+v history %v", res, s.History())
	}
}

func TestShellSubmitAndClear(t *testing.T) {
	s := NewShell(DefaultCatalog(), "guest", "banner line")
	s.Insert("echo hi")
	res := s.Submit()

	if res.Intent.Kind != IntentNone {
		t.Errorf("intent = %+v", res.Intent)
	}
	want := []string{"banner line", "guest@aerodesk:~$ echo hi", "hi"}
	if got := s.Scrollback(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Scrollback() = %q, want %q", got, want)
	}
	if s.Input() != "" || s.Cursor() != 0 {
		t.Errorf("input not reset: %q at %d", s.Input(), s.Cursor())
	}

	s.Insert("clear")
	s.Submit()
	if n := len(s.Scrollback()); n != 0 {
		t.Errorf("scrollback after clear has %d lines", n)
	}
}

func TestShellLineEditing(t *testing.T) {
	s := newTestShell()
	s.Insert("hllo")
	s.Home()
	s.Right()
	s.Insert("e")
	if got := s.Input(); got != "hello" {
		t.Fatalf("Input() = %q, want hello", got)
	}
	if s.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", s.Cursor())
	}

	s.End()
	s.Backspace()
	s.Home()
	s.Delete()
	if got := s.Input(); got != "ell" {
		t.Errorf("Input() = %q, want ell", got)
	}

	s.Left()
	s.Backspace()
	if got := s.Input(); got != "ell" {
		t.Errorf("edits at the start should be no-ops, got %q", got)
	}

	s.KillLine()
	if s.Input() != "" || s.Cursor() != 0 {
		t.Errorf("KillLine left %q at %d", s.Input(), s.Cursor())
	}
}

func TestShellHistory(t *testing.T) {
	s := newTestShell()
	for _, line := range []string{"ls", "ls", "whoami", "date"} {
		s.Exec(line)
	}
	if got := strings.Join(s.History(), ","); got != "ls,whoami,date" {
		t.Fatalf("History() = %q, duplicates should collapse", got)
	}

	s.Insert("draft")
	s.HistoryPrev()
	if s.Input() != "date" {
		t.Errorf("prev 1 = %q", s.Input())
	}
	s.HistoryPrev()
	s.HistoryPrev()
	s.HistoryPrev()
	if s.Input() != "ls" {
		t.Errorf("prev past start = %q, want ls", s.Input())
	}
	s.HistoryNext()
	if s.Input() != "whoami" {
		t.Errorf("next = %q", s.Input())
	}
	s.HistoryNext()
	s.HistoryNext()
	if s.Input() != "draft" {
		t.Errorf("next past end = %q, want the draft", s.Input())
	}
	if s.Cursor() != len("draft") {
		t.Errorf("Cursor() = %d", s.Cursor())
	}

	res := s.Exec("history")
	if len(res.Lines) != 4 || res.Lines[0] != "   1  ls" {
		t.Errorf("history output = %q", res.Lines)
	}
}

func TestShellLimits(t *testing.T) {
	s := newTestShell(WithLimits(2, 3))
	for _, line := range []string{"echo a", "echo b", "echo c"} {
		s.Insert(line)
		s.Submit()
	}
	if got := strings.Join(s.History(), ","); got != "echo b,echo c" {
		t.Errorf("History() = %q", got)
	}
	sb := s.Scrollback()
	if len(sb) != 3 || sb[2] != "c" {
		t.Errorf("Scrollback() = %q", sb)
	}
}

func TestShellRender(t *testing.T) {
	s := newTestShell()
	s.Insert("echo " + strings.Repeat("x", 40))
	s.Submit()
	s.Insert("ab")
	s.Left()

	out := s.Render(30, 3, func(r string) string { return "[" + r + "]" })
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), out)
	}
	if last := lines[2]; !strings.HasSuffix(last, "a[b]") {
		t.Errorf("prompt line = %q, want cursor on b", last)
	}

	s.End()
	out = s.Render(40, 1, func(r string) string { return "[" + r + "]" })
	if out != "guest@aerodesk:~$ ab[ ]" {
		t.Errorf("Render() = %q", out)
	}

	if s.Render(0, 10, nil) != "" {
		t.Error("zero width should render nothing")
	}
}
