package content

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// IntentKind is a side effect a shell command asks the desktop to perform.
type IntentKind int

const (
	// IntentNone means the command only produced output.
	IntentNone IntentKind = iota
	// IntentOpen asks the desktop to open Intent.Target.
	IntentOpen
	// IntentExit asks the desktop to close the terminal window.
	IntentExit
)

// Intent is a desktop action requested by a command.
type Intent struct {
	Kind   IntentKind
	Target string
}

// Result is the outcome of one command.
type Result struct {
	Lines  []string
	Intent Intent
}

// Shell is the terminal window's command interpreter and line editor. It
// runs no processes; every command is built in.
type Shell struct {
	cat  *Catalog
	user string
	now  func() time.Time

	maxHistory    int
	maxScrollback int

	history    []string
	histCursor int // len(history) means "editing a new line"
	scrollback []string

	input  []rune
	cursor int
	draft  []rune // line being edited before browsing history
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithClock replaces time.Now for the date command.
func WithClock(now func() time.Time) ShellOption {
	return func(s *Shell) { s.now = now }
}

// WithLimits bounds the command history and the scrollback.
func WithLimits(history, scrollback int) ShellOption {
	return func(s *Shell) {
		s.maxHistory = history
		s.maxScrollback = scrollback
	}
}

// NewShell creates a shell for user over cat. The banner, if any, starts
// the scrollback.
func NewShell(cat *Catalog, user string, banner string, opts ...ShellOption) *Shell {
	s := &Shell{
		cat:           cat,
		user:          user,
		now:           time.Now,
		maxHistory:    50,
		maxScrollback: 500,
	}
	for _, o := range opts {
		o(s)
	}
	if banner != "" {
		s.appendLines(strings.Split(banner, "\n")...)
	}
	return s
}

// Prompt returns the prompt shown before the input line.
func (s *Shell) Prompt() string {
	host := s.cat.Owner.Host
	if host == "" {
		host = "aerodesk"
	}
	return fmt.Sprintf("%s@%s:~$ ", s.user, host)
}

// Input returns the line being edited.
func (s *Shell) Input() string { return string(s.input) }

// Cursor returns the cursor position within Input, in runes.
func (s *Shell) Cursor() int { return s.cursor }

// Scrollback returns the output lines, oldest first.
func (s *Shell) Scrollback() []string { return s.scrollback }

// History returns previously submitted commands, oldest first.
func (s *Shell) History() []string { return s.history }

// Insert adds text at the cursor.
func (s *Shell) Insert(text string) {
	rs := []rune(text)
	s.input = slices.Insert(s.input, s.cursor, rs...)
	s.cursor += len(rs)
}

// Backspace deletes the rune before the cursor.
func (s *Shell) Backspace() {
	if s.cursor == 0 {
		return
	}
	s.input = slices.Delete(s.input, s.cursor-1, s.cursor)
	s.cursor--
}

// Delete deletes the rune under the cursor.
func (s *Shell) Delete() {
	if s.cursor >= len(s.input) {
		return
	}
	s.input = slices.Delete(s.input, s.cursor, s.cursor+1)
}

// Left moves the cursor one rune left.
func (s *Shell) Left() { s.cursor = max(s.cursor-1, 0) }

// Right moves the cursor one rune right.
func (s *Shell) Right() { s.cursor = min(s.cursor+1, len(s.input)) }

// Home moves the cursor to the start of the line.
func (s *Shell) Home() { s.cursor = 0 }

// End moves the cursor to the end of the line.
func (s *Shell) End() { s.cursor = len(s.input) }

// KillLine clears the input line.
func (s *Shell) KillLine() {
	s.input = nil
	s.cursor = 0
}

// HistoryPrev replaces the input with the previous history entry.
func (s *Shell) HistoryPrev() {
	if s.histCursor == 0 {
		return
	}
	if s.histCursor == len(s.history) {
		s.draft = slices.Clone(s.input)
	}
	s.histCursor--
	s.setInput([]rune(s.history[s.histCursor]))
}

// HistoryNext moves forward through history, back to the draft line.
func (s *Shell) HistoryNext() {
	if s.histCursor >= len(s.history) {
		return
	}
	s.histCursor++
	if s.histCursor == len(s.history) {
		s.setInput(s.draft)
		return
	}
	s.setInput([]rune(s.history[s.histCursor]))
}

func (s *Shell) setInput(rs []rune) {
	s.input = slices.Clone(rs)
	s.cursor = len(s.input)
}

// Submit echoes the input line into the scrollback, runs it and appends the
// output.
func (s *Shell) Submit() Result {
	line := string(s.input)
	s.appendLines(s.Prompt() + line)
	s.input, s.cursor, s.draft = nil, 0, nil

	res := s.Exec(line)
	s.appendLines(res.Lines...)
	return res
}

// Exec runs one command line and records it in the history.
func (s *Shell) Exec(line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.histCursor = len(s.history)
		return Result{}
	}
	s.remember(strings.TrimSpace(line))

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		return Result{Lines: []string{
			"Commands:",
			"  help            this list",
			"  ls              list windows",
			"  open <id>       open a window",
			"  whoami          who you are",
			"  date            current date and time",
			"  echo <text>     print text",
			"  history         previous commands",
			"  clear           clear the screen",
			"  exit            close this window",
		}}
	case "ls":
		lines := make([]string, 0, len(s.cat.Windows))
		for _, w := range s.cat.Windows {
			lines = append(lines, fmt.Sprintf("%-12s %s", w.ID, w.Title))
		}
		return Result{Lines: lines}
	case "open":
		if len(args) != 1 {
			return Result{Lines: []string{"usage: open <id>"}}
		}
		if _, ok := s.cat.Window(args[0]); !ok {
			return Result{Lines: []string{fmt.Sprintf("open: %s: no such window", args[0])}}
		}
		return Result{
			Lines:  []string{"opening " + args[0] + "..."},
			Intent: Intent{Kind: IntentOpen, Target: args[0]},
		}
	case "whoami":
		lines := []string{s.user}
		if o := s.cat.Owner; o.Name != "" {
			lines = append(lines, fmt.Sprintf("visiting %s (%s)", o.Name, o.Role))
		}
		return Result{Lines: lines}
	case "date":
		return Result{Lines: []string{s.now().Format(time.RFC1123)}}
	case "echo":
		return Result{Lines: []string{strings.Join(args, " ")}}
	case "history":
		lines := make([]string, len(s.history))
		for i, h := range s.history {
			lines[i] = fmt.Sprintf("%4d  %s", i+1, h)
		}
		return Result{Lines: lines}
	case "clear":
		s.scrollback = nil
		return Result{}
	case "exit":
		return Result{Lines: []string{"logout"}, Intent: Intent{Kind: IntentExit}}
	default:
		return Result{Lines: []string{cmd + ": command not found"}}
	}
}

func (s *Shell) remember(line string) {
	if n := len(s.history); n == 0 || s.history[n-1] != line {
		s.history = append(s.history, line)
	}
	if over := len(s.history) - s.maxHistory; s.maxHistory > 0 && over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
	s.histCursor = len(s.history)
}

func (s *Shell) appendLines(lines ...string) {
	s.scrollback = append(s.scrollback, lines...)
	if over := len(s.scrollback) - s.maxScrollback; s.maxScrollback > 0 && over > 0 {
		s.scrollback = slices.Delete(s.scrollback, 0, over)
	}
}

// Render returns the last lines of the scrollback followed by the prompt,
// wrapped to width and limited to height lines. When mark is non-nil the
// rune under the cursor (or a trailing space) is passed through it.
func (s *Shell) Render(width, height int, mark func(string) string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	prompt := s.Prompt() + s.Input()
	if mark != nil {
		under := " "
		rest := ""
		if s.cursor < len(s.input) {
			under = string(s.input[s.cursor])
			rest = string(s.input[s.cursor+1:])
		}
		prompt = s.Prompt() + string(s.input[:s.cursor]) + mark(under) + rest
	}

	var lines []string
	for _, l := range append(slices.Clone(s.scrollback), prompt) {
		if l == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, strings.Split(ansi.Hardwrap(l, width, true), "\n")...)
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}
