package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/theme"
	"github.com/aerodesk/aerodesk/internal/wm"
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	tail := "…"
	if config.UseASCIIOnly {
		tail = "."
	}
	return ansi.Truncate(s, width, tail)
}

// padLine cuts or pads s to exactly width cells, filling with style.
func padLine(s string, width int, fill lipgloss.Style) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + fill.Render(strings.Repeat(" ", width-w))
	}
	return s
}

// clipBox cuts a block placed at (x, y) down to the part inside area and
// returns it with its new top-left corner. An empty string means nothing
// is visible.
func clipBox(s string, x, y int, area wm.Rect) (string, int, int) {
	lines := strings.Split(s, "\n")

	top := max(area.Min.Y-y, 0)
	bottom := min(len(lines), area.Bottom()-y)
	left := max(area.Min.X-x, 0)
	right := area.Right() - x
	if top >= bottom || left >= right {
		return "", max(x, area.Min.X), max(y, area.Min.Y)
	}

	out := make([]string, 0, bottom-top)
	for _, line := range lines[top:bottom] {
		if ansi.StringWidth(line) > right {
			line = ansi.Truncate(line, right, "")
		}
		if left > 0 {
			line = ansi.TruncateLeft(line, left, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), x + left, y + top
}

// frame draws border around inner, which must hold size.Height-2 lines of
// exactly size.Width-2 cells.
func frame(inner []string, size wm.Size, fg, bg color.Color) string {
	b := getBorder()
	bs := lipgloss.NewStyle().Foreground(fg).Background(bg)
	w := max(size.Width-2, 0)

	lines := make([]string, 0, size.Height)
	lines = append(lines, bs.Render(b.TopLeft+strings.Repeat(b.Top, w)+b.TopRight))
	for _, l := range inner {
		lines = append(lines, bs.Render(b.Left)+l+bs.Render(b.Right))
	}
	lines = append(lines, bs.Render(b.BottomLeft+strings.Repeat(b.Bottom, w)+b.BottomRight))
	return strings.Join(lines, "\n")
}

// renderOutline draws an empty border, used for windows in flight.
func renderOutline(size wm.Size, fg color.Color) string {
	if size.Width < 2 || size.Height < 2 {
		fill := lipgloss.NewStyle().Background(fg)
		row := fill.Render(strings.Repeat(" ", max(size.Width, 1)))
		return strings.TrimSuffix(strings.Repeat(row+"\n", max(size.Height, 1)), "\n")
	}
	empty := strings.Repeat(" ", size.Width-2)
	inner := make([]string, size.Height-2)
	for i := range inner {
		inner[i] = empty
	}
	return frame(inner, size, fg, lipgloss.NoColor{})
}

func (d *Desktop) borderColor(id string, active bool) color.Color {
	switch {
	case d.Grab.Held() && d.Grab.Window() == id:
		return theme.BorderInteracting()
	case active:
		return theme.BorderActive()
	default:
		return theme.BorderInactive()
	}
}

// renderWindow draws a window of the given outer size: border, title bar
// with buttons, and the body for its content kind.
func (d *Desktop) renderWindow(w wm.Window, size wm.Size, active bool) string {
	if size.Width < 2 || size.Height < chromeRows {
		return renderOutline(size, d.borderColor(w.ID, active))
	}

	inner := []string{d.renderTitleBar(w, size.Width-2, active)}
	inner = append(inner, d.renderBody(w.ID, BodySize(size), active)...)
	return frame(inner, size, d.borderColor(w.ID, active), theme.WindowBg())
}

func (d *Desktop) renderTitleBar(w wm.Window, width int, active bool) string {
	bar := lipgloss.NewStyle().Background(theme.TitleBarBg(active)).Foreground(theme.TitleBarFg(active))

	var buttons string
	if !config.HideWindowButtons {
		btn := lipgloss.NewStyle().Background(theme.TitleBarBg(active)).Foreground(theme.ButtonFg())
		closeBtn := btn.Background(theme.ButtonClose())
		buttons = btn.Render(config.GetButtonMinimize()) +
			btn.Render(config.GetButtonMaximize(w.IsFullScreen())) +
			closeBtn.Render(config.GetButtonClose())
	}

	c, _ := d.Resolve(w.ID)
	titleWidth := max(width-ansi.StringWidth(buttons), 0)
	title := truncate(" "+c.Glyph+" "+truncate(c.Title, config.MaxTitleLength), titleWidth)
	return padLine(bar.Bold(active).Render(title), titleWidth, bar) + buttons
}

func (d *Desktop) renderBody(id string, size wm.Size, active bool) []string {
	fill := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	c, _ := d.Resolve(id)

	var body string
	switch c.Kind {
	case content.KindTerminal:
		if sh, ok := d.Shells[id]; ok {
			var mark func(string) string
			if active {
				cursor := lipgloss.NewStyle().Reverse(true)
				mark = func(s string) string { return cursor.Render(s) }
			}
			body = sh.Render(size.Width, size.Height, mark)
		}
	case content.KindGame:
		accent := fill.Foreground(theme.WindowAccent()).Bold(true)
		body = lipgloss.Place(size.Width, size.Height, lipgloss.Center, lipgloss.Center,
			accent.Render(c.Render(size.Width, size.Height)))
	default:
		body = c.Render(size.Width, size.Height)
	}

	lines := make([]string, size.Height)
	src := strings.Split(body, "\n")
	for i := range lines {
		var l string
		if i < len(src) {
			l = src[i]
		}
		lines[i] = padLine(fill.Render(l), size.Width, fill)
	}
	return lines
}
