package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/theme"
	"github.com/aerodesk/aerodesk/internal/wm"
)

func (d *Desktop) renderOverlays() []*lipgloss.Layer {
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(d.renderTaskbar()).
			X(0).Y(d.TaskbarRow()).Z(config.ZIndexTaskbar).ID("taskbar"),
	}

	if rect, ok := d.PanelRect(); ok {
		var panel string
		switch d.Taskbar.Panel() {
		case wm.PanelSearch:
			panel = d.renderSearchPanel(rect.Size)
		case wm.PanelPower:
			panel = d.renderPowerPanel(rect.Size)
		}
		layers = append(layers, lipgloss.NewLayer(panel).
			X(rect.Min.X).Y(rect.Min.Y).Z(config.ZIndexPanel).ID("panel"))
	}

	if d.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(d.renderHelp()).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}

	if d.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(d.renderLogs()).
			X(0).Y(0).Z(config.ZIndexLogs).ID("logs"))
	}

	return append(layers, d.renderNotifications()...)
}

func (d *Desktop) renderTaskbar() string {
	bar := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())

	var sb strings.Builder
	x := 0
	for _, it := range d.TaskbarItems() {
		if it.X < x || it.X+it.Width > d.Width {
			continue
		}
		sb.WriteString(bar.Render(strings.Repeat(" ", it.X-x)))

		switch it.Kind {
		case TaskbarStart:
			sb.WriteString(bar.Background(theme.StartButtonBg()).Bold(true).Render(it.Text))
		case TaskbarEntry:
			style := bar
			marker := " "
			switch {
			case it.Entry.Active:
				style = style.Background(theme.TaskbarActiveBg()).Bold(true)
				marker = config.GetActiveMarker()
			case it.Entry.Minimized:
				style = style.Foreground(theme.TaskbarMinimizedFg())
				marker = config.GetMinimizedMarker()
			}
			label := truncate(marker+" "+it.Entry.Label, it.Width)
			sb.WriteString(padLine(style.Render(label), it.Width, style))
		default:
			sb.WriteString(bar.Render(it.Text))
		}
		x = it.X + it.Width
	}
	if x < d.Width {
		sb.WriteString(bar.Render(strings.Repeat(" ", d.Width-x)))
	}
	return sb.String()
}

func (d *Desktop) renderSearchPanel(size wm.Size) string {
	fill := lipgloss.NewStyle().Background(theme.PanelBg()).Foreground(theme.PanelFg())
	selected := fill.Background(theme.PanelAccent()).Bold(true)
	w := max(size.Width-2, 0)

	inner := []string{
		padLine(fill.Render(config.GetSearchPrompt()+d.SearchQuery+"_"), w, fill),
		fill.Foreground(theme.PanelAccent()).Render(strings.Repeat(getBorder().Top, w)),
	}

	results := d.SearchResults()
	if len(results) == 0 {
		inner = append(inner, padLine(fill.Faint(true).Render(" No matches"), w, fill))
	}
	for i, r := range results {
		style := fill
		if i == d.SearchSelection {
			style = selected
		}
		inner = append(inner, padLine(style.Render(truncate(" "+r.Glyph+" "+r.Title, w)), w, style))
	}
	for len(inner) < size.Height-2 {
		inner = append(inner, fill.Render(strings.Repeat(" ", w)))
	}
	return frame(inner[:max(size.Height-2, 0)], size, theme.PanelAccent(), theme.PanelBg())
}

func (d *Desktop) renderPowerPanel(size wm.Size) string {
	fill := lipgloss.NewStyle().Background(theme.PanelBg()).Foreground(theme.PanelFg())
	selected := fill.Background(theme.PanelAccent()).Bold(true)
	w := max(size.Width-2, 0)

	var inner []string
	for i, item := range PowerItems {
		style := fill
		if i == d.PowerSelection {
			style = selected
		}
		inner = append(inner, padLine(style.Render(" "+item), w, style))
	}
	if len(inner) > size.Height-2 {
		inner = inner[:max(size.Height-2, 0)]
	}
	return frame(inner, size, theme.PanelAccent(), theme.PanelBg())
}

func (d *Desktop) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true)
	section := lipgloss.NewStyle().Foreground(theme.PanelAccent()).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(theme.NotificationWarning()).Bold(true)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	lines := []string{title.Render("Keyboard and Mouse"), ""}
	for _, sec := range config.GetKeybindings(d.Keybinds) {
		lines = append(lines, section.Render(sec.Title))
		keyWidth := 0
		for _, b := range sec.Bindings {
			keyWidth = max(keyWidth, ansi.StringWidth(b.Key))
		}
		for _, b := range sec.Bindings {
			pad := strings.Repeat(" ", keyWidth-ansi.StringWidth(b.Key)+2)
			lines = append(lines, "  "+keyStyle.Render(b.Key)+pad+b.Description)
		}
		lines = append(lines, "")
	}
	lines = append(lines, hint.Render("Press '?' or 'esc' to close"))

	maxLines := max(d.Height-6, 4)
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], hint.Render("…"))
	}

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.PanelAccent()).
		Padding(1, 2).
		Background(theme.LogViewerBg()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}

func (d *Desktop) renderLogs() string {
	logTitle := lipgloss.NewStyle().
		Foreground(theme.LogViewerTitle()).
		Bold(true).
		Render("System Logs")

	logsPerPage := d.logsPerPage()
	maxScroll := d.maxLogScroll()
	d.LogScrollOffset = max(0, min(d.LogScrollOffset, maxScroll))

	logLines := []string{logTitle, ""}

	startIdx := d.LogScrollOffset
	displayCount := 0
	for i := startIdx; i < len(d.LogMessages) && displayCount < logsPerPage; i++ {
		msg := d.LogMessages[i]

		levelColor := theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		}

		levelStr := lipgloss.NewStyle().Foreground(levelColor).Render(fmt.Sprintf("[%s]", msg.Level))
		line := fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), levelStr, msg.Message)
		logLines = append(logLines, truncate(line, config.LogViewerWidth-6))
		displayCount++
	}

	if maxScroll > 0 {
		scrollInfo := fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			startIdx+1, startIdx+displayCount, len(d.LogMessages))
		logLines = append(logLines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(scrollInfo))
	}

	logLines = append(logLines, "", lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render("Press 'esc' to exit, j/k or ↑/↓ to scroll"))

	logBox := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.PanelAccent()).
		Padding(1, 2).
		Width(min(config.LogViewerWidth, d.Width)).
		Background(theme.LogViewerBg()).
		Render(strings.Join(logLines, "\n"))

	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, logBox)
}

func (d *Desktop) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	notifY := d.ContentOrigin().Y + 1
	notifSpacing := 4
	for i, notif := range d.Notifications {
		if i >= config.MaxVisibleNotifications {
			break
		}

		bgColor := theme.NotificationInfo()
		icon := config.NotificationIconInfo
		switch notif.Type {
		case "error":
			bgColor = theme.NotificationError()
			icon = config.NotificationIconError
		case "warning":
			bgColor = theme.NotificationWarning()
			icon = config.NotificationIconWarning
		case "success":
			bgColor = theme.NotificationSuccess()
			icon = config.NotificationIconSuccess
		}

		maxNotifWidth := min(max(d.Width-8, 20), config.MaxNotificationWidth)
		message := truncate(notif.Message, maxNotifWidth-10)

		notifBox := lipgloss.NewStyle().
			Background(bgColor).
			Foreground(theme.NotificationFg()).
			Padding(1, 2).
			Bold(true).
			MaxWidth(maxNotifWidth).
			Render(fmt.Sprintf(" %s  %s ", icon, message))

		notifX := max(d.Width-lipgloss.Width(notifBox)-config.NotificationMargin, 0)
		layers = append(layers, lipgloss.NewLayer(notifBox).
			X(notifX).Y(notifY+i*notifSpacing).Z(config.ZIndexNotifications).
			ID("notif-"+notif.ID))
	}
	return layers
}
