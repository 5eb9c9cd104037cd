package app

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/theme"
	"github.com/aerodesk/aerodesk/internal/wm"
)

// GetCanvas composes the whole screen: wallpaper, icons, windows, taskbar
// and overlays.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.Width, d.Height)
	if d.Width <= 0 || d.Height <= 0 {
		return canvas
	}

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(d.renderWallpaper()).X(0).Y(0).Z(config.ZIndexWallpaper).ID("wallpaper"),
	}
	layers = append(layers, d.renderIcons()...)
	layers = append(layers, d.renderWindows()...)
	layers = append(layers, d.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the desktop.
func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// wallpaperColor returns the background of screen row y: a vertical blend
// from WallpaperTop to WallpaperBottom, or flat for the plain wallpaper.
func (d *Desktop) wallpaperColor(y int) color.Color {
	if config.Wallpaper == "plain" || d.Height <= 1 {
		return theme.WallpaperTop()
	}
	return lerpColor(theme.WallpaperTop(), theme.WallpaperBottom(), float64(y)/float64(d.Height-1))
}

func lerpColor(a, b color.Color, t float64) color.Color {
	t = max(0, min(t, 1))
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8((float64(x>>8)*(1-t) + float64(y>>8)*t) + 0.5)
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: 0xff}
}

func (d *Desktop) renderWallpaper() string {
	pattern := lipgloss.NewStyle().Foreground(theme.WallpaperPattern())
	dot := "·"
	if config.UseASCIIOnly {
		dot = "."
	}

	lines := make([]string, d.Height)
	for y := range d.Height {
		bg := d.wallpaperColor(y)
		fill := lipgloss.NewStyle().Background(bg)

		if config.Wallpaper != "dots" {
			lines[y] = fill.Render(strings.Repeat(" ", d.Width))
			continue
		}

		var sb strings.Builder
		run := 0
		flush := func() {
			if run > 0 {
				sb.WriteString(fill.Render(strings.Repeat(" ", run)))
				run = 0
			}
		}
		for x := range d.Width {
			if (x+3*y)%8 == 0 {
				flush()
				sb.WriteString(pattern.Background(bg).Render(dot))
				continue
			}
			run++
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (d *Desktop) renderIcons() []*lipgloss.Layer {
	origin := d.ContentOrigin()
	area := d.Registry.Viewport().ContentRect()
	cell := d.Icons.CellSize()

	var layers []*lipgloss.Layer
	for _, ic := range d.Icons.Icons() {
		r := d.Icons.CellRect(ic.Cell)
		if !area.Contains(r.Min) {
			continue
		}
		c, _ := d.Resolve(ic.ID)
		pressed := d.IconPress != nil && d.IconPress.ID == ic.ID

		bg := d.wallpaperColor(r.Min.Y + origin.Y)
		glyphStyle := lipgloss.NewStyle().Foreground(theme.IconFg()).Bold(true)
		labelStyle := lipgloss.NewStyle().Foreground(theme.IconLabelFg())
		if pressed {
			bg = theme.IconPressedBg()
		}
		glyphStyle = glyphStyle.Background(bg)
		labelStyle = labelStyle.Background(bg)

		label := ic.Label
		if label == "" {
			label = c.Title
		}
		body := lipgloss.JoinVertical(lipgloss.Center,
			glyphStyle.Render(" "+c.Glyph+" "),
			labelStyle.Render(truncate(label, cell.Width-1)),
		)
		body = lipgloss.PlaceHorizontal(cell.Width-1, lipgloss.Center, body)
		body, x, y := clipBox(body, r.Min.X, r.Min.Y, area)
		if body == "" {
			continue
		}
		p := d.ToScreen(wm.Point{X: x, Y: y})
		layers = append(layers, lipgloss.NewLayer(body).X(p.X).Y(p.Y).Z(config.ZIndexIcons).ID("icon-"+ic.ID))
	}
	return layers
}

func (d *Desktop) renderWindows() []*lipgloss.Layer {
	area := d.Registry.Viewport().ContentRect()
	active := d.Registry.Active()

	var layers []*lipgloss.Layer
	for rank, w := range d.Registry.Visible() {
		var box string
		var rect wm.Rect

		if a, ok := d.Animation(w.ID); ok {
			rect = a.Rect()
			box = renderOutline(rect.Size, theme.BorderInteracting())
		} else {
			rect, _ = d.Registry.Bounds(w.ID)
			box = d.renderWindow(w, rect.Size, w.ID == active)
		}

		clipped, x, y := clipBox(box, rect.Min.X, rect.Min.Y, area)
		if clipped == "" {
			continue
		}
		p := d.ToScreen(wm.Point{X: x, Y: y})
		layers = append(layers, lipgloss.NewLayer(clipped).
			X(p.X).Y(p.Y).Z(config.ZIndexWindowBase+rank).ID("window-"+w.ID))
	}
	return layers
}
