package content

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Content is what a window shows.
type Content struct {
	Title string
	Glyph string
	Kind  Kind
	body  string
}

// Resolver maps window ids to content.
type Resolver interface {
	Resolve(id string) (Content, bool)
}

// Resolve implements Resolver.
func (c *Catalog) Resolve(id string) (Content, bool) {
	w, ok := c.Window(id)
	if !ok {
		return NotFound(id), false
	}
	return Content{Title: w.Title, Glyph: w.Glyph, Kind: w.Kind, body: w.Body}, true
}

// NewContent builds content that does not come from a catalog, such as the
// greeting window.
func NewContent(title, glyph string, kind Kind, body string) Content {
	return Content{Title: title, Glyph: glyph, Kind: kind, body: body}
}

// Body returns the raw body text.
func (c Content) Body() string { return c.body }

// NotFound is the placeholder shown for ids without content.
func NotFound(id string) Content {
	return Content{
		Title: id,
		Glyph: "?",
		Kind:  KindText,
		body:  "# Not found\n\nNothing is registered under \"" + id + "\".",
	}
}

// Render lays the body out in a width x height box. Lines starting with
// "# " are headings and get an underline. The result has at most height
// lines, none wider than width.
func (c Content) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var out []string
	for _, line := range strings.Split(strings.Trim(c.body, "\n"), "\n") {
		if heading, ok := strings.CutPrefix(line, "# "); ok {
			heading = ansi.Truncate(heading, width, "…")
			out = append(out, heading, strings.Repeat("─", ansi.StringWidth(heading)))
			continue
		}
		if line == "" {
			out = append(out, "")
			continue
		}
		wrapped := ansi.Wrap(line, width, "")
		out = append(out, strings.Split(wrapped, "\n")...)
	}

	if len(out) > height {
		out = out[:height]
		if height > 0 {
			out[height-1] = ansi.Truncate(out[height-1]+" …", width, "…")
		}
	}
	return strings.Join(out, "\n")
}

// Headings returns the body's heading lines, in order.
func (c Content) Headings() []string {
	var hs []string
	for _, line := range strings.Split(c.body, "\n") {
		if h, ok := strings.CutPrefix(line, "# "); ok {
			hs = append(hs, h)
		}
	}
	return hs
}
