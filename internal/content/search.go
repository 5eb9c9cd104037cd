package content

import (
	"sort"
	"strings"
)

// SearchResult is one window matching a query.
type SearchResult struct {
	ID    string
	Title string
	Glyph string
}

// Search matches query case-insensitively against window titles, ids and
// headings. An empty query lists every window that has a desktop icon.
// Title prefix matches come first; ties keep catalog order.
func (c *Catalog) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))

	type ranked struct {
		SearchResult
		rank int
		idx  int
	}
	var hits []ranked

	if q == "" {
		for i, ic := range c.Icons {
			w, _ := c.Window(ic.ID)
			hits = append(hits, ranked{SearchResult{w.ID, w.Title, w.Glyph}, 0, i})
		}
	} else {
		for i, w := range c.Windows {
			title := strings.ToLower(w.Title)
			rank := -1
			switch {
			case strings.HasPrefix(title, q):
				rank = 0
			case strings.Contains(title, q), strings.Contains(w.ID, q):
				rank = 1
			case headingMatch(w.Body, q):
				rank = 2
			}
			if rank >= 0 && !c.hidden(w.ID) {
				hits = append(hits, ranked{SearchResult{w.ID, w.Title, w.Glyph}, rank, i})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].idx < hits[j].idx
	})

	out := make([]SearchResult, len(hits))
	for i, h := range hits {
		out[i] = h.SearchResult
	}
	return out
}

// hidden reports whether id is only reachable through the easter egg.
func (c *Catalog) hidden(id string) bool {
	return id != "" && id == c.EasterEgg.Target
}

func headingMatch(body, q string) bool {
	for _, h := range (Content{body: body}).Headings() {
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}
