package content

import (
	"slices"
	"testing"
)

func resultIDs(rs []SearchResult) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

func TestSearch(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"about", "projects", "experience", "skills", "contact", "gallery", "terminal", "game"}},
		{"pro", []string{"projects"}},
		{"  PRO ", []string{"projects"}},
		{"game", []string{"game"}},
		{"arc", []string{"game"}},
		{"tidepool", []string{"projects"}},
		{"hello", []string{"about", "contact"}},
		{"secret", nil},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := resultIDs(c.Search(tt.query))
			if !slices.Equal(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchPrefixFirst(t *testing.T) {
	c, err := ParseCatalog([]byte(`[[windows]]
id = "a"
title = "My Notes"
[[windows]]
id = "b"
title = "Notes"
[[windows]]
id = "c"
title = "Other"
body = "# notes"
`))
	if err != nil {
		t.Fatal(err)
	}
	got := resultIDs(c.Search("notes"))
	if want := []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Search(notes) = %v, want %v", got, want)
	}
}
