package content

import "strings"

// KonamiCode is the default easter egg sequence.
var KonamiCode = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

// SequenceMatcher watches a stream of key names for a fixed sequence.
// Partial matches survive overlapping prefixes, so "up up up down down ..."
// still completes the Konami code.
type SequenceMatcher struct {
	seq  []string
	fail []int
	pos  int
}

// NewSequenceMatcher returns a matcher for seq. Keys are compared case
// insensitively. An empty sequence never matches.
func NewSequenceMatcher(seq []string) *SequenceMatcher {
	m := &SequenceMatcher{seq: make([]string, len(seq))}
	for i, k := range seq {
		m.seq[i] = strings.ToLower(k)
	}
	m.fail = make([]int, len(m.seq))
	for i, k := 1, 0; i < len(m.seq); i++ {
		for k > 0 && m.seq[i] != m.seq[k] {
			k = m.fail[k-1]
		}
		if m.seq[i] == m.seq[k] {
			k++
		}
		m.fail[i] = k
	}
	return m
}

// Feed consumes one key and reports whether it completed the sequence.
func (m *SequenceMatcher) Feed(key string) bool {
	if len(m.seq) == 0 {
		return false
	}
	key = strings.ToLower(key)
	for m.pos > 0 && m.seq[m.pos] != key {
		m.pos = m.fail[m.pos-1]
	}
	if m.seq[m.pos] == key {
		m.pos++
	}
	if m.pos == len(m.seq) {
		m.pos = 0
		return true
	}
	return false
}

// Progress returns how many keys of the sequence have been matched.
func (m *SequenceMatcher) Progress() int { return m.pos }

// Reset discards any partial match.
func (m *SequenceMatcher) Reset() { m.pos = 0 }
