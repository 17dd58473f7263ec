// Package menutree groups a flat item list into sections and subsections,
// keeping the order in which each key first appears.
package menutree

import "github.com/dgallion1/menushare/internal/menu"

// Unnamed is the subsection key of items without a subsection.
const Unnamed = ""

// Tree is section name → Section, in first-occurrence order.
type Tree struct {
	sections []*Section
	index    map[string]*Section
	total    int
}

// Section holds the buckets of one section, in first-occurrence order.
type Section struct {
	Name    string
	keys    []string
	buckets map[string][]menu.Item
	total   int
}

// Build classifies every item into exactly one (section, subsection) bucket.
// It is a pure function of the items' Section and Subsection fields.
func Build(items []menu.Item) *Tree {
	t := &Tree{index: make(map[string]*Section)}
	for _, it := range items {
		sec, ok := t.index[it.Section]
		if !ok {
			sec = &Section{Name: it.Section, buckets: make(map[string][]menu.Item)}
			t.index[it.Section] = sec
			t.sections = append(t.sections, sec)
		}
		if _, ok := sec.buckets[it.Subsection]; !ok {
			sec.keys = append(sec.keys, it.Subsection)
		}
		sec.buckets[it.Subsection] = append(sec.buckets[it.Subsection], it)
		sec.total++
		t.total++
	}
	return t
}

// Sections returns the sections in first-occurrence order.
func (t *Tree) Sections() []*Section { return t.sections }

// Section looks a section up by name.
func (t *Tree) Section(name string) (*Section, bool) {
	s, ok := t.index[name]
	return s, ok
}

// Len is the number of sections.
func (t *Tree) Len() int { return len(t.sections) }

// ItemCount is the number of items across all sections.
func (t *Tree) ItemCount() int { return t.total }

// Keys returns every subsection key, the unnamed one included.
func (s *Section) Keys() []string { return s.keys }

// Named returns the non-empty subsection keys.
func (s *Section) Named() []string {
	named := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if k != Unnamed {
			named = append(named, k)
		}
	}
	return named
}

// Items returns the bucket for key; unknown keys give an empty bucket.
func (s *Section) Items(key string) []menu.Item { return s.buckets[key] }

// ItemCount is the number of items in the section.
func (s *Section) ItemCount() int { return s.total }
