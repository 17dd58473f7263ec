// Package view turns a route into one of the three viewer screens and
// renders it as HTML.
package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/menushare/internal/menu"
	"github.com/dgallion1/menushare/internal/menutree"
	"github.com/dgallion1/menushare/internal/route"
)

const (
	SubtitleSections    = "Sections"
	SubtitleSubsections = "Subsections"
	BadgeEmpty          = "Empty"
	EmptyMenu           = "No items yet."
	EmptyBucket         = "No items in this category."
	PhotoPlaceholder    = "•"
)

// Header is the sticky bar shown above every screen.
type Header struct {
	Title    string
	Subtitle string
	Badge    string
	CanBack  bool
}

// Tile links to a deeper screen.
type Tile struct {
	Href  string
	Glyph string
	Title string
	Meta  string
	Alt   bool
}

// Row is one item on the items screen.
type Row struct {
	Name        string
	Price       string
	Description string
	Photo       string
}

// Screen is a resolved view. Exactly one of Tiles, Rows or Empty is set.
type Screen struct {
	Kind       route.Kind
	Section    string
	Subsection string
	Header     Header
	Tiles      []Tile
	Rows       []Row
	Empty      string
}

// Resolve selects the screen for r. It returns false when r points at a
// section the tree doesn't have; the caller should go back to the root.
func Resolve(d menu.Data, tree *menutree.Tree, r route.Route) (Screen, bool) {
	switch r.Kind {
	case route.Subsections:
		return subsections(d, tree, r.Section)
	case route.Items:
		return items(d, tree, r.Section, r.Subsection)
	default:
		return root(d, tree), true
	}
}

func root(d menu.Data, tree *menutree.Tree) Screen {
	total := tree.ItemCount()
	s := Screen{
		Kind: route.Root,
		Header: Header{
			Title:    d.Name,
			Subtitle: SubtitleSections,
			Badge:    badge(total),
		},
	}
	if tree.Len() == 0 {
		s.Empty = EmptyMenu
		return s
	}
	for _, sec := range tree.Sections() {
		meta := Count(sec.ItemCount(), "item")
		if named := len(sec.Named()); named > 0 {
			meta = Count(named, "subsection") + " • " + meta
		}
		s.Tiles = append(s.Tiles, Tile{
			Href:  route.SectionHash(sec.Name),
			Glyph: Glyph(sec.Name),
			Title: sec.Name,
			Meta:  meta,
		})
	}
	return s
}

// subsections lists the named subsections of a section. With no named
// subsection it shows the unnamed bucket, and with exactly one it enters
// that subsection directly. Only named keys count toward the decision.
func subsections(d menu.Data, tree *menutree.Tree, name string) (Screen, bool) {
	sec, ok := tree.Section(name)
	if !ok {
		return Screen{}, false
	}
	named := sec.Named()
	switch len(named) {
	case 0:
		return items(d, tree, name, menutree.Unnamed)
	case 1:
		return items(d, tree, name, named[0])
	}

	s := Screen{
		Kind:    route.Subsections,
		Section: name,
		Header: Header{
			Title:    name,
			Subtitle: SubtitleSubsections,
			Badge:    Count(sec.ItemCount(), "item"),
			CanBack:  true,
		},
	}
	for _, sub := range named {
		s.Tiles = append(s.Tiles, Tile{
			Href:  route.ItemsHash(name, sub),
			Glyph: Glyph(sub),
			Title: sub,
			Meta:  Count(len(sec.Items(sub)), "item"),
			Alt:   true,
		})
	}
	return s, true
}

func items(d menu.Data, tree *menutree.Tree, name, sub string) (Screen, bool) {
	sec, ok := tree.Section(name)
	if !ok {
		return Screen{}, false
	}
	bucket := sec.Items(sub)

	h := Header{
		Title:    name,
		Subtitle: menu.DefaultLabel,
		Badge:    badge(len(bucket)),
		CanBack:  true,
	}
	if sub != menutree.Unnamed {
		h.Title, h.Subtitle = sub, name
	}

	s := Screen{Kind: route.Items, Section: name, Subsection: sub, Header: h}
	if len(bucket) == 0 {
		s.Empty = EmptyBucket
		return s, true
	}
	for _, it := range bucket {
		s.Rows = append(s.Rows, Row{
			Name:        it.Title,
			Price:       it.PriceText(d.CurrencyCode),
			Description: it.Description,
			Photo:       it.Photo,
		})
	}
	return s, true
}

func badge(n int) string {
	if n == 0 {
		return BadgeEmpty
	}
	return Count(n, "item")
}

// Count formats n with a singular or plural noun.
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Glyph is the upper-cased first character of name.
func Glyph(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return strings.ToUpper(string(r))
}
