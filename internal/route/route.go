// Package route parses and formats the URL hash that selects a viewer screen.
//
// Grammar, after stripping '#' and dropping empty '/'-separated segments:
//
//	(empty)                    Root
//	s/{section}                Subsections
//	s/{section}/ss/{sub...}    Items (remaining segments joined by '/')
//
// Any other shape is Root. Parsing never fails. A section hash with extra
// segments, such as s/{section}/extra or s/{section}/ss, is Root too; it does
// not fall back to the section screen.
package route

import (
	"net/url"
	"strings"
)

// Kind identifies a screen.
type Kind int

const (
	Root Kind = iota
	Subsections
	Items
)

func (k Kind) String() string {
	switch k {
	case Subsections:
		return "subsections"
	case Items:
		return "items"
	default:
		return "root"
	}
}

// Route is a parsed hash.
type Route struct {
	Kind       Kind
	Section    string
	Subsection string
}

// Parse reads a location hash. Undecodable escapes fall back to Root.
func Parse(hash string) Route {
	h := strings.TrimPrefix(hash, "#")
	var parts []string
	for _, p := range strings.Split(h, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 || parts[0] != "s" {
		return Route{Kind: Root}
	}
	sec, err := url.PathUnescape(parts[1])
	if err != nil || sec == "" {
		return Route{Kind: Root}
	}

	switch {
	case len(parts) == 2:
		return Route{Kind: Subsections, Section: sec}
	case len(parts) >= 4 && parts[2] == "ss":
		sub, err := url.PathUnescape(strings.Join(parts[3:], "/"))
		if err != nil {
			return Route{Kind: Root}
		}
		return Route{Kind: Items, Section: sec, Subsection: sub}
	}
	return Route{Kind: Root}
}

// Hash formats r as a location hash, including the leading '#'. Root is "".
func (r Route) Hash() string {
	switch r.Kind {
	case Subsections:
		return "#/s/" + escape(r.Section)
	case Items:
		return "#/s/" + escape(r.Section) + "/ss/" + escape(r.Subsection)
	default:
		return ""
	}
}

// SectionHash is the hash of a section's screen.
func SectionHash(section string) string {
	return Route{Kind: Subsections, Section: section}.Hash()
}

// ItemsHash is the hash of a (section, subsection) bucket.
func ItemsHash(section, subsection string) string {
	return Route{Kind: Items, Section: section, Subsection: subsection}.Hash()
}

// escape percent-encodes a segment; '/' is escaped so names containing it
// survive the split in Parse.
func escape(s string) string {
	return url.PathEscape(s)
}
