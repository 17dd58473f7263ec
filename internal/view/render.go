package view

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Body builds the node tree for a screen's content.
func Body(s Screen) *html.Node {
	switch {
	case s.Empty != "":
		card := Element("div", "list-card")
		card.AppendChild(Element("div", "empty", Text(s.Empty)))
		return card
	case len(s.Rows) > 0:
		card := Element("div", "list-card")
		for _, r := range s.Rows {
			card.AppendChild(row(r))
		}
		return card
	default:
		grid := Element("div", "grid")
		for _, t := range s.Tiles {
			grid.AppendChild(tile(t))
		}
		return grid
	}
}

// Render writes the screen's content markup to w.
func Render(w io.Writer, s Screen) error {
	return html.Render(w, Body(s))
}

// Markup returns the screen's content markup.
func Markup(s Screen) string {
	var buf bytes.Buffer
	_ = Render(&buf, s)
	return buf.String()
}

func tile(t Tile) *html.Node {
	a := Element("a", "card tile")
	a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: t.Href})

	glyph := "glyph"
	if t.Alt {
		glyph = "glyph alt"
	}
	a.AppendChild(Element("div", glyph, Text(t.Glyph)))
	a.AppendChild(Element("div", "tile-main",
		Element("div", "tile-title", Text(t.Title)),
		Element("div", "tile-meta", Text(t.Meta)),
	))
	a.AppendChild(Element("div", "chev", Text("›")))
	return a
}

func row(r Row) *html.Node {
	var thumb *html.Node
	if r.Photo != "" {
		thumb = Element("img", "thumb")
		thumb.Attr = append(thumb.Attr,
			html.Attribute{Key: "src", Val: r.Photo},
			html.Attribute{Key: "alt", Val: ""},
			html.Attribute{Key: "loading", Val: "lazy"},
		)
	} else {
		thumb = Element("div", "thumb ph", Text(PhotoPlaceholder))
	}

	body := Element("div", "item-body",
		Element("div", "row",
			Element("div", "name", Text(r.Name)),
			Element("div", "price", Text(r.Price)),
		),
	)
	if r.Description != "" {
		body.AppendChild(Element("div", "desc", Text(r.Description)))
	}

	return Element("div", "item", Element("div", "item-head", thumb, body))
}

// Element creates an element with an optional class and children.
func Element(tag, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Text creates a text node. Escaping happens at render time.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
