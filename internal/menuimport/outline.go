package menuimport

import "strings"

// Outline is the document structure parsers agree on: a flat sequence of
// headings and text blocks, plus any rows that arrived already structured.
type Outline struct {
	Title  string  // from metadata or filename
	Blocks []Block // in document order
	Items  []Item  // structured rows (CSV)
}

// Block is a heading (Level > 0) or a text block (Level == 0). Text blocks
// keep their line breaks; a block boundary ends an item's description.
type Block struct {
	Level int
	Text  string
}

func (o *Outline) heading(level int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	o.Blocks = append(o.Blocks, Block{Level: level, Text: text})
}

func (o *Outline) text(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	o.Blocks = append(o.Blocks, Block{Text: text})
}
