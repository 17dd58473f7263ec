package menuimport

import (
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Payload is the menu document the store accepts.
type Payload struct {
	Name         string `json:"name" yaml:"name"`
	CurrencyCode string `json:"currencyCode,omitempty" yaml:"currencyCode,omitempty"`
	Items        []Item `json:"items" yaml:"items"`
}

// Item is one menu entry in wire form.
type Item struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Section     string   `json:"section,omitempty" yaml:"section,omitempty"`
	Subsection  string   `json:"subsection,omitempty" yaml:"subsection,omitempty"`
}

// Options override what the document says about itself.
type Options struct {
	Name     string
	Currency string
}

// priceLine matches "Title <sep> 12.50" with an optional currency symbol
// before the number or a currency code after it.
var priceLine = regexp.MustCompile(
	`^(.*\S)(?:\s*(?:\.{2,}|…|-|–|:|\|)\s*|\s+)(?:[₺$€£]\s?)?(\d+(?:[.,]\d{1,2})?)\s*(?:[A-Z]{3}|TL|[₺$€£])?$`)

const titleTrim = " \t.…-–:|"

// Convert maps an outline onto a payload. A single heading that opens the
// document above all other heading levels names the menu; the shallowest
// remaining level becomes sections and anything deeper becomes subsections.
func Convert(o *Outline, opts Options) Payload {
	p := Payload{
		Name:         strings.TrimSpace(opts.Name),
		CurrencyCode: strings.ToUpper(strings.TrimSpace(opts.Currency)),
		Items:        []Item{},
	}

	blocks := o.Blocks
	levels := headingLevels(blocks)
	if len(levels) > 1 && opensWithTitle(blocks, levels[0]) {
		if p.Name == "" {
			p.Name = blocks[0].Text
		}
		blocks = blocks[1:]
		levels = levels[1:]
	}
	if p.Name == "" {
		p.Name = strings.TrimSpace(o.Title)
	}

	sectionLevel := 0
	if len(levels) > 0 {
		sectionLevel = levels[0]
	}

	var section, subsection string
	for _, b := range blocks {
		switch {
		case b.Level == 0:
			p.Items = append(p.Items, itemsFromBlock(b.Text, section, subsection)...)
		case b.Level <= sectionLevel:
			section, subsection = b.Text, ""
		default:
			subsection = b.Text
		}
	}

	p.Items = append(p.Items, o.Items...)
	return p
}

// itemsFromBlock reads one text block. A priced line always starts an item;
// an unpriced line starts one only at the top of the block and otherwise
// continues the current item's description.
func itemsFromBlock(text, section, subsection string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		line = stripBullet(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		title, price, ok := ParseLine(line)
		if !ok && len(items) > 0 {
			last := &items[len(items)-1]
			last.Description = strings.TrimSpace(last.Description + " " + line)
			continue
		}
		items = append(items, Item{
			Title:      title,
			Price:      price,
			Section:    section,
			Subsection: subsection,
		})
	}
	return items
}

// ParseLine splits a line into a title and a trailing price. ok is false
// when the line has no price; title is then the whole line.
func ParseLine(line string) (title string, price *float64, ok bool) {
	line = strings.TrimSpace(line)
	m := priceLine.FindStringSubmatch(line)
	if m == nil {
		return line, nil, false
	}
	title = strings.TrimRight(m[1], titleTrim)
	if title == "" {
		return line, nil, false
	}
	v, err := ParsePrice(m[2])
	if err != nil {
		return line, nil, false
	}
	return title, v, true
}

// ParsePrice reads a price written with a dot or comma decimal separator.
func ParsePrice(s string) (*float64, error) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return nil, err
	}
	f := d.InexactFloat64()
	return &f, nil
}

func stripBullet(line string) string {
	for _, b := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, b) {
			return strings.TrimSpace(line[len(b):])
		}
	}
	return line
}

func headingLevels(blocks []Block) []int {
	var levels []int
	for _, b := range blocks {
		if b.Level > 0 && !slices.Contains(levels, b.Level) {
			levels = append(levels, b.Level)
		}
	}
	slices.Sort(levels)
	return levels
}

func opensWithTitle(blocks []Block, level int) bool {
	if len(blocks) == 0 || blocks[0].Level != level {
		return false
	}
	n := 0
	for _, b := range blocks {
		if b.Level == level {
			n++
		}
	}
	return n == 1
}
