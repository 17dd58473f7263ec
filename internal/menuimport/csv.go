package menuimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files with a header row. Recognized columns are
// section, subsection, title (or name), description and price, in any
// order and any case.
type CSVParser struct{}

var csvColumns = map[string]string{
	"section":     "section",
	"category":    "section",
	"subsection":  "subsection",
	"subcategory": "subsection",
	"title":       "title",
	"name":        "title",
	"item":        "title",
	"description": "description",
	"desc":        "description",
	"price":       "price",
}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Outline, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	o := &Outline{Title: stripExt(filename)}
	if len(records) == 0 {
		return o, nil
	}

	index := map[string]int{}
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if col, ok := csvColumns[name]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	if _, ok := index["title"]; !ok {
		return nil, fmt.Errorf("parse csv: no title column in header %q", strings.Join(records[0], ","))
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for n, row := range records[1:] {
		it := Item{
			Title:       cell(row, "title"),
			Description: cell(row, "description"),
			Section:     cell(row, "section"),
			Subsection:  cell(row, "subsection"),
		}
		if it.Title == "" {
			continue
		}
		if raw := cell(row, "price"); raw != "" {
			price, err := ParsePrice(strings.TrimLeft(raw, "₺$€£ "))
			if err != nil {
				return nil, fmt.Errorf("parse csv: row %d: invalid price %q", n+2, raw)
			}
			it.Price = price
		}
		o.Items = append(o.Items, it)
	}
	return o, nil
}
