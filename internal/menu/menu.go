// Package menu decodes the author-supplied menu payload into the shape the
// viewer renders. Decoding is lenient: the payload is arbitrary JSON and
// anything unexpected is dropped rather than reported.
package menu

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultLabel names the section of items without one, and stands in
	// for a missing menu name.
	DefaultLabel = "Menu"

	// MaxPhotoLength is the longest inline photo reference that is shown.
	MaxPhotoLength = 900_000

	photoPrefix = "data:image/"
)

// Data is the normalized menu.
type Data struct {
	Name         string
	CurrencyCode string
	Items        []Item
}

// Item is one normalized menu entry.
type Item struct {
	Title       string
	Description string
	Price       *float64
	Section     string
	Subsection  string
	Photo       string
}

// HasPrice reports whether the item carries a numeric price.
func (it Item) HasPrice() bool { return it.Price != nil }

// PriceText formats the price followed by the currency code, or "" when the
// item has no price.
func (it Item) PriceText(currency string) string {
	if it.Price == nil {
		return ""
	}
	return strings.TrimSpace(FormatNumber(*it.Price) + " " + currency)
}

// FormatNumber prints f in its shortest decimal form (12 → "12", 12.5 → "12.5").
// Magnitudes of 1e21 and above switch to exponent form ("1e+21").
func FormatNumber(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return decimal.NewFromFloat(f).String()
}

// Decode normalizes a raw payload. It never fails; a payload that isn't a
// JSON object decodes to an empty, unnamed menu.
func Decode(raw []byte) Data {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Data{Name: DefaultLabel}
	}

	d := Data{
		Name:         text(obj["name"]),
		CurrencyCode: text(obj["currencyCode"]),
	}
	if d.Name == "" {
		d.Name = DefaultLabel
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(obj["items"], &entries); err != nil {
		return d
	}
	for _, e := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}
		d.Items = append(d.Items, decodeItem(fields))
	}
	return d
}

func decodeItem(f map[string]json.RawMessage) Item {
	it := Item{
		Title:       display(f["title"]),
		Description: display(f["description"]),
		Price:       number(f["price"]),
		Section:     text(f["section"]),
		Subsection:  text(f["subsection"]),
		Photo:       photo(text(f["photoDataUrl"])),
	}
	if it.Section == "" {
		it.Section = DefaultLabel
	}
	return it
}

// text returns a trimmed JSON string, or "" for any other JSON type.
func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// display returns strings untouched and numbers formatted; everything else
// is blank.
func display(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if n := number(raw); n != nil {
		return FormatNumber(*n)
	}
	return ""
}

func number(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

func photo(s string) string {
	if !strings.HasPrefix(s, photoPrefix) || len(s) > MaxPhotoLength {
		return ""
	}
	return s
}
