package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Defaults(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", "{", `"x"`, "{}"} {
		d := Decode([]byte(raw))
		assert.Equal(t, DefaultLabel, d.Name, "payload %q", raw)
		assert.Empty(t, d.Items, "payload %q", raw)
	}
}

func TestDecode_Normalization(t *testing.T) {
	raw := `{
		"name": "  Corner Cafe ",
		"currencyCode": " EUR ",
		"items": [
			{"title": "Espresso", "price": 2.5, "section": " Drinks ", "subsection": " Hot "},
			{"title": 7, "description": "lucky", "price": "3", "section": "   "},
			"not an item",
			{"title": "Water", "price": 0, "subsection": 12},
			{"title": "Bread", "price": null}
		]
	}`
	d := Decode([]byte(raw))
	assert.Equal(t, "Corner Cafe", d.Name)
	assert.Equal(t, "EUR", d.CurrencyCode)
	require.Len(t, d.Items, 4)

	esp := d.Items[0]
	assert.Equal(t, "Espresso", esp.Title)
	assert.Equal(t, "Drinks", esp.Section)
	assert.Equal(t, "Hot", esp.Subsection)
	assert.Equal(t, "2.5 EUR", esp.PriceText(d.CurrencyCode))

	seven := d.Items[1]
	assert.Equal(t, "7", seven.Title)
	assert.Equal(t, "lucky", seven.Description)
	assert.False(t, seven.HasPrice(), "string prices are ignored")
	assert.Equal(t, DefaultLabel, seven.Section)
	assert.Equal(t, "", seven.PriceText("EUR"))

	water := d.Items[2]
	assert.True(t, water.HasPrice())
	assert.Equal(t, "0 EUR", water.PriceText("EUR"))
	assert.Equal(t, "", water.Subsection)

	assert.False(t, d.Items[3].HasPrice(), "null price is absent")
}

func TestDecode_NonArrayItems(t *testing.T) {
	d := Decode([]byte(`{"name":"X","items":{"a":1}}`))
	assert.Equal(t, "X", d.Name)
	assert.Empty(t, d.Items)
}

func TestDecode_NonObjectEntriesSkipped(t *testing.T) {
	d := Decode([]byte(`{"items":[null,1,"x",[],{"title":"Tea"}]}`))
	require.Len(t, d.Items, 1)
	assert.Equal(t, "Tea", d.Items[0].Title)
	assert.Equal(t, DefaultLabel, d.Items[0].Section)
}

func TestPriceText(t *testing.T) {
	p := func(f float64) *float64 { return &f }
	a, b := 0.1, 0.2
	cases := []struct {
		price    *float64
		currency string
		want     string
	}{
		{p(12), "TRY", "12 TRY"},
		{p(12.5), "", "12.5"},
		{p(a + b), "USD", "0.30000000000000004 USD"},
		{p(-3), "", "-3"},
		{p(1e21), "", "1e+21"},
		{p(-2.5e22), "", "-2.5e+22"},
		{p(123456789012345680000), "", "123456789012345680000"},
		{nil, "TRY", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Item{Price: c.price}.PriceText(c.currency))
	}
}

func TestPhotoValidation(t *testing.T) {
	ok := "data:image/png;base64,AAAA"
	cases := map[string]string{
		ok:                         ok,
		"  " + ok + "  ":           ok,
		"https://example.com/a.png": "",
		"data:text/html;base64,AA":  "",
		"data:image/" + strings.Repeat("a", MaxPhotoLength): "",
	}
	for in, want := range cases {
		d := Decode([]byte(`{"items":[{"title":"x","photoDataUrl":` + quote(in) + `}]}`))
		require.Len(t, d.Items, 1)
		assert.Equal(t, want, d.Items[0].Photo)
	}

	exact := "data:image/" + strings.Repeat("a", MaxPhotoLength-len("data:image/"))
	d := Decode([]byte(`{"items":[{"photoDataUrl":` + quote(exact) + `}]}`))
	assert.Equal(t, exact, d.Items[0].Photo, "a reference at the limit is kept")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
