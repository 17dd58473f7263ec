package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		hash string
		want Route
	}{
		{"", Route{Kind: Root}},
		{"#", Route{Kind: Root}},
		{"#/", Route{Kind: Root}},
		{"#/s/Drinks", Route{Kind: Subsections, Section: "Drinks"}},
		{"/s/Drinks", Route{Kind: Subsections, Section: "Drinks"}},
		{"#//s//Drinks//", Route{Kind: Subsections, Section: "Drinks"}},
		{"#/s/Hot%20Drinks", Route{Kind: Subsections, Section: "Hot Drinks"}},
		{"#/s/%C3%87ay", Route{Kind: Subsections, Section: "Çay"}},
		{"#/s/Drinks/ss/Hot", Route{Kind: Items, Section: "Drinks", Subsection: "Hot"}},
		{"#/s/Drinks/ss/Hot/Iced", Route{Kind: Items, Section: "Drinks", Subsection: "Hot/Iced"}},
		{"#/s/Drinks/ss/a%2Fb", Route{Kind: Items, Section: "Drinks", Subsection: "a/b"}},
		{"#/s", Route{Kind: Root}},
		{"#/x/Drinks", Route{Kind: Root}},
		{"#/s/Drinks/ss", Route{Kind: Root}},
		{"#/s/Drinks/zz/Hot", Route{Kind: Root}},
		{"#/s/Drinks/extra", Route{Kind: Root}},
		{"#/s/%ZZ", Route{Kind: Root}},
		{"#/s/Drinks/ss/%E0%A4%A", Route{Kind: Root}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Parse(c.hash), "hash %q", c.hash)
	}
}

func TestHash_RoundTrip(t *testing.T) {
	routes := []Route{
		{Kind: Root},
		{Kind: Subsections, Section: "Drinks"},
		{Kind: Subsections, Section: "Fish & Chips"},
		{Kind: Items, Section: "Drinks", Subsection: "Hot"},
		{Kind: Items, Section: "Tatlılar", Subsection: "Sütlü / Soğuk"},
		{Kind: Items, Section: "100%", Subsection: "#1?"},
	}
	for _, r := range routes {
		assert.Equal(t, r, Parse(r.Hash()), "hash %q", r.Hash())
	}
}

func TestHash_Format(t *testing.T) {
	assert.Equal(t, "", Route{Kind: Root}.Hash())
	assert.Equal(t, "#/s/Drinks", SectionHash("Drinks"))
	assert.Equal(t, "#/s/Drinks/ss/Hot%20Tea", ItemsHash("Drinks", "Hot Tea"))
	assert.Equal(t, "#/s/a%2Fb", SectionHash("a/b"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "root", Root.String())
	assert.Equal(t, "subsections", Subsections.String())
	assert.Equal(t, "items", Items.String())
}
