package menutree

import (
	"testing"

	"github.com/dgallion1/menushare/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(items []menu.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestBuild_Grouping(t *testing.T) {
	d := menu.Decode([]byte(`{"items":[
		{"section":"Drinks","title":"A"},
		{"section":"Drinks","subsection":"Hot","title":"B"},
		{"title":"C"}
	]}`))
	tree := Build(d.Items)

	require.Equal(t, 2, tree.Len())
	assert.Equal(t, "Drinks", tree.Sections()[0].Name)
	assert.Equal(t, "Menu", tree.Sections()[1].Name)

	drinks, ok := tree.Section("Drinks")
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, titles(drinks.Items(Unnamed)))
	assert.Equal(t, []string{"B"}, titles(drinks.Items("Hot")))
	assert.Equal(t, []string{"", "Hot"}, drinks.Keys())
	assert.Equal(t, []string{"Hot"}, drinks.Named())

	other, ok := tree.Section("Menu")
	require.True(t, ok)
	assert.Equal(t, []string{"C"}, titles(other.Items(Unnamed)))
	assert.Equal(t, 3, tree.ItemCount())
}

func TestBuild_FirstOccurrenceOrder(t *testing.T) {
	items := []menu.Item{
		{Title: "1", Section: "B", Subsection: "y"},
		{Title: "2", Section: "A"},
		{Title: "3", Section: "B", Subsection: "x"},
		{Title: "4", Section: "B", Subsection: "y"},
		{Title: "5", Section: "A", Subsection: "z"},
	}
	tree := Build(items)

	var names []string
	for _, s := range tree.Sections() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"B", "A"}, names)

	b, _ := tree.Section("B")
	assert.Equal(t, []string{"y", "x"}, b.Keys())
	assert.Equal(t, []string{"1", "4"}, titles(b.Items("y")))
	assert.Equal(t, 3, b.ItemCount())

	a, _ := tree.Section("A")
	assert.Equal(t, []string{"", "z"}, a.Keys())
}

func TestBuild_Deterministic(t *testing.T) {
	items := []menu.Item{
		{Title: "1", Section: "S", Subsection: "a"},
		{Title: "2", Section: "T"},
		{Title: "3", Section: "S"},
	}
	first, second := Build(items), Build(items)
	require.Equal(t, first.Len(), second.Len())
	for i, s := range first.Sections() {
		o := second.Sections()[i]
		assert.Equal(t, s.Name, o.Name)
		assert.Equal(t, s.Keys(), o.Keys())
		for _, k := range s.Keys() {
			assert.Equal(t, titles(s.Items(k)), titles(o.Items(k)))
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	tree := Build(nil)
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.ItemCount())
	_, ok := tree.Section("Menu")
	assert.False(t, ok)
}

func TestSection_UnknownKey(t *testing.T) {
	tree := Build([]menu.Item{{Title: "x", Section: "S"}})
	s, _ := tree.Section("S")
	assert.Empty(t, s.Items("nope"))
}
