package table

import (
	"slices"
)

// CharSet is a set of characters needing a glyph.
type CharSet map[rune]struct{}

// NewCharSet returns a set holding the printable ASCII characters.
func NewCharSet() CharSet {
	cs := make(CharSet)
	for r := rune(32); r <= 126; r++ {
		cs[r] = struct{}{}
	}
	return cs
}

func (cs CharSet) AddString(s string) {
	for _, r := range s {
		cs[r] = struct{}{}
	}
}

func (cs CharSet) Contains(r rune) bool {
	_, ok := cs[r]
	return ok
}

// Sorted returns the characters in ascending order.
func (cs CharSet) Sorted() []rune {
	runes := make([]rune, 0, len(cs))
	for r := range cs {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

// Collect returns the printable ASCII characters and the characters
// of every original and translated string of every entry, whether
// translated or not.
func Collect(catalogs []NamedCatalog) CharSet {
	cs := NewCharSet()
	for _, c := range catalogs {
		for _, e := range c.Catalog.Entries {
			for _, s := range e.Texts() {
				cs.AddString(s)
			}
		}
	}
	return cs
}
