// Package table builds the U8Gettext data tables: the packed font,
// the character mapping and the per-language translations, and
// writes them as C source.
package table

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"u8gettext.org/bdf"
	"u8gettext.org/catalog"
)

// Table is the complete generated data.
type Table struct {
	// Mappings is sorted by rune.
	Mappings  []Mapping  `cbor:"1,keyasint"`
	Languages []Language `cbor:"2,keyasint"`
	// Font is the packed u8g font table.
	Font []byte `cbor:"3,keyasint"`
}

// Mapping assigns a local encoding to a character.
type Mapping struct {
	_        struct{} `cbor:",toarray"`
	Rune     rune
	Encoding uint8
}

type Language struct {
	Name         string        `cbor:"1,keyasint"`
	Translations []Translation `cbor:"2,keyasint"`
}

type Translation struct {
	_   struct{} `cbor:",toarray"`
	ID  string
	Str string
}

// NamedCatalog is a catalog with the language name derived from
// its file name.
type NamedCatalog struct {
	Name    string
	Catalog *catalog.Catalog
}

var ErrNoGlyph = errors.New("no glyph for character")

// LanguageName returns the base name of path without extension.
func LanguageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadCatalogs parses the catalogs at paths, in order.
func LoadCatalogs(paths []string) ([]NamedCatalog, error) {
	var cats []NamedCatalog
	for _, p := range paths {
		c, err := catalog.Load(p)
		if err != nil {
			return nil, err
		}
		cats = append(cats, NamedCatalog{Name: LanguageName(p), Catalog: c})
	}
	return cats, nil
}

// Build packs the glyphs for cs from font and gathers the
// translated entries of every catalog.
func Build(cs CharSet, font *bdf.Font, catalogs []NamedCatalog) (*Table, error) {
	data, mappings, err := PackFont(cs, font)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Mappings: mappings,
		Font:     data,
	}
	for _, c := range catalogs {
		lang := Language{Name: c.Name}
		for _, e := range c.Catalog.Translated() {
			lang.Translations = append(lang.Translations, Translation{
				ID:  e.ID,
				Str: e.Translation(),
			})
		}
		t.Languages = append(t.Languages, lang)
	}
	return t, nil
}

// Encoding returns the local encoding of r.
func (t *Table) Encoding(r rune) (uint8, bool) {
	i, found := sort.Find(len(t.Mappings), func(i int) int {
		m := t.Mappings[i].Rune
		switch {
		case r < m:
			return -1
		case r > m:
			return 1
		}
		return 0
	})
	if !found {
		return 0, false
	}
	return t.Mappings[i].Encoding, true
}

// Language returns the language named name.
func (t *Table) Language(name string) (*Language, bool) {
	for i := range t.Languages {
		if t.Languages[i].Name == name {
			return &t.Languages[i], true
		}
	}
	return nil, false
}
