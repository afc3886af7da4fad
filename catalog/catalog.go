// Package catalog reads gettext PO translation catalogs.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/chai2010/gettext-go/po"
)

// Catalog is the parsed content of a PO file, without its header
// entry.
type Catalog struct {
	Entries []*Entry
}

// Entry is a single message of a catalog. Obsolete entries
// are not represented.
type Entry struct {
	Context   string
	ID        string
	IDPlural  string
	Str       string
	StrPlural []string
	Flags     []string
}

func (e *Entry) Fuzzy() bool {
	return slices.Contains(e.Flags, "fuzzy")
}

// Translated reports whether e has a usable translation: it is
// not fuzzy and every msgstr form is non-empty.
func (e *Entry) Translated() bool {
	if e.Fuzzy() {
		return false
	}
	if e.IDPlural == "" {
		return e.Str != ""
	}
	if len(e.StrPlural) == 0 {
		return false
	}
	for _, s := range e.StrPlural {
		if s == "" {
			return false
		}
	}
	return true
}

// Translation returns the text that replaces ID: Str for singular
// entries and the first plural form otherwise.
func (e *Entry) Translation() string {
	if e.IDPlural != "" && len(e.StrPlural) > 0 {
		return e.StrPlural[0]
	}
	return e.Str
}

// Texts returns every original and translated string of e.
func (e *Entry) Texts() []string {
	texts := []string{e.ID}
	if e.IDPlural != "" {
		texts = append(texts, e.IDPlural)
	}
	texts = append(texts, e.Str)
	return append(texts, e.StrPlural...)
}

func (c *Catalog) Translated() []*Entry {
	var entries []*Entry
	for _, e := range c.Entries {
		if e.Translated() {
			entries = append(entries, e)
		}
	}
	return entries
}

// Untranslated returns the entries that lack a translation,
// excluding fuzzy entries.
func (c *Catalog) Untranslated() []*Entry {
	var entries []*Entry
	for _, e := range c.Entries {
		if !e.Translated() && !e.Fuzzy() {
			entries = append(entries, e)
		}
	}
	return entries
}

// Load parses the PO file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse reads a PO catalog from r.
func Parse(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	f, err := po.Load(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c := new(Catalog)
	for _, m := range f.Messages {
		// The header entry.
		if m.MsgId == "" && m.MsgContext == "" {
			continue
		}
		e := &Entry{
			Context:   m.MsgContext,
			ID:        m.MsgId,
			IDPlural:  m.MsgIdPlural,
			Str:       m.MsgStr,
			StrPlural: m.MsgStrPlural,
			Flags:     splitFlags(m.Comment.Flags),
		}
		for _, s := range e.Texts() {
			if !utf8.ValidString(s) {
				return nil, fmt.Errorf("catalog: msgid %q: invalid UTF-8 in %q", e.ID, s)
			}
		}
		c.Entries = append(c.Entries, e)
	}
	return c, nil
}

// splitFlags normalizes "#," flag comments to one trimmed flag
// per element.
func splitFlags(comments []string) []string {
	var flags []string
	for _, c := range comments {
		for _, f := range strings.Split(c, ",") {
			if f = strings.TrimSpace(f); f != "" {
				flags = append(flags, f)
			}
		}
	}
	return flags
}
