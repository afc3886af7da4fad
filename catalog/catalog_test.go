package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const samplePO = `# French translations.
msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: fr\n"

#: main.c:10
msgid "hello"
msgstr "bonjour"

msgid "foo"
msgstr ""

#, fuzzy, c-format
msgid "%d apples"
msgstr "%d pommes"

msgctxt "menu"
msgid "Open"
msgstr "Ouvrir"

msgid "one file"
msgid_plural "%d files"
msgstr[0] "un fichier"
msgstr[1] "%d fichiers"

msgid ""
"multi "
"line"
msgstr "plusieurs\n"
"lignes\t\"é\" \\"
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(samplePO))
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{ID: "hello", Str: "bonjour"},
		{ID: "foo"},
		{ID: "%d apples", Str: "%d pommes", Flags: []string{"fuzzy", "c-format"}},
		{Context: "menu", ID: "Open", Str: "Ouvrir"},
		{ID: "one file", IDPlural: "%d files", StrPlural: []string{"un fichier", "%d fichiers"}},
		{ID: "multi line", Str: "plusieurs\nlignes\t\"é\" \\"},
	}
	checkEntries(t, c, want)
}

func checkEntries(t *testing.T, c *Catalog, want []Entry) {
	t.Helper()
	if len(c.Entries) != len(want) {
		t.Fatalf("got %d entries, expected %d", len(c.Entries), len(want))
	}
	for i, w := range want {
		got := c.Entries[i]
		if got.Context != w.Context || got.ID != w.ID || got.IDPlural != w.IDPlural ||
			got.Str != w.Str || !slices.Equal(got.StrPlural, w.StrPlural) ||
			!slices.Equal(got.Flags, w.Flags) {
			t.Errorf("entry %d: got %+v, expected %+v", i, *got, w)
		}
	}
}

func TestParseWhitespace(t *testing.T) {
	const po = "msgid\t\"a\"\nmsgstr\t\"b\"\n\nmsgid  \"c\"\nmsgstr   \"d\"\n"
	c, err := Parse(strings.NewReader(po))
	if err != nil {
		t.Fatal(err)
	}
	checkEntries(t, c, []Entry{
		{ID: "a", Str: "b"},
		{ID: "c", Str: "d"},
	})
}

func TestParseUTF8(t *testing.T) {
	// The encoding of é split across continuation lines.
	const split = "msgid \"e\"\nmsgstr \"\"\n\"\xc3\"\n\"\xa9\"\n"
	c, err := Parse(strings.NewReader(split))
	if err != nil {
		t.Fatal(err)
	}
	checkEntries(t, c, []Entry{{ID: "e", Str: "é"}})

	const invalid = "msgid \"e\"\nmsgstr \"\xff\"\n"
	if _, err := Parse(strings.NewReader(invalid)); err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Errorf("got error %v for invalid UTF-8, expected an UTF-8 error", err)
	}
}

func TestTranslationStatus(t *testing.T) {
	c, err := Parse(strings.NewReader(samplePO))
	if err != nil {
		t.Fatal(err)
	}
	ids := func(entries []*Entry) []string {
		var res []string
		for _, e := range entries {
			res = append(res, e.ID)
		}
		return res
	}
	if got, want := ids(c.Translated()), []string{"hello", "Open", "one file", "multi line"}; !slices.Equal(got, want) {
		t.Errorf("got translated %q, expected %q", got, want)
	}
	if got, want := ids(c.Untranslated()), []string{"foo"}; !slices.Equal(got, want) {
		t.Errorf("got untranslated %q, expected %q", got, want)
	}
	plural := c.Entries[4]
	if got := plural.Translation(); got != "un fichier" {
		t.Errorf("got plural translation %q, expected %q", got, "un fichier")
	}
	if got, want := plural.Texts(), []string{"one file", "%d files", "", "un fichier", "%d fichiers"}; !slices.Equal(got, want) {
		t.Errorf("got texts %q, expected %q", got, want)
	}
}

func TestPartialPlural(t *testing.T) {
	const po = `msgid "a"
msgid_plural "as"
msgstr[0] "x"
msgstr[1] ""
`
	c, err := Parse(strings.NewReader(po))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Entries) != 1 {
		t.Fatalf("got %d entries, expected 1", len(c.Entries))
	}
	if c.Entries[0].Translated() {
		t.Error("entry with an empty plural form reported as translated")
	}
}

func TestSplitFlags(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"fuzzy"}, []string{"fuzzy"}},
		{[]string{" fuzzy, c-format"}, []string{"fuzzy", "c-format"}},
		{[]string{"fuzzy", " no-wrap ", ""}, []string{"fuzzy", "no-wrap"}},
	}
	for _, test := range tests {
		if got := splitFlags(test.in); !slices.Equal(got, test.want) {
			t.Errorf("splitFlags(%q) = %q, expected %q", test.in, got, test.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fr.po")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbf"+samplePO), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Entries) != 6 {
		t.Errorf("got %d entries, expected 6", len(c.Entries))
	}
	bad := filepath.Join(dir, "bad.po")
	if err := os.WriteFile(bad, []byte("msgid \"a\"\nmsgstr \"\xff\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if err == nil || !strings.HasPrefix(err.Error(), bad+": catalog: ") {
		t.Errorf("got error %v, expected it to carry the path", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.po")); err == nil {
		t.Error("loaded a missing catalog")
	}
}
