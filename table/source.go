package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const prologue = `/*
 * Auto generated by u8gettext-gen. DO NOT EDIT.
 */

#include <U8Gettext.h>
#include <U8glib.h>

#ifndef ITEM_COUNT_OF_ARRAY
#define ITEM_COUNT_OF_ARRAY(array) (sizeof((array)) / sizeof((array)[0]))
#endif // #ifndef ITEM_COUNT_OF_ARRAY

`

const epilogue = `
const U8GettextContext __gU8GettextContext =
{
	sLanguages,
	&sLanguagesLength,
	sFont,
	&sFontEncodingCount,
	sCharMappings,
	&sCharMappingCount,
};
`

// WriteFile writes the C source of t to path, replacing any
// existing file.
func WriteFile(path string, t *Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSource(f, t)
}

// WriteSource writes t as C source for the U8Gettext library.
func WriteSource(w io.Writer, t *Table) error {
	idents := make(map[string]string)
	for _, l := range t.Languages {
		id := cIdent(l.Name)
		if prev, ok := idents[id]; ok {
			return fmt.Errorf("languages %q and %q have the same identifier %q", prev, l.Name, id)
		}
		idents[id] = l.Name
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(prologue)

	bw.WriteString("static const U8GettextCharMapping sCharMappings[] U8G_SECTION(\".progmem.U8GettextsCharMappings\") =\n{\n")
	for _, m := range t.Mappings {
		fmt.Fprintf(bw, "\t{0x%08X, 0x%02X,},\n", m.Rune, m.Encoding)
	}
	bw.WriteString("};\n")
	bw.WriteString("static const size_t sCharMappingCount = ITEM_COUNT_OF_ARRAY(sCharMappings);\n")

	for i, l := range t.Languages {
		writeLanguage(bw, i, l)
	}

	bw.WriteString("\nstatic const U8GettextLanguage sLanguages[] =\n{\n")
	for _, l := range t.Languages {
		id := cIdent(l.Name)
		fmt.Fprintf(bw, "\t{\"%s\", sTranslations%s, &sTranslationsLength%s},\n", EncodeCString(l.Name), id, id)
	}
	if len(t.Languages) == 0 {
		bw.WriteString("\t{NULL, NULL, NULL},\n")
	}
	bw.WriteString("};\n")
	fmt.Fprintf(bw, "static const size_t sLanguagesLength = %s;\n", countOf("sLanguages", len(t.Languages)))

	bw.WriteString("\nstatic const u8g_fntpgm_uint8_t sFont[] U8G_SECTION(\".progmem.U8GettextsFont\") =\n{\n")
	for i, b := range t.Font {
		switch {
		case i%16 == 0:
			bw.WriteString("  ")
		default:
			bw.WriteString(" ")
		}
		fmt.Fprintf(bw, "0x%02X,", b)
		if i%16 == 15 || i == len(t.Font)-1 {
			bw.WriteString("\n")
		}
	}
	bw.WriteString("};\n")
	bw.WriteString("static const size_t sFontEncodingCount = ITEM_COUNT_OF_ARRAY(sFont);\n")

	bw.WriteString(epilogue)
	return bw.Flush()
}

func writeLanguage(bw *bufio.Writer, idx int, l Language) {
	id := cIdent(l.Name)
	if name := displayName(l.Name); name != "" {
		fmt.Fprintf(bw, "\n/* %s: %s */\n", EncodeCString(l.Name), EncodeCString(name))
	} else {
		bw.WriteString("\n")
	}
	// Every string is a separate variable so that the compiler
	// places it in program memory.
	for j, tr := range l.Translations {
		fmt.Fprintf(bw, "static const char sMsgId%d_%d[] PROGMEM = \"%s\";\n", idx, j, EncodeCString(tr.ID))
		fmt.Fprintf(bw, "static const char sMsgStr%d_%d[] PROGMEM = \"%s\";\n", idx, j, EncodeCString(tr.Str))
	}
	fmt.Fprintf(bw, "static const U8GettextTranslation sTranslations%s[] U8G_SECTION(\".progmem.U8GettextsTranslations\") =\n{\n", id)
	for j := range l.Translations {
		fmt.Fprintf(bw, "\t{(const U8GFChar*)&sMsgId%d_%d[0], (const U8GFChar*)&sMsgStr%d_%d[0]},\n", idx, j, idx, j)
	}
	if len(l.Translations) == 0 {
		// Zero-length arrays are not valid C.
		bw.WriteString("\t{NULL, NULL},\n")
	}
	bw.WriteString("};\n")
	fmt.Fprintf(bw, "static const size_t sTranslationsLength%s = %s;\n", id, countOf("sTranslations"+id, len(l.Translations)))
}

func countOf(array string, n int) string {
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("ITEM_COUNT_OF_ARRAY(%s)", array)
}

// EncodeCString escapes s for a C string literal. Printable ASCII
// is kept, except for quotes and backslashes, and every other byte
// becomes a three digit octal escape. Hex escapes are avoided
// because they absorb any hex digits that follow them.
func EncodeCString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		// Quotes and backslashes would end the literal or start an
		// escape, so they are escaped like unprintable bytes.
		if 32 <= c && c <= 126 && c != '"' && c != '\\' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "\\%03o", c)
		}
	}
	return b.String()
}

// cIdent maps a language name to a C identifier suffix.
func cIdent(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}

// displayName returns the English name of the language tag
// lang, or the empty string if lang is not a known tag.
func displayName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	return display.Tags(language.English).Name(tag)
}
