// Package fonttest generates synthetic BDF fonts for tests.
package fonttest

import (
	"fmt"
	"strings"
)

const (
	Ascent  = 6
	Descent = 2
)

// ASCII returns the printable ASCII characters.
func ASCII() []rune {
	var runes []rune
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}
	return runes
}

// Size returns the glyph dimensions of r in fonts generated by BDF.
// ASCII glyphs are 6x8 and the rest are 12x12.
func Size(r rune) (width, height int) {
	if r < 0x80 {
		return 6, 8
	}
	return 12, 12
}

// Row returns row y of the bitmap for r.
func Row(r rune, y int) []byte {
	w, _ := Size(r)
	if w <= 8 {
		return []byte{byte(int(r)+y) & 0xfc}
	}
	v := uint16(int(r)*(y+1)) & 0xfff0
	return []byte{byte(v >> 8), byte(v)}
}

// BDF returns a font with a glyph for every rune. Glyphs are
// written in the order given.
func BDF(runes ...rune) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STARTFONT 2.1\nFONT -test-synthetic-medium-r-normal--12-120-75-75-c-60-iso10646-1\n")
	fmt.Fprintf(&b, "SIZE 12 75 75\nFONTBOUNDINGBOX 12 12 0 -2\n")
	fmt.Fprintf(&b, "STARTPROPERTIES 3\nFONT_ASCENT %d\nFONT_DESCENT %d\nFAMILY_NAME \"Synthetic\"\nENDPROPERTIES\n", Ascent, Descent)
	fmt.Fprintf(&b, "CHARS %d\n", len(runes))
	for _, r := range runes {
		w, h := Size(r)
		fmt.Fprintf(&b, "STARTCHAR U+%04X\nENCODING %d\nDWIDTH %d 0\nBBX %d %d 0 -2\nBITMAP\n", r, r, w+1, w, h)
		for y := 0; y < h; y++ {
			fmt.Fprintf(&b, "%X\n", Row(r, y))
		}
		b.WriteString("ENDCHAR\n")
	}
	b.WriteString("ENDFONT\n")
	return b.String()
}
