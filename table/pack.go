package table

import (
	"errors"
	"fmt"
	"math"

	"u8gettext.org/bdf"
	"u8gettext.org/u8g"
)

// PackFont encodes the glyphs of the characters in cs, in ascending
// order, as a u8g font table. The i'th character is assigned local
// encoding u8g.FirstEncoding+i.
func PackFont(cs CharSet, font *bdf.Font) ([]byte, []Mapping, error) {
	runes := cs.Sorted()
	if len(runes) > u8g.MaxGlyphs {
		return nil, nil, fmt.Errorf("%d characters exceed the %d glyphs of an 8-bit encoding", len(runes), u8g.MaxGlyphs)
	}
	if len(font.Glyphs) == 0 {
		return nil, nil, errors.New("font has no glyphs")
	}
	descent, err := font.Properties.Int("FONT_DESCENT")
	if err != nil {
		return nil, nil, err
	}
	ascent, err := font.Properties.Int("FONT_ASCENT")
	if err != nil {
		return nil, nil, err
	}
	var n narrower
	first := font.Glyphs[0]
	h := u8g.Header{
		Width:         n.u8("width", first.Width),
		Height:        n.u8("height", first.Height),
		BearingX:      n.s8("bearing x", first.BearingX),
		BearingY:      n.s8("bearing y", first.BearingY),
		EncodingStart: u8g.FirstEncoding,
		EncodingEnd:   uint8(u8g.FirstEncoding + len(runes)),
		DescentP:      n.s8("FONT_DESCENT", descent),
		Ascent:        n.s8("FONT_ASCENT", ascent),
		Descent:       n.s8("FONT_DESCENT", descent),
	}
	if a, ok := font.Glyph('A'); ok {
		h.CapitalAHeight = n.u8("capital A height", a.Height)
	}
	if n.err != nil {
		return nil, nil, fmt.Errorf("font header: %w", n.err)
	}
	data := u8g.AppendHeader(nil, h)
	mappings := make([]Mapping, 0, len(runes))
	for i, r := range runes {
		g, ok := font.Glyph(r)
		if !ok {
			return nil, nil, fmt.Errorf("%w %U %q", ErrNoGlyph, r, r)
		}
		bitmap, err := g.Bitmap()
		if err != nil {
			return nil, nil, err
		}
		ug := u8g.Glyph{
			Width:    n.u8("width", g.Width),
			Height:   n.u8("height", g.Height),
			Advance:  n.s8("width", g.Width),
			BearingX: n.s8("bearing x", g.BearingX),
			BearingY: n.s8("bearing y", g.BearingY),
			Bitmap:   bitmap,
		}
		if n.err != nil {
			return nil, nil, fmt.Errorf("glyph %U: %w", r, n.err)
		}
		data, err = u8g.AppendGlyph(data, ug)
		if err != nil {
			return nil, nil, fmt.Errorf("glyph %U: %w", r, err)
		}
		mappings = append(mappings, Mapping{
			Rune:     r,
			Encoding: uint8(u8g.FirstEncoding + i),
		})
	}
	return data, mappings, nil
}

// narrower converts font metrics to table fields and records the
// first value that does not fit.
type narrower struct {
	err error
}

func (n *narrower) u8(field string, v int) uint8 {
	if (v < 0 || v > math.MaxUint8) && n.err == nil {
		n.err = fmt.Errorf("%s %d out of range [0,%d]", field, v, math.MaxUint8)
	}
	return uint8(v)
}

func (n *narrower) s8(field string, v int) int8 {
	if (v < math.MinInt8 || v > math.MaxInt8) && n.err == nil {
		n.err = fmt.Errorf("%s %d out of range [%d,%d]", field, v, math.MinInt8, math.MaxInt8)
	}
	return int8(v)
}
