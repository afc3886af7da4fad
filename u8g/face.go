package u8g

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face reads a packed font table. It implements [font.Face] by
// mapping runes to local encodings.
type Face struct {
	header Header
	glyphs []Glyph
	encode func(r rune) (uint8, bool)
}

var _ font.Face = (*Face)(nil)

// NewFace decodes a font table. The encode function maps runes
// to local encodings; a nil encode uses the rune value itself.
func NewFace(data []byte, encode func(r rune) (uint8, bool)) (*Face, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if h.EncodingEnd < h.EncodingStart {
		return nil, fmt.Errorf("u8g: invalid encoding range [%d,%d)", h.EncodingStart, h.EncodingEnd)
	}
	f := &Face{header: h, encode: encode}
	data = data[HeaderSize:]
	for enc := int(h.EncodingStart); enc < int(h.EncodingEnd); enc++ {
		g, n, err := DecodeGlyph(data)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", enc, err)
		}
		f.glyphs = append(f.glyphs, g)
		data = data[n:]
	}
	if len(data) > 0 {
		return nil, fmt.Errorf("u8g: %d trailing bytes", len(data))
	}
	if f.encode == nil {
		f.encode = func(r rune) (uint8, bool) {
			return uint8(r), 0 <= r && r <= 0xff
		}
	}
	return f, nil
}

// Len returns the number of glyphs.
func (f *Face) Len() int {
	return len(f.glyphs)
}

// GlyphAt returns the glyph with local encoding enc.
func (f *Face) GlyphAt(enc uint8) (Glyph, bool) {
	i := int(enc) - int(f.header.EncodingStart)
	if i < 0 || i >= len(f.glyphs) {
		return Glyph{}, false
	}
	return f.glyphs[i], true
}

func (f *Face) lookup(r rune) (Glyph, bool) {
	enc, ok := f.encode(r)
	if !ok {
		return Glyph{}, false
	}
	return f.GlyphAt(enc)
}

func (f *Face) Close() error { return nil }

func (f *Face) Metrics() font.Metrics {
	asc := int(f.header.Ascent)
	desc := int(f.header.Descent)
	if desc < 0 {
		desc = -desc
	}
	return font.Metrics{
		Height:    fixed.I(asc + desc),
		Ascent:    fixed.I(asc),
		Descent:   fixed.I(desc),
		CapHeight: fixed.I(int(f.header.CapitalAHeight)),
	}
}

func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f *Face) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	g, ok := f.lookup(r)
	if !ok {
		return 0, false
	}
	return fixed.I(int(g.Advance)), true
}

// bounds returns the bitmap rectangle of g relative to the dot,
// with y growing downwards.
func bounds(g Glyph) image.Rectangle {
	x0 := int(g.BearingX)
	y0 := -(int(g.BearingY) + int(g.Height))
	return image.Rect(x0, y0, x0+int(g.Width), y0+int(g.Height))
}

func (f *Face) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	g, ok := f.lookup(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	b := bounds(g)
	return fixed.R(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y), fixed.I(int(g.Advance)), true
}

func (f *Face) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	g, ok := f.lookup(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	mask := image.NewAlpha(image.Rect(0, 0, int(g.Width), int(g.Height)))
	for y := 0; y < int(g.Height); y++ {
		for x := 0; x < int(g.Width); x++ {
			if g.Pixel(x, y) {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	dr := bounds(g).Add(image.Pt(dot.X.Round(), dot.Y.Round()))
	return dr, mask, image.Point{}, fixed.I(int(g.Advance)), true
}
