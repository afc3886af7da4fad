// Package u8g implements the u8glib font table format used by
// U8Gettext. A table is a header followed by one record per
// glyph, ordered by local encoding.
package u8g

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	HeaderSize      = 17
	GlyphHeaderSize = 6

	// FirstEncoding is the local encoding of the first glyph. Zero
	// terminates strings on the device.
	FirstEncoding = 1
	// MaxGlyphs is the largest number of glyphs whose encoding
	// range end fits the header.
	MaxGlyphs = math.MaxUint8 - FirstEncoding
)

const (
	offFormat        = 0
	offWidth         = 1
	offHeight        = 2
	offBearingX      = 3
	offBearingY      = 4
	offCapitalHeight = 5
	offCapitalStart  = 6
	offLowerStart    = 8
	offEncodingStart = 10
	offEncodingEnd   = 11
	offDescentP      = 12
	offAscent        = 13
	offDescent       = 14
	offXAscent       = 15
	offXDescent      = 16

	offGlyphWidth    = 0
	offGlyphHeight   = 1
	offGlyphSize     = 2
	offGlyphAdvance  = 3
	offGlyphBearingX = 4
	offGlyphBearingY = 5
)

var bo = binary.BigEndian

// Header holds the font-wide metrics.
type Header struct {
	Width, Height      uint8
	BearingX, BearingY int8
	CapitalAHeight     uint8
	// CapitalAStart and LowerAStart are offsets of the 'A' and 'a'
	// glyph records.
	CapitalAStart, LowerAStart uint16
	// Glyphs are encoded in [EncodingStart, EncodingEnd).
	EncodingStart, EncodingEnd uint8
	// DescentP is the descent of 'p'.
	DescentP          int8
	Ascent, Descent   int8
	XAscent, XDescent int8
}

type Glyph struct {
	Width, Height uint8
	// Advance is stored signed.
	Advance            int8
	BearingX, BearingY int8
	// Bitmap is row-major, most significant bit first, with
	// byte-aligned rows.
	Bitmap []byte
}

// BitmapSize returns the number of bytes in the bitmap of a
// width×height glyph.
func BitmapSize(width, height int) int {
	return (width + 7) / 8 * height
}

func AppendHeader(b []byte, h Header) []byte {
	b = append(b,
		0,
		h.Width, h.Height,
		byte(h.BearingX), byte(h.BearingY),
		h.CapitalAHeight,
	)
	b = bo.AppendUint16(b, h.CapitalAStart)
	b = bo.AppendUint16(b, h.LowerAStart)
	return append(b,
		h.EncodingStart, h.EncodingEnd,
		byte(h.DescentP), byte(h.Ascent), byte(h.Descent),
		byte(h.XAscent), byte(h.XDescent),
	)
}

// AppendGlyph appends the record of g. The bitmap size is
// stored in a byte and must match the glyph dimensions.
func AppendGlyph(b []byte, g Glyph) ([]byte, error) {
	size := BitmapSize(int(g.Width), int(g.Height))
	if len(g.Bitmap) != size {
		return nil, fmt.Errorf("u8g: %dx%d glyph has %d bitmap bytes, expected %d", g.Width, g.Height, len(g.Bitmap), size)
	}
	if size > math.MaxUint8 {
		return nil, fmt.Errorf("u8g: %dx%d glyph bitmap too large (%d bytes)", g.Width, g.Height, size)
	}
	b = append(b,
		g.Width, g.Height, byte(size),
		byte(g.Advance), byte(g.BearingX), byte(g.BearingY),
	)
	return append(b, g.Bitmap...), nil
}

func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errors.New("u8g: truncated header")
	}
	if f := data[offFormat]; f != 0 {
		return Header{}, fmt.Errorf("u8g: unsupported format %d", f)
	}
	return Header{
		Width:          data[offWidth],
		Height:         data[offHeight],
		BearingX:       int8(data[offBearingX]),
		BearingY:       int8(data[offBearingY]),
		CapitalAHeight: data[offCapitalHeight],
		CapitalAStart:  bo.Uint16(data[offCapitalStart:]),
		LowerAStart:    bo.Uint16(data[offLowerStart:]),
		EncodingStart:  data[offEncodingStart],
		EncodingEnd:    data[offEncodingEnd],
		DescentP:       int8(data[offDescentP]),
		Ascent:         int8(data[offAscent]),
		Descent:        int8(data[offDescent]),
		XAscent:        int8(data[offXAscent]),
		XDescent:       int8(data[offXDescent]),
	}, nil
}

// DecodeGlyph decodes the glyph record at the start of data and
// returns its length.
func DecodeGlyph(data []byte) (Glyph, int, error) {
	if len(data) < GlyphHeaderSize {
		return Glyph{}, 0, errors.New("u8g: truncated glyph header")
	}
	g := Glyph{
		Width:    data[offGlyphWidth],
		Height:   data[offGlyphHeight],
		Advance:  int8(data[offGlyphAdvance]),
		BearingX: int8(data[offGlyphBearingX]),
		BearingY: int8(data[offGlyphBearingY]),
	}
	size := int(data[offGlyphSize])
	if want := BitmapSize(int(g.Width), int(g.Height)); size != want {
		return Glyph{}, 0, fmt.Errorf("u8g: %dx%d glyph has bitmap size %d, expected %d", g.Width, g.Height, size, want)
	}
	n := GlyphHeaderSize + size
	if len(data) < n {
		return Glyph{}, 0, errors.New("u8g: truncated glyph bitmap")
	}
	g.Bitmap = data[GlyphHeaderSize:n]
	return g, n, nil
}

// Pixel reports whether the pixel at (x, y) is set, with (0, 0)
// the top-left corner of the bitmap.
func (g Glyph) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return false
	}
	stride := (int(g.Width) + 7) / 8
	return g.Bitmap[y*stride+x/8]&(0x80>>(x%8)) != 0
}
