// Package bdf reads bitmap fonts in the [Glyph Bitmap Distribution Format].
//
// [Glyph Bitmap Distribution Format]: https://adobe-type-tools.github.io/font-tech-notes/pdfs/5005.BDF_Spec.pdf
package bdf

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type Font struct {
	Name string
	// BoundingBox is the FONTBOUNDINGBOX as width, height,
	// x offset and y offset.
	BoundingBox [4]int
	Properties  Properties
	// Glyphs in file order.
	Glyphs []*Glyph

	index map[rune]*Glyph
}

type Glyph struct {
	Name string
	// Encoding is -1 for glyphs outside the font encoding.
	Encoding rune
	// Advance is the horizontal component of DWIDTH.
	Advance            int
	Width, Height      int
	BearingX, BearingY int
	// Rows holds the hex encoded BITMAP lines.
	Rows [][]byte
}

// Properties is the read-only property table of a font.
type Properties struct {
	m map[string]string
}

var ErrNoProperty = errors.New("bdf: missing property")

// Glyph returns the glyph with encoding r.
func (f *Font) Glyph(r rune) (*Glyph, bool) {
	g, ok := f.index[r]
	return g, ok
}

// Lookup returns the value of a property with string
// quotes removed.
func (p Properties) Lookup(name string) (string, bool) {
	v, ok := p.m[name]
	return v, ok
}

// Int returns the integer value of a property.
func (p Properties) Int(name string) (int, error) {
	v, ok := p.m[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoProperty, name)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bdf: property %s: %w", name, err)
	}
	return i, nil
}

func (p Properties) Len() int {
	return len(p.m)
}

// RowBytes returns the number of bytes in a bitmap row.
func (g *Glyph) RowBytes() int {
	return (g.Width + 7) / 8
}

// Bitmap decodes the glyph rows into a row-major, most
// significant bit first bitmap with byte aligned rows.
func (g *Glyph) Bitmap() ([]byte, error) {
	if len(g.Rows) != g.Height {
		return nil, fmt.Errorf("bdf: glyph %s: %d bitmap rows, expected %d", g.Name, len(g.Rows), g.Height)
	}
	stride := g.RowBytes()
	bitmap := make([]byte, stride*g.Height)
	for y, row := range g.Rows {
		if hex.DecodedLen(len(row)) != stride || len(row)%2 != 0 {
			return nil, fmt.Errorf("bdf: glyph %s: row %d has %d hex digits, expected %d", g.Name, y, len(row), stride*2)
		}
		if _, err := hex.Decode(bitmap[y*stride:], row); err != nil {
			return nil, fmt.Errorf("bdf: glyph %s: row %d: %w", g.Name, y, err)
		}
	}
	return bitmap, nil
}

// Load parses the BDF file at path.
func Load(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	font, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return font, nil
}

type section int

const (
	sectionFont section = iota
	sectionProperties
	sectionChar
	sectionBitmap
	sectionEnd
)

// Parse reads a font in BDF format.
func Parse(r io.Reader) (*Font, error) {
	f := &Font{
		Properties: Properties{m: make(map[string]string)},
		index:      make(map[rune]*Glyph),
	}
	s := bufio.NewScanner(r)
	lineno := 0
	sec := sectionFont
	started := false
	var g *Glyph
	hasBBX := false
	defaultAdvance := -1
	for s.Scan() {
		lineno++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		keyword, args, _ := strings.Cut(line, " ")
		args = strings.TrimSpace(args)
		if keyword == "COMMENT" {
			continue
		}
		fail := func(format string, a ...any) error {
			return fmt.Errorf("bdf: line %d: %s", lineno, fmt.Sprintf(format, a...))
		}
		if !started {
			if keyword != "STARTFONT" {
				return nil, fail("missing STARTFONT")
			}
			started = true
			continue
		}
		switch sec {
		case sectionProperties:
			if keyword == "ENDPROPERTIES" {
				sec = sectionFont
				continue
			}
			f.Properties.m[keyword] = unquote(args)
			continue
		case sectionBitmap:
			if keyword == "ENDCHAR" {
				f.Glyphs = append(f.Glyphs, g)
				if g.Encoding >= 0 {
					f.index[g.Encoding] = g
				}
				g = nil
				sec = sectionFont
				continue
			}
			g.Rows = append(g.Rows, []byte(line))
			continue
		case sectionEnd:
			return nil, fail("data after ENDFONT")
		}
		switch keyword {
		case "STARTPROPERTIES":
			if sec != sectionFont {
				return nil, fail("STARTPROPERTIES inside glyph")
			}
			sec = sectionProperties
		case "FONT":
			f.Name = args
		case "FONTBOUNDINGBOX":
			box, err := ints(args, 4)
			if err != nil {
				return nil, fail("FONTBOUNDINGBOX: %v", err)
			}
			copy(f.BoundingBox[:], box)
		case "STARTCHAR":
			if sec == sectionChar {
				return nil, fail("STARTCHAR inside glyph %s", g.Name)
			}
			sec = sectionChar
			hasBBX = false
			g = &Glyph{
				Name:     args,
				Encoding: -1,
				Advance:  defaultAdvance,
			}
		case "ENCODING":
			if sec != sectionChar {
				return nil, fail("ENCODING outside glyph")
			}
			// A second argument holds a non-standard encoding,
			// which is ignored.
			e, _, _ := strings.Cut(args, " ")
			enc, err := strconv.Atoi(e)
			if err != nil {
				return nil, fail("ENCODING: %v", err)
			}
			g.Encoding = rune(enc)
			if enc < 0 {
				g.Encoding = -1
			}
		case "DWIDTH":
			adv, err := ints(args, 2)
			if err != nil {
				return nil, fail("DWIDTH: %v", err)
			}
			if sec == sectionChar {
				g.Advance = adv[0]
			} else {
				defaultAdvance = adv[0]
			}
		case "BBX":
			if sec != sectionChar {
				return nil, fail("BBX outside glyph")
			}
			bbx, err := ints(args, 4)
			if err != nil {
				return nil, fail("BBX: %v", err)
			}
			if bbx[0] < 0 || bbx[1] < 0 {
				return nil, fail("BBX: negative size")
			}
			g.Width, g.Height, g.BearingX, g.BearingY = bbx[0], bbx[1], bbx[2], bbx[3]
			hasBBX = true
		case "BITMAP":
			if sec != sectionChar {
				return nil, fail("BITMAP outside glyph")
			}
			if !hasBBX {
				box := f.BoundingBox
				g.Width, g.Height, g.BearingX, g.BearingY = box[0], box[1], box[2], box[3]
			}
			if g.Advance < 0 {
				g.Advance = g.Width
			}
			sec = sectionBitmap
		case "ENDCHAR":
			return nil, fail("ENDCHAR without BITMAP")
		case "ENDFONT":
			if sec != sectionFont {
				return nil, fail("ENDFONT inside glyph %s", g.Name)
			}
			sec = sectionEnd
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("bdf: %w", err)
	}
	switch {
	case !started:
		return nil, errors.New("bdf: empty font")
	case sec == sectionProperties:
		return nil, errors.New("bdf: unterminated properties")
	case sec == sectionChar || sec == sectionBitmap:
		return nil, fmt.Errorf("bdf: unterminated glyph %s", g.Name)
	}
	return f, nil
}

func ints(args string, n int) ([]int, error) {
	fields := strings.Fields(args)
	if len(fields) != n {
		return nil, fmt.Errorf("got %d values, expected %d", len(fields), n)
	}
	res := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// unquote removes the quotes of a string property value.
// Quotes inside are doubled.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return strings.ReplaceAll(v[1:len(v)-1], `""`, `"`)
	}
	return v
}
