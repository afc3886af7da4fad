// Command u8gpreview renders the translations of a bundle written by
// u8gettext-gen with the packed font, for checking the glyphs
// without a device.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"u8gettext.org/table"
	"u8gettext.org/u8g"
)

var (
	bundleFile = flag.String("bundle", "", "bundle file")
	lang       = flag.String("lang", "", "language (default first)")
	scale      = flag.Int("scale", 2, "scale factor")
	output     = flag.String("o", "preview.png", "output PNG file")
)

const margin = 2

func main() {
	flag.Parse()

	if *bundleFile == "" || flag.NArg() > 0 || *scale < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*bundleFile, *lang, *scale, *output); err != nil {
		fmt.Fprintf(os.Stderr, "u8gpreview: %v\n", err)
		os.Exit(1)
	}
}

func run(bundle, lang string, scale int, output string) error {
	data, err := os.ReadFile(bundle)
	if err != nil {
		return err
	}
	t, err := table.DecodeBundle(data)
	if err != nil {
		return fmt.Errorf("%s: %w", bundle, err)
	}
	img, err := render(t, lang, scale)
	if err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Close()
}

// render draws a title line followed by every line of every
// translation of lang.
func render(t *table.Table, lang string, scale int) (image.Image, error) {
	if len(t.Languages) == 0 {
		return nil, errors.New("bundle has no languages")
	}
	l := &t.Languages[0]
	if lang != "" {
		var ok bool
		l, ok = t.Language(lang)
		if !ok {
			return nil, fmt.Errorf("no language %q", lang)
		}
	}
	face, err := u8g.NewFace(t.Font, t.Encoding)
	if err != nil {
		return nil, err
	}
	lines := []string{title(l.Name)}
	for _, tr := range l.Translations {
		lines = append(lines, strings.Split(tr.Str, "\n")...)
	}

	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	bounds := image.Rect(0, 0, width+2*margin, len(lines)*lineHeight+2*margin)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(margin, margin+i*lineHeight+m.Ascent.Ceil())
		d.DrawString(line)
	}
	if scale == 1 {
		return img, nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
	return scaled, nil
}

func title(name string) string {
	tag, err := language.Parse(name)
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, display.Tags(language.English).Name(tag))
}
