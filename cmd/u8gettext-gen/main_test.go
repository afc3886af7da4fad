package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"u8gettext.org/internal/fonttest"
	"u8gettext.org/table"
)

const enPO = `msgid ""
msgstr ""
"Language: en\n"

msgid "hello"
msgstr "world"

msgid "bye"
msgstr ""
`

const frPO = `msgid "hello"
msgstr "bonjour à tous"
`

// setup writes a font and catalogs to a temporary directory.
func setup(t *testing.T, font string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"font.bdf":  font,
		"po/en.po":  enPO,
		"po/fr.po":  frPO,
		"po/README": "not a catalog",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func fullFont() string {
	return fonttest.BDF(append(fonttest.ASCII(), 'à')...)
}

func TestGenerate(t *testing.T) {
	dir := setup(t, fullFont())
	out := filepath.Join(dir, "U8GettextData.cpp")
	bundle := filepath.Join(dir, "data.cbor")
	var stderr bytes.Buffer
	err := run(&stderr, []string{
		"-v",
		"-f", filepath.Join(dir, "font.bdf"),
		"-p", filepath.Join(dir, "po", "*.po"),
		"-o", out,
		"-bundle", bundle,
	})
	if err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`static const char sMsgStr0_0[] PROGMEM = "world";`,
		`static const char sMsgStr1_0[] PROGMEM = "bonjour \303\240 tous";`,
		"\t{\"en\", sTranslationsen, &sTranslationsLengthen},",
		"\t{\"fr\", sTranslationsfr, &sTranslationsLengthfr},",
		"__gU8GettextContext",
	} {
		if !bytes.Contains(src, []byte(want)) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if bytes.Contains(src, []byte(`"bye"`)) {
		t.Error("untranslated message emitted")
	}
	data, err := os.ReadFile(bundle)
	if err != nil {
		t.Fatal(err)
	}
	tab, err := table.DecodeBundle(data)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(tab.Mappings), len(fonttest.ASCII())+1; got != want {
		t.Errorf("bundle has %d mappings, expected %d", got, want)
	}
	for _, want := range []string{"distinct characters", "2 entries, 1 translated, 1 untranslated", "msgid=bye"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("verbose run logged %q, expected it to contain %q", stderr.String(), want)
		}
	}
}

func TestGenerateQuiet(t *testing.T) {
	dir := setup(t, fullFont())
	var stderr bytes.Buffer
	err := run(&stderr, []string{
		"-font", filepath.Join(dir, "font.bdf"),
		"-po", filepath.Join(dir, "po", "*.po"),
		"-output", filepath.Join(dir, "out.cpp"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if stderr.Len() > 0 {
		t.Errorf("quiet run logged %q", stderr.String())
	}
}

func TestEnv(t *testing.T) {
	dir := setup(t, fullFont())
	envOut := filepath.Join(dir, "env.cpp")
	flagOut := filepath.Join(dir, "flag.cpp")
	env := fmt.Sprintf("U8GETTEXT_FONT=%s\nU8GETTEXT_PO=%s\nU8GETTEXT_OUTPUT=%s\n",
		filepath.Join(dir, "font.bdf"), filepath.Join(dir, "po", "*.po"), envOut)
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(new(bytes.Buffer), []string{"-env", envFile}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(envOut); err != nil {
		t.Errorf("output from env file not written: %v", err)
	}
	// Flags take precedence over the env file.
	if err := run(new(bytes.Buffer), []string{"-env", envFile, "-o", flagOut}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(flagOut); err != nil {
		t.Errorf("output from flag not written: %v", err)
	}
}

func TestUsageErrors(t *testing.T) {
	dir := setup(t, fullFont())
	font := filepath.Join(dir, "font.bdf")
	po := filepath.Join(dir, "po", "*.po")
	tests := []struct {
		name string
		args []string
	}{
		{"no font", []string{"-po", po}},
		{"no catalogs", []string{"-font", font}},
		{"empty output", []string{"-font", font, "-po", po, "-o", ""}},
		{"unknown flag", []string{"-font", font, "-po", po, "-x"}},
		{"arguments", []string{"-font", font, "-po", po, "extra"}},
		{"bad pattern", []string{"-font", font, "-po", "[", "-o", filepath.Join(dir, "out.cpp")}},
	}
	for _, test := range tests {
		err := run(new(bytes.Buffer), test.args)
		var uerr usageError
		if !errors.As(err, &uerr) {
			t.Errorf("%s: got error %v, expected a usage error", test.name, err)
		}
	}
}

func TestProcessingErrors(t *testing.T) {
	dir := setup(t, fonttest.BDF(fonttest.ASCII()...))
	out := filepath.Join(dir, "out.cpp")
	err := run(new(bytes.Buffer), []string{
		"-f", filepath.Join(dir, "font.bdf"),
		"-p", filepath.Join(dir, "po", "*.po"),
		"-o", out,
	})
	if !errors.Is(err, table.ErrNoGlyph) {
		t.Errorf("got error %v for font without à, expected ErrNoGlyph", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("output written despite error")
	}

	err = run(new(bytes.Buffer), []string{
		"-f", filepath.Join(dir, "font.bdf"),
		"-p", filepath.Join(dir, "po", "*.pot"),
		"-o", out,
	})
	var uerr usageError
	if err == nil || errors.As(err, &uerr) {
		t.Errorf("got error %v for a pattern without matches", err)
	}

	err = run(new(bytes.Buffer), []string{"-env", filepath.Join(dir, "missing.env")})
	if err == nil || errors.As(err, &uerr) {
		t.Errorf("got error %v for a missing env file, expected a processing error", err)
	}
}
