// Command u8gettext-gen generates the U8Gettext data source from
// gettext catalogs and a BDF font. The output holds a u8g font with
// exactly the characters the catalogs use, the mapping from
// characters to font encodings, and the translated messages of
// every catalog.
//
// Usage:
//
//	u8gettext-gen -f font.bdf -p 'po/*.po' [-o U8GettextData.cpp]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"u8gettext.org/bdf"
	"u8gettext.org/table"
)

type config struct {
	Font    string
	PO      string
	Output  string
	Bundle  string
	Env     string
	Verbose bool
}

// usageError is reported with exit status 2.
type usageError struct {
	err error
}

func (u usageError) Error() string { return u.err.Error() }
func (u usageError) Unwrap() error { return u.err }

func main() {
	err := run(os.Stderr, os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "u8gettext-gen: %v\n", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		os.Exit(2)
	}
	os.Exit(1)
}

func run(stderr io.Writer, args []string) error {
	cfg, err := parseFlags(stderr, args)
	if err != nil {
		return err
	}
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return generate(cfg, log)
}

func parseFlags(stderr io.Writer, args []string) (*config, error) {
	cfg := new(config)
	fs := flag.NewFlagSet("u8gettext-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Font, "font", "", "BDF font file")
	fs.StringVar(&cfg.Font, "f", "", "shorthand for -font")
	fs.StringVar(&cfg.PO, "po", "", "glob pattern of gettext catalogs")
	fs.StringVar(&cfg.PO, "p", "", "shorthand for -po")
	fs.StringVar(&cfg.Output, "output", "U8GettextData.cpp", "generated C source file")
	fs.StringVar(&cfg.Output, "o", "U8GettextData.cpp", "shorthand for -output")
	fs.StringVar(&cfg.Bundle, "bundle", "", "also write the tables as a CBOR bundle")
	fs.StringVar(&cfg.Env, "env", "", "dotenv file with defaults for unset flags")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, usageError{err}
	}
	if fs.NArg() > 0 {
		return nil, usageError{fmt.Errorf("unexpected arguments: %q", fs.Args())}
	}
	if cfg.Env != "" {
		env, err := godotenv.Read(cfg.Env)
		if err != nil {
			return nil, fmt.Errorf("env: %w", err)
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) {
			set[f.Name] = true
		})
		defaults := []struct {
			key         string
			long, short string
			val         *string
		}{
			{"U8GETTEXT_FONT", "font", "f", &cfg.Font},
			{"U8GETTEXT_PO", "po", "p", &cfg.PO},
			{"U8GETTEXT_OUTPUT", "output", "o", &cfg.Output},
		}
		for _, d := range defaults {
			if v, ok := env[d.key]; ok && !set[d.long] && !set[d.short] {
				*d.val = v
			}
		}
	}
	if cfg.Font == "" {
		return nil, usageError{errors.New("missing -font")}
	}
	if cfg.PO == "" {
		return nil, usageError{errors.New("missing -po")}
	}
	if cfg.Output == "" {
		return nil, usageError{errors.New("empty -output")}
	}
	return cfg, nil
}

func generate(cfg *config, log *logrus.Logger) error {
	paths, err := filepath.Glob(cfg.PO)
	if err != nil {
		return usageError{fmt.Errorf("-po: %w", err)}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no catalogs match %q", cfg.PO)
	}
	cats, err := table.LoadCatalogs(paths)
	if err != nil {
		return err
	}
	for i, c := range cats {
		clog := log.WithFields(logrus.Fields{
			"catalog":  paths[i],
			"language": c.Name,
		})
		untranslated := c.Catalog.Untranslated()
		clog.Debugf("%d entries, %d translated, %d untranslated",
			len(c.Catalog.Entries), len(c.Catalog.Translated()), len(untranslated))
		for _, e := range untranslated {
			clog.WithField("msgid", e.ID).Debug("untranslated")
		}
	}
	cs := table.Collect(cats)
	log.Debugf("%d distinct characters", len(cs))

	font, err := bdf.Load(cfg.Font)
	if err != nil {
		return err
	}
	log.WithField("font", cfg.Font).Debugf("%d glyphs", len(font.Glyphs))

	t, err := table.Build(cs, font, cats)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Font, err)
	}
	log.Debugf("font table is %d bytes", len(t.Font))
	if err := table.WriteFile(cfg.Output, t); err != nil {
		return err
	}
	log.WithField("output", cfg.Output).Debug("wrote source")
	if cfg.Bundle != "" {
		b, err := table.EncodeBundle(t)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Bundle, b, 0o644); err != nil {
			return err
		}
		log.WithField("bundle", cfg.Bundle).Debug("wrote bundle")
	}
	return nil
}
