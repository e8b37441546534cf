package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/uchidalab/font2img/glyph"
	"github.com/uchidalab/font2img/render"
)

// Config is everything a run needs, filled from the command line.
type Config struct {
	FontDir  string
	CharsTxt string
	DstDir   string

	CanvasSize  int
	FontSize    int
	MaxFontSize int
	Ext         string
	NotCenter   bool
	Maximum     bool
	Binary      bool
	Unicode     bool
	ByChar      bool
	Recursive   bool
	Engine      string
	Manifest    string
	LogFile     string
}

func (c *Config) register(fs *flag.FlagSet) {
	intVar := func(p *int, names []string, value int, usage string) {
		for _, n := range names {
			fs.IntVar(p, n, value, usage)
		}
	}
	boolVar := func(p *bool, names []string, usage string) {
		for _, n := range names {
			fs.BoolVar(p, n, false, usage)
		}
	}
	intVar(&c.CanvasSize, []string{"c", "canvas-size"}, 256, "Canvas-size[pixel].")
	intVar(&c.FontSize, []string{"f", "font-size"}, 0, "Font-size[pt]. 0 means canvas-size*0.75.")
	intVar(&c.MaxFontSize, []string{"max-font-size"}, 0, "Largest font-size[pt] tried when maximizing. 0 means canvas-size*10.")
	for _, n := range []string{"e", "ext"} {
		fs.StringVar(&c.Ext, n, "png", "Output images' extension: "+strings.Join(glyph.Formats, ", ")+".")
	}
	boolVar(&c.NotCenter, []string{"not-centering"}, "Do not centerize.")
	boolVar(&c.Maximum, []string{"m", "maximum"}, "Maximize glyphs.")
	boolVar(&c.Binary, []string{"b", "binary"}, "Binarize.")
	boolVar(&c.Unicode, []string{"u", "unicode"}, "Save as unicode code points.")
	boolVar(&c.ByChar, []string{"by-char"}, "Subdirectory will be the character name.")
	boolVar(&c.Recursive, []string{"r", "recursive"}, "Search font files recursively.")
	fs.StringVar(&c.Engine, "engine", render.OpenType, "Rasterizer: opentype or freetype (TrueType only).")
	fs.StringVar(&c.Manifest, "manifest", "manifest.db", "Manifest database file in the destination directory, empty to disable.")
	fs.StringVar(&c.LogFile, "log", "logs/font2img.log", "Rotated log file, empty to disable.")
}

// parseConfig reads flags and the three positional arguments.
func parseConfig(args []string) (*Config, error) {
	c := &Config{}
	fs := flag.NewFlagSet("font2img", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: font2img [flags] src_font_dir src_chars_txt dst_dir\n")
		fs.PrintDefaults()
	}
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return nil, fmt.Errorf("expected 3 arguments, got %d", fs.NArg())
	}
	c.FontDir = filepath.Clean(fs.Arg(0))
	c.CharsTxt = filepath.Clean(fs.Arg(1))
	c.DstDir = filepath.Clean(fs.Arg(2))
	return c, c.Validate()
}

// Validate checks option values and fills derived defaults.
func (c *Config) Validate() error {
	if c.CanvasSize <= 0 {
		return fmt.Errorf("invalid canvas size %d", c.CanvasSize)
	}
	if c.FontSize == 0 {
		c.FontSize = c.CanvasSize * 3 / 4
	}
	if c.FontSize < 0 {
		return fmt.Errorf("invalid font size %d", c.FontSize)
	}
	if c.MaxFontSize == 0 {
		c.MaxFontSize = c.CanvasSize * 10
	}
	if c.MaxFontSize < c.FontSize {
		return fmt.Errorf("max font size %d is below font size %d", c.MaxFontSize, c.FontSize)
	}
	c.Ext = strings.TrimPrefix(strings.ToLower(c.Ext), ".")
	known := false
	for _, f := range glyph.Formats {
		known = known || f == c.Ext
	}
	if !known {
		return fmt.Errorf("unsupported extension %q", c.Ext)
	}
	switch c.Engine {
	case render.OpenType, render.FreeType:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	return nil
}

// Mode returns the pixel mode selected by -binary.
func (c *Config) Mode() glyph.Mode {
	if c.Binary {
		return glyph.Binary
	}
	return glyph.Grayscale
}

// Strategy returns the drawing strategy selected by -maximum and -not-centering.
func (c *Config) Strategy() render.Strategy {
	switch {
	case c.Maximum:
		return render.Maximized
	case c.NotCenter:
		return render.Raw
	}
	return render.Centered
}
