package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/uchidalab/font2img/glyph"
	"github.com/uchidalab/font2img/render"
	"golang.org/x/image/font/gofont/goregular"
)

// stubFont draws whatever draw returns, ignoring size and offset.
type stubFont struct {
	draw func(c rune, canvas int) *glyph.Grid
}

func (s stubFont) Draw(c rune, canvas, size int, off image.Point) (*glyph.Grid, error) {
	return s.draw(c, canvas), nil
}

func inkBox(canvas int, r image.Rectangle) *glyph.Grid {
	g := glyph.NewGrid(canvas, 255)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.Pix[y*canvas+x] = 0
		}
	}
	return g
}

// setupRun lays out a font directory with the named (empty) font files and a
// characters file, and returns a validated config writing into a fresh dst.
func setupRun(t *testing.T, chars string, fonts ...string) *Config {
	t.Helper()
	root := t.TempDir()
	fontDir := filepath.Join(root, "fonts")
	if err := os.Mkdir(fontDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range fonts {
		if err := os.WriteFile(filepath.Join(fontDir, f), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	charsTxt := filepath.Join(root, "chars.txt")
	if err := os.WriteFile(charsTxt, []byte(chars), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{
		FontDir:    fontDir,
		CharsTxt:   charsTxt,
		DstDir:     filepath.Join(root, "dst"),
		CanvasSize: 32,
		Ext:        "png",
		Engine:     render.OpenType,
		Manifest:   "manifest.db",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func runWith(t *testing.T, cfg *Config, f render.Font) *Converter {
	t.Helper()
	cv, err := newConverter(cfg)
	if err != nil {
		t.Fatalf("newConverter: %v", err)
	}
	t.Cleanup(func() { cv.Close() })
	if f != nil {
		cv.open = func(string) (render.Font, error) { return f, nil }
	}
	if err := cv.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return cv
}

func readFailures(t *testing.T, cfg *Config) string {
	t.Helper()
	buf, err := os.ReadFile(filepath.Join(cfg.DstDir, "failure.txt"))
	if err != nil {
		t.Fatal(err)
	}
	return string(buf)
}

func listDir(t *testing.T, dir string) (names []string) {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names
}

func TestConvertGoFont(t *testing.T) {
	cfg := setupRun(t, "AB\n")
	cfg.CanvasSize = 64
	cfg.FontSize = 0
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.FontDir, "goregular.ttf"), goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	cv := runWith(t, cfg, nil)

	if diff := cmp.Diff([]string{"A.png", "B.png"}, listDir(t, filepath.Join(cfg.DstDir, "goregular"))); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if got := readFailures(t, cfg); got != "" {
		t.Errorf("failure.txt = %q, want empty", got)
	}

	recs, err := cv.manifest.Glyphs("goregular")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].Char != 'A' || recs[1].Char != 'B' || recs[0].Size != 48 {
		t.Errorf("manifest records = %+v", recs)
	}

	f, err := os.Open(filepath.Join(cfg.DstDir, "goregular", "A.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := glyph.Decode(f, glyph.Grayscale)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size != 64 || glyph.IsBlank(g, 255) {
		t.Errorf("A.png is %dpx, blank=%v", g.Size, glyph.IsBlank(g, 255))
	}
}

func TestConvertGoFontBinary(t *testing.T) {
	cfg := setupRun(t, "AB")
	cfg.Binary = true
	if err := os.WriteFile(filepath.Join(cfg.FontDir, "goregular.ttf"), goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	runWith(t, cfg, nil)

	if got := readFailures(t, cfg); got != "" {
		t.Errorf("failure.txt = %q, want empty", got)
	}
	for _, name := range []string{"A.png", "B.png"} {
		f, err := os.Open(filepath.Join(cfg.DstDir, "goregular", name))
		if err != nil {
			t.Fatal(err)
		}
		g, err := glyph.Decode(f, glyph.Binary)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if g.Size != cfg.CanvasSize {
			t.Errorf("%s is %dpx, want %d", name, g.Size, cfg.CanvasSize)
		}
		for _, v := range g.Pix {
			if v > 1 {
				t.Fatalf("%s holds sample %d in binary mode", name, v)
			}
		}
		if glyph.IsBlank(g, glyph.Binary.White()) {
			t.Errorf("%s is blank", name)
		}
	}
}

func TestConvertAllDuplicate(t *testing.T) {
	cfg := setupRun(t, "AB", "dup.ttf")
	same := stubFont{draw: func(c rune, canvas int) *glyph.Grid {
		return inkBox(canvas, image.Rect(2, 2, 10, 10))
	}}

	cv := runWith(t, cfg, same)

	if got := listDir(t, cfg.DstDir); cmp.Diff([]string{"failure.txt", "manifest.db"}, got) != "" {
		t.Errorf("dst holds %v, want only failure.txt and manifest.db", got)
	}
	if got := readFailures(t, cfg); got != "dup,same\n" {
		t.Errorf("failure.txt = %q", got)
	}
	failures, err := cv.manifest.Failures()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string][]string{"dup": {"same"}}, failures); diff != "" {
		t.Errorf("manifest failures mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertBlank(t *testing.T) {
	cfg := setupRun(t, "CAB", "part.otf")
	f := stubFont{draw: func(c rune, canvas int) *glyph.Grid {
		if c == 'B' {
			return glyph.NewGrid(canvas, 255)
		}
		return inkBox(canvas, image.Rect(1, 1, 2+int(c-'A'), 4))
	}}

	runWith(t, cfg, f)

	if diff := cmp.Diff([]string{"A.png", "C.png"}, listDir(t, filepath.Join(cfg.DstDir, "part"))); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if got := readFailures(t, cfg); got != "part,white,['B']\n" {
		t.Errorf("failure.txt = %q", got)
	}
}

func TestConvertSingleCharacterPurged(t *testing.T) {
	cfg := setupRun(t, "A", "one.ttf")
	f := stubFont{draw: func(c rune, canvas int) *glyph.Grid {
		return inkBox(canvas, image.Rect(0, 0, 3, 3))
	}}

	runWith(t, cfg, f)

	// zero repeats equals the character count minus one
	if got := listDir(t, cfg.DstDir); cmp.Diff([]string{"failure.txt", "manifest.db"}, got) != "" {
		t.Errorf("dst holds %v, want only failure.txt and manifest.db", got)
	}
	if got := readFailures(t, cfg); got != "one,same\n" {
		t.Errorf("failure.txt = %q", got)
	}
}

func TestConvertByChar(t *testing.T) {
	cfg := setupRun(t, "aA/", "x.ttf", "y.ttc")
	cfg.ByChar = true
	cfg.NotCenter = true
	f := stubFont{draw: func(c rune, canvas int) *glyph.Grid {
		return inkBox(canvas, image.Rect(0, 0, 1+int(c%7), 2))
	}}

	runWith(t, cfg, f)

	want := []string{"47", "A_", "a", "failure.txt", "manifest.db"}
	if diff := cmp.Diff(want, listDir(t, cfg.DstDir)); diff != "" {
		t.Errorf("dst mismatch (-want +got):\n%s", diff)
	}
	for _, dir := range []string{"47", "A_", "a"} {
		if diff := cmp.Diff([]string{"x.png", "y.png"}, listDir(t, filepath.Join(cfg.DstDir, dir))); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", dir, diff)
		}
	}
}

func TestConvertCeiling(t *testing.T) {
	cfg := setupRun(t, "AB", "tiny.ttf")
	cfg.Maximum = true
	cfg.MaxFontSize = cfg.FontSize + 50
	// 'B' stays a dot in the middle of any canvas, so it never becomes maximal.
	f := stubFont{draw: func(c rune, canvas int) *glyph.Grid {
		if c == 'B' {
			return inkBox(canvas, image.Rect(canvas/4, canvas/4, canvas/4+1, canvas/4+1))
		}
		return inkBox(canvas, image.Rect(0, 0, canvas, canvas/2))
	}}

	runWith(t, cfg, f)

	if diff := cmp.Diff([]string{"A.png"}, listDir(t, filepath.Join(cfg.DstDir, "tiny"))); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if got := readFailures(t, cfg); got != "tiny,ceiling,['B']\n" {
		t.Errorf("failure.txt = %q", got)
	}
}

func TestFindFonts(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"b.otf", "a.ttf", "readme.txt", "sub/c.otc", "sub/d.TTF"} {
		p = filepath.Join(dir, p)
		os.MkdirAll(filepath.Dir(p), 0755)
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	flat, err := findFonts(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []FontRecord{
		{Path: filepath.Join(dir, "a.ttf"), Name: "a"},
		{Path: filepath.Join(dir, "b.otf"), Name: "b"},
	}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Errorf("findFonts mismatch (-want +got):\n%s", diff)
	}

	deep, err := findFonts(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	want = append(want, FontRecord{Path: filepath.Join(dir, "sub", "c.otc"), Name: "c"})
	if diff := cmp.Diff(want, deep); diff != "" {
		t.Errorf("recursive findFonts mismatch (-want +got):\n%s", diff)
	}

	if _, err := findFonts(filepath.Join(dir, "missing"), false); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestLoadCharset(t *testing.T) {
	p := filepath.Join(t.TempDir(), "chars.txt")
	os.WriteFile(p, []byte(" \n\t"), 0644)
	if _, err := loadCharset(p, false); err == nil {
		t.Error("expected an error for a file with only invisible characters")
	}
	os.WriteFile(p, []byte{'a', 0xff}, 0644)
	if _, err := loadCharset(p, false); err == nil {
		t.Error("expected an error for invalid UTF-8")
	}
}
