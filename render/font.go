// Package render rasterizes single characters from font files onto square
// canvases and implements the raw, centered and maximized drawing strategies.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/coyove/sdss/contrib/plru"
	"github.com/golang/freetype/truetype"
	"github.com/uchidalab/font2img/glyph"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Engines.
const (
	OpenType = "opentype"
	FreeType = "freetype"
)

const faceCacheSize = 64

// Font draws one character at a time.
type Font interface {
	Draw(c rune, canvas, size int, off image.Point) (*glyph.Grid, error)
}

// FontFile is a parsed font file. It is not safe for concurrent use.
type FontFile struct {
	Path string
	mode glyph.Mode

	face  func(size int) (font.Face, error)
	index func(c rune) bool
}

// Open parses the font at path with the named engine. The opentype engine
// reads TrueType and CFF outlines and uses the first font of a collection;
// the freetype engine only reads TrueType (.ttf) files.
func Open(path, engine string, mode glyph.Mode) (*FontFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, buf, engine, mode)
}

// Parse is like Open for font data already in memory.
func Parse(path string, buf []byte, engine string, mode glyph.Mode) (*FontFile, error) {
	f := &FontFile{Path: path, mode: mode}
	var newFace func(size int) (font.Face, error)

	switch engine {
	case OpenType, "":
		coll, err := opentype.ParseCollection(buf)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		otf, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		var sbuf sfnt.Buffer
		f.index = func(c rune) bool {
			idx, err := otf.GlyphIndex(&sbuf, c)
			return err == nil && idx != 0
		}
		newFace = func(size int) (font.Face, error) {
			return opentype.NewFace(otf, &opentype.FaceOptions{
				Size:    float64(size),
				DPI:     72,
				Hinting: font.HintingFull,
			})
		}
	case FreeType:
		ttf, err := truetype.Parse(buf)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		f.index = func(c rune) bool { return ttf.Index(c) != 0 }
		newFace = func(size int) (font.Face, error) {
			return truetype.NewFace(ttf, &truetype.Options{
				Size:    float64(size),
				DPI:     72,
				Hinting: font.HintingFull,
			}), nil
		}
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}

	// The size search revisits the same sizes, keep their faces around.
	faces := plru.New[uint64, font.Face](faceCacheSize, plru.Hash.Uint64, nil)
	f.face = func(size int) (font.Face, error) {
		if face, ok := faces.Get(uint64(size)); ok {
			return face, nil
		}
		face, err := newFace(size)
		if err != nil {
			return nil, err
		}
		faces.Add(uint64(size), face)
		return face, nil
	}
	return f, nil
}

// Covers reports whether the font maps c to a real glyph.
func (f *FontFile) Covers(c rune) bool {
	return f.index(c)
}

// Draw renders c at point size onto a canvas x canvas grid filled with the
// background. off moves the top-left of the line box, whose top is the
// font's ascent above the baseline.
func (f *FontFile) Draw(c rune, canvas, size int, off image.Point) (*glyph.Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid point size %d", size)
	}
	face, err := f.face(size)
	if err != nil {
		return nil, fmt.Errorf("face at %dpt: %w", size, err)
	}

	img := image.NewGray(image.Rect(0, 0, canvas, canvas))
	draw.Draw(img, img.Bounds(), image.White, image.Pt(0, 0), draw.Src)

	d := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	d.Dot = fixed.P(off.X, off.Y+face.Metrics().Ascent.Ceil())
	d.DrawString(string(c))

	return glyph.FromGray(img, f.mode)
}
