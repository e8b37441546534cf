package glyph

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the output extensions Encode understands.
var Formats = []string{"png", "webp", "bmp", "tif", "tiff", "jpg", "jpeg"}

// Lossless reports whether ext round-trips samples exactly.
func Lossless(ext string) bool {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return false
	}
	return true
}

// Encode writes g in the format named by ext.
func Encode(w io.Writer, g *Grid, mode Mode, ext string) error {
	img := g.ToImage(mode)
	switch strings.ToLower(ext) {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	}
	return fmt.Errorf("glyph: unsupported image format %q", ext)
}

// Decode reads an image written by Encode back into a grid.
func Decode(r io.Reader, mode Mode) (*Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img, mode)
}
