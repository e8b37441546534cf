// Package glyph normalizes rendered glyph bitmaps: it finds the margins of
// the ink on a canvas, derives the offset that centers it, searches for the
// largest point size that still fits and classifies blank or duplicate renders.
package glyph

import (
	"fmt"
	"image"
	"image/color"
)

// Mode selects how samples are interpreted.
type Mode int

const (
	// Grayscale samples range over 0 (ink) .. 255 (background).
	Grayscale Mode = iota
	// Binary samples are either 0 (ink) or 1 (background).
	Binary
)

// White returns the background sample value of m.
func (m Mode) White() uint8 {
	if m == Binary {
		return 1
	}
	return 255
}

func (m Mode) String() string {
	if m == Binary {
		return "binary"
	}
	return "grayscale"
}

// Grid is a square raster of samples stored row by row.
// A Grid is not modified after it has been handed out.
type Grid struct {
	Size int
	Pix  []uint8
}

// NewGrid returns a size x size grid filled with fill.
func NewGrid(size int, fill uint8) *Grid {
	g := &Grid{Size: size, Pix: make([]uint8, size*size)}
	if fill != 0 {
		for i := range g.Pix {
			g.Pix[i] = fill
		}
	}
	return g
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Size+x]
}

// Row returns row y without copying.
func (g *Grid) Row(y int) []uint8 {
	return g.Pix[y*g.Size : (y+1)*g.Size]
}

// FromGray copies the square image m into a new grid. In Binary mode every
// sample below the midpoint becomes ink (0) and the rest background (1).
func FromGray(m *image.Gray, mode Mode) (*Grid, error) {
	b := m.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("glyph: image %dx%d is not square", b.Dx(), b.Dy())
	}
	g := &Grid{Size: b.Dx(), Pix: make([]uint8, b.Dx()*b.Dy())}
	for y := 0; y < g.Size; y++ {
		i := m.PixOffset(b.Min.X, b.Min.Y+y)
		src := m.Pix[i : i+g.Size]
		dst := g.Row(y)
		if mode == Binary {
			for x, v := range src {
				if v >= 0x80 {
					dst[x] = 1
				}
			}
		} else {
			copy(dst, src)
		}
	}
	return g, nil
}

// FromImage converts any square image to a grid, going through the gray color model.
func FromImage(m image.Image, mode Mode) (*Grid, error) {
	if gm, ok := m.(*image.Gray); ok {
		return FromGray(gm, mode)
	}
	b := m.Bounds()
	gm := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			gm.SetGray(x, y, color.GrayModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.Gray))
		}
	}
	return FromGray(gm, mode)
}

// ToImage returns g as an 8-bit gray image. Binary samples are scaled to 0/255.
func (g *Grid) ToImage(mode Mode) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, g.Size, g.Size))
	if mode != Binary {
		copy(m.Pix, g.Pix)
		return m
	}
	for i, v := range g.Pix {
		m.Pix[i] = v * 255
	}
	return m
}
