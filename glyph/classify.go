package glyph

import "bytes"

// IsBlank reports whether every sample of g equals background.
func IsBlank(g *Grid, background uint8) bool {
	for _, v := range g.Pix {
		if v != background {
			return false
		}
	}
	return true
}

// Identical reports whether a and b have the same size and samples.
func Identical(a, b *Grid) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Size == b.Size && bytes.Equal(a.Pix, b.Pix)
}
