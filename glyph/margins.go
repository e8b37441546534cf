package glyph

import "image"

// Margins holds, for each edge, the number of background rows or columns
// between that edge and the first ink.
type Margins struct {
	Top, Bottom, Left, Right int
}

// ScanMargins sweeps inward from each edge of g looking for the first row or
// column holding a sample other than background. An edge whose sweep finds
// nothing reports 0, so an empty grid yields all-zero margins; use IsBlank to
// tell the two apart.
func ScanMargins(g *Grid, background uint8) Margins {
	var m Margins
	n := g.Size

	for i := 0; i < n; i++ {
		if rowHasInk(g, i, background) {
			m.Top = i
			break
		}
	}
	for i := 0; i < n; i++ {
		if rowHasInk(g, n-i-1, background) {
			m.Bottom = i
			break
		}
	}
	for i := 0; i < n; i++ {
		if colHasInk(g, i, background) {
			m.Left = i
			break
		}
	}
	for i := 0; i < n; i++ {
		if colHasInk(g, n-i-1, background) {
			m.Right = i
			break
		}
	}
	return m
}

func rowHasInk(g *Grid, y int, background uint8) bool {
	for _, v := range g.Row(y) {
		if v != background {
			return true
		}
	}
	return false
}

func colHasInk(g *Grid, x int, background uint8) bool {
	for y := 0; y < g.Size; y++ {
		if g.Pix[y*g.Size+x] != background {
			return true
		}
	}
	return false
}

// CenterOffset inspects a probe grid rendered on an oversized canvas with no
// offset and returns the translation that centers the ink on a target x target
// canvas. The bottom and right margins are measured against the target canvas,
// so they go negative once the ink extends past it.
//
// maximal reports that the ink already spans the target canvas vertically or
// horizontally, or reaches the far edge of the probe, at which point a larger
// point size would clip.
func CenterOffset(g *Grid, target int, background uint8) (off image.Point, maximal bool) {
	m := ScanMargins(g, background)
	canvasOffset := g.Size - target
	m.Bottom -= canvasOffset
	m.Right -= canvasOffset

	// Go division truncates toward zero for negative operands too.
	off.X = (m.Right - m.Left) / 2
	off.Y = (m.Bottom - m.Top) / 2

	tb := m.Top+m.Bottom <= 0 || m.Bottom == -canvasOffset
	lr := m.Right+m.Left <= 0 || m.Right == -canvasOffset
	return off, tb || lr
}
