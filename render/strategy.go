package render

import (
	"fmt"
	"image"

	"github.com/uchidalab/font2img/glyph"
)

// Strategy picks how a character is placed on the canvas.
type Strategy int

const (
	Raw Strategy = iota
	Centered
	Maximized
)

func (s Strategy) String() string {
	switch s {
	case Centered:
		return "centered"
	case Maximized:
		return "maximized"
	}
	return "raw"
}

// Result is a finished glyph and the parameters that produced it.
type Result struct {
	Grid   *glyph.Grid
	Size   int
	Offset image.Point
}

// Drawer renders characters onto Canvas x Canvas grids.
type Drawer struct {
	Strategy Strategy
	Mode     glyph.Mode
	Canvas   int
	// Ceiling bounds the point size tried by the maximized strategy.
	Ceiling int
}

// Render draws c with the configured strategy. size is the point size for
// the raw and centered strategies and the starting size of the search for
// the maximized one.
func (d *Drawer) Render(f Font, c rune, size int) (Result, error) {
	switch d.Strategy {
	case Centered:
		res, _, err := d.Center(f, c, size)
		return res, err
	case Maximized:
		return d.Maximize(f, c, size)
	}
	g, err := f.Draw(c, d.Canvas, size, image.Point{})
	return Result{Grid: g, Size: size}, err
}

// Center renders c on a canvas twice the target size to measure its margins,
// then again on the target canvas moved by the centering offset. maximal
// reports whether the glyph spans the target canvas at this size.
func (d *Drawer) Center(f Font, c rune, size int) (res Result, maximal bool, err error) {
	probe, err := f.Draw(c, d.Canvas*2, size, image.Point{})
	if err != nil {
		return res, false, err
	}
	res.Size = size
	res.Offset, maximal = glyph.CenterOffset(probe, d.Canvas, d.Mode.White())
	res.Grid, err = f.Draw(c, d.Canvas, size, res.Offset)
	return res, maximal, err
}

// Maximize searches for the largest centered rendering of c that does not
// clip, starting from point size start.
func (d *Drawer) Maximize(f Font, c rune, start int) (Result, error) {
	ceiling := d.Ceiling
	if ceiling <= 0 {
		ceiling = d.Canvas * 10
	}
	var last Result
	_, err := glyph.SearchMaximum(func(size int) (bool, error) {
		res, maximal, err := d.Center(f, c, size)
		last = res
		return maximal, err
	}, start, ceiling)
	if err != nil {
		return last, fmt.Errorf("maximize %q: %w", c, err)
	}
	return last, nil
}
