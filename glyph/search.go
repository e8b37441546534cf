package glyph

import (
	"errors"
	"fmt"
)

// Search steps. The touch test flickers near the boundary because of
// hinting, so the search sweeps linearly instead of bisecting.
const (
	CoarseStep = 20
	FineStep   = 1
)

// ErrGlyphNeverFillsCanvas is returned when no point size up to the ceiling
// makes the glyph touch the canvas.
var ErrGlyphNeverFillsCanvas = errors.New("glyph: glyph never fills canvas")

// CeilingError records where a size search gave up.
type CeilingError struct {
	Size    int
	Ceiling int
}

func (e *CeilingError) Error() string {
	return fmt.Sprintf("glyph: glyph never fills canvas (point size %d exceeds ceiling %d)", e.Size, e.Ceiling)
}

func (e *CeilingError) Unwrap() error { return ErrGlyphNeverFillsCanvas }

// Probe renders the glyph at point size and reports whether it is maximal
// there. Callers keep whatever the last probe produced.
type Probe func(size int) (maximal bool, err error)

// SearchMaximum sweeps upward from start, first by CoarseStep until probe
// reports a maximal glyph, then again by FineStep from one coarse step below
// that size. It returns the size where the fine sweep stopped, which is also
// the last size probed. Sizes below 1 are clamped to 1.
func SearchMaximum(probe Probe, start, ceiling int) (int, error) {
	size, err := sweep(probe, start, CoarseStep, ceiling)
	if err != nil {
		return size, err
	}
	return sweep(probe, size-CoarseStep, FineStep, ceiling)
}

func sweep(probe Probe, size, step, ceiling int) (int, error) {
	if size < 1 {
		size = 1
	}
	for ; ; size += step {
		if size > ceiling {
			return size, &CeilingError{Size: size, Ceiling: ceiling}
		}
		maximal, err := probe(size)
		if err != nil {
			return size, err
		}
		if maximal {
			return size, nil
		}
	}
}
